package helper

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Belajar Go untuk Pemula", "belajar-go-untuk-pemula"},
		{"  Résumé   Café  ", "resume-cafe"},
		{"C++ & Go: 101!!", "c-go-101"},
		{"---", "item"},
		{"", "item"},
		{"UPPER case MiXeD", "upper-case-mixed"},
	}
	for _, tc := range cases {
		got := Slugify(tc.in, 100)
		if got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyMaxLen(t *testing.T) {
	got := Slugify("belajar golang dari nol sampai mahir", 10)
	if len(got) > 10 {
		t.Fatalf("slug %q exceeds max length 10", got)
	}
	if got[len(got)-1] == '-' {
		t.Fatalf("slug %q ends with a hyphen", got)
	}
}
