package service

import "testing"

func TestAverageRating(t *testing.T) {
	cases := []struct {
		in   []int
		want float64
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{4, 5}, 4.5},
		{[]int{3, 4, 4}, 3.7},
		{[]int{1, 1, 2}, 1.3},
	}
	for _, tc := range cases {
		if got := AverageRating(tc.in); got != tc.want {
			t.Fatalf("AverageRating(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
