package controller

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/courses/model"
	"kursusku_backend/internals/features/payments/dto"
	"kursusku_backend/internals/features/payments/model"
	"kursusku_backend/internals/features/payments/service"
	userModel "kursusku_backend/internals/features/users/user/model"
	helpers "kursusku_backend/internals/helpers"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type PaymentController struct {
	DB        *gorm.DB
	Gateway   *service.Gateway
	Validator *validator.Validate
}

func NewPaymentController(db *gorm.DB, gateway *service.Gateway) *PaymentController {
	return &PaymentController{DB: db, Gateway: gateway, Validator: validator.New()}
}

/* =========================================================
   Checkout
========================================================= */

// POST /api/payments/create-checkout
func (ctl *PaymentController) CreateCheckout(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login untuk membeli course")
	}

	var req dto.CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	courseID, _ := uuid.Parse(req.CourseID)
	var course courseModel.CourseModel
	if err := ctl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	if course.CourseStatus != courseModel.CourseStatusPublished {
		return fiber.NewError(fiber.StatusBadRequest, "Course belum dipublikasikan")
	}
	if course.CoursePriceIDR <= 0 {
		return fiber.NewError(fiber.StatusNotImplemented, "Course gratis tidak melalui checkout")
	}

	purchased, err := service.HasCompletedPurchase(ctl.DB, userID, courseID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa pembelian")
	}
	if purchased {
		return fiber.NewError(fiber.StatusConflict, "Anda sudah membeli course ini")
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	orderID := service.NewOrderID()
	url, err := ctl.Gateway.CreateCheckout(service.CheckoutInput{
		OrderID:     orderID,
		AmountIDR:   course.CoursePriceIDR,
		CourseTitle: course.CourseTitle,
		CourseID:    course.CourseID.String(),
		UserName:    user.UserName,
		UserEmail:   user.Email,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal membuat sesi pembayaran")
	}

	purchase := model.PurchaseModel{
		PurchaseUserID:    userID,
		PurchaseCourseID:  courseID,
		PurchaseOrderID:   orderID,
		PurchaseAmountIDR: course.CoursePriceIDR,
		PurchaseStatus:    model.PurchaseStatusPending,
	}
	if err := ctl.DB.Create(&purchase).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan pembelian")
	}

	return helpers.JsonCreated(c, "Sesi pembayaran berhasil dibuat", dto.CreateCheckoutResponse{
		URL:       url,
		SessionID: orderID,
	})
}

/* =========================================================
   Webhook
========================================================= */

// POST /api/payments/webhook
//
// Every notification is appended to gateway_events before the purchase is
// touched. A store failure while applying the transition returns 500 so the
// gateway redelivers; the unique order id keeps redeliveries harmless.
func (ctl *PaymentController) Webhook(c *fiber.Ctx) error {
	var notif dto.GatewayNotification
	if err := c.BodyParser(&notif); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	if !ctl.Gateway.VerifySignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey) {
		return fiber.NewError(fiber.StatusUnauthorized, "Signature tidak valid")
	}

	var purchase model.PurchaseModel
	if err := ctl.DB.First(&purchase, "purchase_order_id = ?", notif.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// unknown order: log and ack so the gateway stops retrying
			ctl.logEvent(notif, "ignored", "purchase not found for order_id "+notif.OrderID)
			return helpers.JsonOK(c, "Notifikasi diabaikan", fiber.Map{"status": "ignored"})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pembelian")
	}

	now := time.Now()
	outcome := service.MapTransactionStatus(notif.TransactionStatus, notif.FraudStatus, now)
	if !outcome.Handled {
		ctl.logEvent(notif, "ignored", "")
		return helpers.JsonOK(c, "Notifikasi diterima", fiber.Map{
			"status":             "ignored",
			"transaction_status": notif.TransactionStatus,
		})
	}

	if !service.CanTransition(purchase.PurchaseStatus, outcome.Status) {
		// stale notification delivered after a later state already landed
		ctl.logEvent(notif, "ignored", "stale transition "+string(purchase.PurchaseStatus)+" -> "+string(outcome.Status))
		return helpers.JsonOK(c, "Notifikasi diabaikan", fiber.Map{
			"status":          "ignored",
			"purchase_status": purchase.PurchaseStatus,
		})
	}

	purchase.PurchaseStatus = outcome.Status
	if outcome.PaidAt != nil && purchase.PurchasePaidAt == nil {
		purchase.PurchasePaidAt = outcome.PaidAt
	}
	if outcome.RefundedAt != nil {
		purchase.PurchaseRefundedAt = outcome.RefundedAt
	}
	if notif.TransactionID != "" {
		ref := notif.TransactionID
		purchase.PurchaseGatewayRef = &ref
	}
	purchase.PurchaseUpdatedAt = now

	if err := ctl.DB.Save(&purchase).Error; err != nil {
		ctl.logEvent(notif, "failed", err.Error())
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui pembelian")
	}
	ctl.logEvent(notif, "processed", "")

	return helpers.JsonOK(c, "Notifikasi diproses", fiber.Map{
		"status":          "ok",
		"purchase_id":     purchase.PurchaseID,
		"purchase_status": purchase.PurchaseStatus,
	})
}

func (ctl *PaymentController) logEvent(notif dto.GatewayNotification, status, errMsg string) {
	payload, _ := sonic.Marshal(notif)
	ev := model.GatewayEventModel{
		GatewayEventOrderID: notif.OrderID,
		GatewayEventType:    notif.TransactionStatus,
		GatewayEventPayload: datatypes.JSON(payload),
		GatewayEventStatus:  status,
	}
	if errMsg != "" {
		ev.GatewayEventError = &errMsg
	}
	if status == "processed" || status == "failed" {
		now := time.Now()
		ev.GatewayEventProcessedAt = &now
	}
	// audit only, a failed insert must not fail the webhook
	_ = ctl.DB.Create(&ev).Error
}

/* =========================================================
   Verification & history
========================================================= */

// GET /api/payments/verify-session?session_id=
func (ctl *PaymentController) VerifySession(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id wajib diisi")
	}

	var purchase model.PurchaseModel
	if err := ctl.DB.First(&purchase,
		"purchase_order_id = ? AND purchase_user_id = ?", sessionID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Sesi pembayaran tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pembelian")
	}
	return helpers.JsonOK(c, "Sesi pembayaran ditemukan", dto.ToPurchaseDTO(purchase))
}

// GET /api/payments/verify/:courseId
func (ctl *PaymentController) VerifyCourseAccess(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Course ID tidak valid")
	}

	ok, err := service.HasCompletedPurchase(ctl.DB, userID, courseID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	return helpers.JsonOK(c, "Akses course diperiksa", fiber.Map{"has_access": ok})
}

// GET /api/payments/history
func (ctl *PaymentController) History(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	var purchases []model.PurchaseModel
	if err := ctl.DB.
		Where("purchase_user_id = ?", userID).
		Order("purchase_created_at DESC").
		Find(&purchases).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil riwayat")
	}

	courseByID := map[uuid.UUID]courseModel.CourseModel{}
	if len(purchases) > 0 {
		ids := make([]uuid.UUID, 0, len(purchases))
		for _, p := range purchases {
			ids = append(ids, p.PurchaseCourseID)
		}
		var courses []courseModel.CourseModel
		if err := ctl.DB.Find(&courses, "course_id IN ?", ids).Error; err == nil {
			for _, cm := range courses {
				courseByID[cm.CourseID] = cm
			}
		}
	}

	out := make([]dto.PurchaseHistoryItem, 0, len(purchases))
	for _, p := range purchases {
		item := dto.PurchaseHistoryItem{PurchaseDTO: dto.ToPurchaseDTO(p)}
		if cm, ok := courseByID[p.PurchaseCourseID]; ok {
			item.CourseTitle = cm.CourseTitle
			item.CourseSlug = cm.CourseSlug
			item.CourseThumbnailKey = cm.CourseThumbnailKey
		}
		out = append(out, item)
	}
	return helpers.JsonOK(c, "Riwayat pembelian berhasil diambil", out)
}

/* =========================================================
   Admin moderation
========================================================= */

// GET /api/admin/purchases?status=
func (ctl *PaymentController) AdminListPurchases(c *fiber.Ctx) error {
	p := helpers.ParseFiber(c, "created_at", "desc", helpers.AdminPageOpts)

	q := ctl.DB.WithContext(c.Context()).Model(&model.PurchaseModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("purchase_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pembelian")
	}

	allowed := map[string]string{
		"created_at": "purchase_created_at",
		"paid_at":    "purchase_paid_at",
		"amount":     "purchase_amount_idr",
	}
	var purchases []model.PurchaseModel
	if err := q.Order(p.SafeOrderClause(allowed, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&purchases).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pembelian")
	}

	out := make([]dto.PurchaseDTO, 0, len(purchases))
	for _, pu := range purchases {
		out = append(out, dto.ToPurchaseDTO(pu))
	}
	return helpers.JsonOK(c, "OK", fiber.Map{
		"purchases": out,
		"total":     total,
		"meta":      helpers.BuildPageMeta(total, p),
	})
}
