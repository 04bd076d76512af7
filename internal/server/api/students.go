package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/server/biz"
)

type StudentHandlersParams struct {
	fx.In

	StudentService *biz.StudentService
	PaymentService *biz.PaymentService
}

func NewStudentHandlers(params StudentHandlersParams) *StudentHandlers {
	return &StudentHandlers{
		StudentService: params.StudentService,
		PaymentService: params.PaymentService,
	}
}

type StudentHandlers struct {
	StudentService *biz.StudentService
	PaymentService *biz.PaymentService
}

type StudentResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Get returns one student record.
func (h *StudentHandlers) Get(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid student id"))
		return
	}

	student, err := h.StudentService.GetStudent(c.Request.Context(), biz.GetStudentQuery{Student: studentID})
	if err != nil {
		Denied(c, err)
		return
	}

	c.JSON(http.StatusOK, StudentResponse{
		ID:        student.ID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
	})
}

type PaymentResponse struct {
	ID          int    `json:"id"`
	StudentID   int    `json:"student_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
	DueAt       string `json:"due_at"`
}

// GetPayment returns one payment record of a student.
func (h *StudentHandlers) GetPayment(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid student id"))
		return
	}

	paymentID, err := strconv.Atoi(c.Param("payment"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid payment id"))
		return
	}

	payment, err := h.PaymentService.GetPayment(c.Request.Context(), biz.GetPaymentQuery{
		Payment: paymentID,
		Student: studentID,
	})
	if err != nil {
		Denied(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		ID:          payment.ID,
		StudentID:   payment.StudentID,
		AmountCents: payment.AmountCents,
		Status:      payment.Status,
		DueAt:       payment.DueAt.Format("2006-01-02"),
	})
}
