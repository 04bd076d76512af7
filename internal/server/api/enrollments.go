package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/server/biz"
)

type EnrollmentHandlersParams struct {
	fx.In

	EnrollmentService *biz.EnrollmentService
}

func NewEnrollmentHandlers(params EnrollmentHandlersParams) *EnrollmentHandlers {
	return &EnrollmentHandlers{
		EnrollmentService: params.EnrollmentService,
	}
}

type EnrollmentHandlers struct {
	EnrollmentService *biz.EnrollmentService
}

type AssignmentRequest struct {
	TeacherID int `json:"teacher_id" binding:"required"`
	SectionID int `json:"section_id" binding:"required"`
	SubjectID int `json:"subject_id" binding:"required"`
}

// Assign activates a teaching assignment.
func (h *EnrollmentHandlers) Assign(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	err := h.EnrollmentService.AssignTeacher(c.Request.Context(), biz.AssignTeacherCommand{
		Teacher: req.TeacherID,
		Section: req.SectionID,
		Subject: req.SubjectID,
	})
	if err != nil {
		Denied(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// Unassign deactivates a teaching assignment.
func (h *EnrollmentHandlers) Unassign(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	err := h.EnrollmentService.UnassignTeacher(c.Request.Context(), biz.UnassignTeacherCommand{
		Teacher: req.TeacherID,
		Section: req.SectionID,
		Subject: req.SubjectID,
	})
	if err != nil {
		Denied(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type GuardianLinkRequest struct {
	GuardianID int `json:"guardian_id" binding:"required"`
	StudentID  int `json:"student_id"  binding:"required"`
}

// LinkGuardian links a guardian user to a student.
func (h *EnrollmentHandlers) LinkGuardian(c *gin.Context) {
	var req GuardianLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	err := h.EnrollmentService.LinkGuardian(c.Request.Context(), biz.LinkGuardianCommand{
		Guardian: req.GuardianID,
		Student:  req.StudentID,
	})
	if err != nil {
		Denied(c, err)
		return
	}

	c.Status(http.StatusCreated)
}
