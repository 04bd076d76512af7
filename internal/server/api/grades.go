package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/server/biz"
	"github.com/campushq/campushub/internal/store"
)

type GradeHandlersParams struct {
	fx.In

	GradeService *biz.GradeService
}

func NewGradeHandlers(params GradeHandlersParams) *GradeHandlers {
	return &GradeHandlers{
		GradeService: params.GradeService,
	}
}

type GradeHandlers struct {
	GradeService *biz.GradeService
}

type CreateGradeRequest struct {
	StudentID int     `json:"student_id" binding:"required"`
	SectionID int     `json:"section_id" binding:"required"`
	SubjectID int     `json:"subject_id" binding:"required"`
	Term      string  `json:"term"       binding:"required"`
	Score     float64 `json:"score"`
}

type ListGradesRequest struct {
	SectionID int `form:"section_id" binding:"required"`
	SubjectID int `form:"subject_id" binding:"required"`
}

type GradeResponse struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	SectionID int       `json:"section_id"`
	SubjectID int       `json:"subject_id"`
	Term      string    `json:"term"`
	Score     float64   `json:"score"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func gradeResponse(grade *store.Grade) GradeResponse {
	return GradeResponse{
		ID:        grade.ID,
		StudentID: grade.StudentID,
		SectionID: grade.SectionID,
		SubjectID: grade.SubjectID,
		Term:      grade.Term,
		Score:     grade.Score,
		CreatedBy: grade.CreatedBy,
		CreatedAt: grade.CreatedAt,
	}
}

// Create records a grade for a student in a section/subject pair.
func (h *GradeHandlers) Create(c *gin.Context) {
	var req CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	grade, err := h.GradeService.CreateGrade(c.Request.Context(), biz.CreateGradeCommand{
		Student: req.StudentID,
		Section: req.SectionID,
		Subject: req.SubjectID,
		Term:    req.Term,
		Score:   req.Score,
	})
	if err != nil {
		Denied(c, err)
		return
	}

	c.JSON(http.StatusCreated, gradeResponse(grade))
}

// List returns the grades of a section/subject pair.
func (h *GradeHandlers) List(c *gin.Context) {
	var req ListGradesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	grades, err := h.GradeService.ListGrades(c.Request.Context(), biz.ListGradesQuery{
		Section: req.SectionID,
		Subject: req.SubjectID,
	})
	if err != nil {
		Denied(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"grades": lo.Map(grades, func(grade *store.Grade, _ int) GradeResponse {
			return gradeResponse(grade)
		}),
	})
}
