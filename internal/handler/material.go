package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/narteyr/flashcards/internal/model"
	"github.com/narteyr/flashcards/internal/service"
)

type MaterialHandler struct {
	svc *service.MaterialService
}

func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

type submitMaterialRequest struct {
	CourseID    string `json:"course_id" binding:"required"`
	FileID      string `json:"file_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	UploadedBy  string `json:"uploaded_by"`
}

func (h *MaterialHandler) Submit(c *gin.Context) {
	var req submitMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}
	fileID, err := uuid.Parse(req.FileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file_id"})
		return
	}

	material, err := h.svc.Submit(c.Request.Context(), courseID, fileID, req.Title, req.Description, req.UploadedBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *MaterialHandler) List(c *gin.Context) {
	var courseID *uuid.UUID
	if cid := c.Query("course_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
			return
		}
		courseID = &id
	}

	// Public listings default to approved materials only
	statusFilter := c.DefaultQuery("status", string(model.ModerationApproved))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	materials, total, err := h.svc.List(c.Request.Context(), courseID, statusFilter, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": materials,
		"pagination": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

type reviewRequest struct {
	ReviewedBy string `json:"reviewed_by"`
	Note       string `json:"note"`
}

func (h *MaterialHandler) Approve(c *gin.Context) {
	h.review(c, true)
}

func (h *MaterialHandler) Reject(c *gin.Context) {
	h.review(c, false)
}

func (h *MaterialHandler) review(c *gin.Context, approve bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req reviewRequest
	_ = c.ShouldBindJSON(&req)

	material, err := h.svc.Review(c.Request.Context(), id, approve, req.ReviewedBy, req.Note)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, material)
}

type createCourseRequest struct {
	Code    string `json:"code" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Program string `json:"program"`
	Term    string `json:"term"`
}

func (h *MaterialHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := &model.Course{
		Code:    req.Code,
		Title:   req.Title,
		Program: req.Program,
		Term:    req.Term,
	}
	if err := h.svc.CreateCourse(c.Request.Context(), course); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *MaterialHandler) ListCourses(c *gin.Context) {
	program := c.Query("program")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	courses, total, err := h.svc.ListCourses(c.Request.Context(), program, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": courses,
		"pagination": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}
