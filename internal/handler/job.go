package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/narteyr/flashcards/internal/service"
)

type JobHandler struct {
	svc *service.UploadService
}

func NewJobHandler(svc *service.UploadService) *JobHandler {
	return &JobHandler{svc: svc}
}

// Get returns the tracked status of one job, for client polling.
func (h *JobHandler) Get(c *gin.Context) {
	jobID := c.Param("id")

	rec, err := h.svc.Job(c.Request.Context(), jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Flashcards returns the deck generated for one job.
func (h *JobHandler) Flashcards(c *gin.Context) {
	jobID := c.Param("id")

	cards, err := h.svc.Deck(c.Request.Context(), jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobId": jobID,
		"data":  cards,
		"count": len(cards),
	})
}
