package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/narteyr/flashcards/internal/service"
)

type UploadHandler struct {
	svc *service.UploadService
}

func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload accepts a multipart batch under "files" and runs the full
// upload-to-flashcards pipeline.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	maxCards, _ := strconv.Atoi(c.PostForm("maxCards"))

	req := service.UploadRequest{
		UserID:   c.PostForm("userId"),
		Topic:    c.PostForm("topic"),
		Tone:     c.PostForm("tone"),
		MaxCards: maxCards,
	}

	var openErrors []service.FileError
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			openErrors = append(openErrors, service.FileError{
				FileName: header.Filename,
				Reason:   err.Error(),
			})
			continue
		}
		defer file.Close()

		req.Files = append(req.Files, service.UploadItem{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		})
	}

	if len(req.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No valid files to process",
			"details": openErrors,
		})
		return
	}

	result, err := h.svc.Process(c.Request.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   verr.Error(),
				"details": append(openErrors, verr.Errors...),
			})
			return
		}

		var perr *service.PipelineError
		if errors.As(err, &perr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": perr.Err.Error(),
				"jobId": perr.JobID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"jobId":          result.JobID,
		"flashcardCount": result.FlashcardCount,
		"message":        "flashcards generated",
	}
	if len(result.FileErrors) > 0 || len(openErrors) > 0 {
		resp["details"] = append(openErrors, result.FileErrors...)
	}
	c.JSON(http.StatusOK, resp)
}
