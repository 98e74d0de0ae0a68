package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/narteyr/flashcards/internal/model"
)

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec, decodeBody(t, rec)
}

// uploadedFileID uploads one text file and returns the id of its stored
// file record, read back from the job's status payload.
func uploadedFileID(t *testing.T, r *gin.Engine) string {
	t.Helper()
	rec := doUpload(t, r, func(w *multipart.Writer) {
		addFilePart(t, w, "week1.txt", "text/plain", []byte("week one covers cell structure and function"))
	})
	require.Equal(t, http.StatusOK, rec.Code)
	jobID := decodeBody(t, rec)["jobId"].(string)

	_, jobBody := getJSON(t, r, "/v1/jobs/"+jobID)
	payload := jobBody["payload"].(map[string]interface{})
	files := payload["files"].([]interface{})
	id, _ := files[0].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestMaterialModerationEndpoints(t *testing.T) {
	r := newTestRouter(t, `[{"front":"Q","back":"A"}]`)
	fileID := uploadedFileID(t, r)

	courseRec := postJSON(t, r, "/v1/courses", gin.H{
		"code":    "BIO101",
		"title":   "Intro Biology",
		"program": "Biology",
	})
	require.Equal(t, http.StatusCreated, courseRec.Code)
	courseID := decodeBody(t, courseRec)["id"].(string)

	submitRec := postJSON(t, r, "/v1/materials", gin.H{
		"course_id":   courseID,
		"file_id":     fileID,
		"title":       "Week 1 notes",
		"uploaded_by": "student-1",
	})
	require.Equal(t, http.StatusCreated, submitRec.Code)
	materialBody := decodeBody(t, submitRec)
	require.Equal(t, string(model.ModerationPending), materialBody["status"])
	materialID := materialBody["id"].(string)

	// Pending submissions stay out of the default listing
	listRec, listBody := getJSON(t, r, "/v1/materials?course_id="+courseID)
	require.Equal(t, http.StatusOK, listRec.Code)
	require.Empty(t, listBody["data"])

	approveRec := postJSON(t, r, "/v1/materials/"+materialID+"/approve", gin.H{
		"reviewed_by": "moderator-1",
	})
	require.Equal(t, http.StatusOK, approveRec.Code)
	require.Equal(t, string(model.ModerationApproved), decodeBody(t, approveRec)["status"])

	_, listBody = getJSON(t, r, "/v1/materials?course_id="+courseID)
	data := listBody["data"].([]interface{})
	require.Len(t, data, 1)
	require.Equal(t, "Week 1 notes", data[0].(map[string]interface{})["title"])

	// A second review attempt fails
	again := postJSON(t, r, "/v1/materials/"+materialID+"/reject", gin.H{})
	require.Equal(t, http.StatusInternalServerError, again.Code)
}

func TestSubmitMaterialValidation(t *testing.T) {
	r := newTestRouter(t, "[]")

	rec := postJSON(t, r, "/v1/materials", gin.H{"title": "missing ids"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, r, "/v1/materials", gin.H{
		"course_id": "not-a-uuid",
		"file_id":   "also-bad",
		"title":     "x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid course_id", decodeBody(t, rec)["error"])
}

func TestListCourses(t *testing.T) {
	r := newTestRouter(t, "[]")

	for i := 0; i < 2; i++ {
		rec := postJSON(t, r, "/v1/courses", gin.H{
			"code":  fmt.Sprintf("CS%d", i),
			"title": fmt.Sprintf("Course %d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := getJSON(t, r, "/v1/courses")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["data"], 2)
	pagination := body["pagination"].(map[string]interface{})
	require.EqualValues(t, 2, pagination["total"])
}
