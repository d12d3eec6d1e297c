package endpoint

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentBody(name, email string) map[string]interface{} {
	return map[string]interface{}{
		"name":   name,
		"email":  email,
		"phone":  "11987654321",
		"status": "ACTIVE",
		"plan":   "2x per week",
		"anamnesis": map[string]interface{}{
			"allergies":    "none",
			"hypertension": true,
		},
	}
}

func instructorBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":        "Carla Mendes",
		"email":       email,
		"password":    "s3cret-pass",
		"role":        "ROLE_INSTRUCTOR",
		"status":      "ACTIVE",
		"specialties": []string{"Reformer", "Mat"},
		"workingHours": []map[string]interface{}{
			{"dayOfWeek": "MONDAY", "startTime": "08:00", "endTime": "12:00", "isAvailable": true},
		},
	}
}

func classTypeBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":      name,
		"duration":  50,
		"price":     90,
		"capacity":  4,
		"intensity": "LOW",
		"color":     "#3b82f6",
		"equipment": []string{"BARREL"},
	}
}

func TestStudent_CRUD(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/students", studentBody("  Joana   Prado ", "joana@example.com"))
	assertStatus(t, w, http.StatusCreated)
	id := idOf(t, resp)
	assert.Equal(t, "Joana Prado", resp["name"])
	assert.Equal(t, []interface{}{}, resp["documents"])
	assert.Equal(t, true, resp["anamnesis"].(map[string]interface{})["hypertension"])
	path := fmt.Sprintf("/api/students/%d", id)
	assert.Equal(t, path, w.Header().Get("Location"))

	update := studentBody("Joana Prado", "joana.prado@example.com")
	delete(update, "anamnesis")
	update["status"] = "SUSPENDED"
	w, resp = mustRequest(t, r, http.MethodPut, path, update)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "SUSPENDED", resp["status"])
	assert.Equal(t, "none", resp["anamnesis"].(map[string]interface{})["allergies"])

	w, resp = mustRequest(t, r, http.MethodGet, "/api/students", nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, float64(1), resp["totalElements"])

	w, _ = mustRequest(t, r, http.MethodDelete, path, nil)
	assertStatus(t, w, http.StatusNoContent)

	w, _ = mustRequest(t, r, http.MethodGet, path, nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestStudent_DuplicateEmailConflict(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, _ := mustRequest(t, r, http.MethodPost, "/api/students", studentBody("Joana Prado", "joana@example.com"))
	assertStatus(t, w, http.StatusCreated)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/students", studentBody("Joana P.", "joana@example.com"))
	assertStatus(t, w, http.StatusConflict)
	assert.Equal(t, "Conflict", resp["error"])
}

func TestStudent_ValidationDetails(t *testing.T) {
	r, _ := setupEndpointTest(t)

	body := studentBody("", "not-an-email")
	body["status"] = "GONE"
	w, resp := mustRequest(t, r, http.MethodPost, "/api/students", body)

	assertStatus(t, w, http.StatusBadRequest)
	details := detailsOf(resp)
	assert.Contains(t, details, "name: must not be null")
	assert.Contains(t, details, "email: must be a well-formed email address")
	assert.Contains(t, details, "status: must be one of [ACTIVE INACTIVE SUSPENDED]")
}

func TestStudent_DeleteReferencedIsConflict(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	w, _ := mustRequest(t, r, http.MethodPost, "/api/schedules", scheduleBody(f, daysFromToday(1), "09:00", "10:00"))
	assertStatus(t, w, http.StatusCreated)

	w, _ = mustRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/students/%d", f.student.ID), nil)
	assertStatus(t, w, http.StatusConflict)
}

func uploadDocument(t *testing.T, r *gin.Engine, studentID uint, fileName, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/students/%d/documents", studentID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStudentDocuments_UploadListDownload(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	w := uploadDocument(t, r, f.student.ID, "exam.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	assertStatus(t, w, http.StatusCreated)
	assert.NotContains(t, w.Body.String(), "filePath")

	var doc model.Document
	require.NoError(t, db.Where("student_id = ?", f.student.ID).First(&doc).Error)
	assert.Equal(t, "exam.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.FileType)
	assert.Equal(t, int64(13), doc.Size)

	w, _ = mustRequest(t, r, http.MethodGet, fmt.Sprintf("/api/students/%d/documents", f.student.ID), nil)
	assertStatus(t, w, http.StatusOK)
	listed := decodeList(t, w)
	require.Len(t, listed, 1)
	assert.Equal(t, "exam.pdf", listed[0]["fileName"])
	assert.NotContains(t, listed[0], "filePath")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/students/%d/documents/%d", f.student.ID, doc.ID), nil)
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, req)
	assertStatus(t, dw, http.StatusOK)
	body, err := io.ReadAll(dw.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(body))
	assert.Contains(t, dw.Header().Get("Content-Disposition"), `filename="exam.pdf"`)

	w, _ = mustRequest(t, r, http.MethodGet, fmt.Sprintf("/api/students/%d/documents/%d", f.student.ID, doc.ID+1), nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestStudentDocuments_Errors(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	w := uploadDocument(t, r, 999, "exam.pdf", "application/pdf", []byte("x"))
	assertStatus(t, w, http.StatusNotFound)

	w, resp := mustRequest(t, r, http.MethodPost, fmt.Sprintf("/api/students/%d/documents", f.student.ID), map[string]string{"file": "nope"})
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, []string{"file: must not be null"}, detailsOf(resp))
}

func TestInstructor_CRUD(t *testing.T) {
	r, db := setupEndpointTest(t)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/instructors", instructorBody("Carla@Studio.com"))
	assertStatus(t, w, http.StatusCreated)
	id := idOf(t, resp)
	assert.Equal(t, "carla@studio.com", resp["email"])
	assert.NotContains(t, w.Body.String(), "password")
	assert.Len(t, resp["workingHours"], 1)

	var stored model.Instructor
	require.NoError(t, db.First(&stored, id).Error)
	assert.NotEqual(t, "s3cret-pass", stored.Password)

	path := fmt.Sprintf("/api/instructors/%d", id)
	update := instructorBody("carla@studio.com")
	delete(update, "password")
	delete(update, "workingHours")
	update["bio"] = "Certified in clinical Pilates"
	w, resp = mustRequest(t, r, http.MethodPut, path, update)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "Certified in clinical Pilates", resp["bio"])
	assert.Len(t, resp["workingHours"], 1)

	var unchanged model.Instructor
	require.NoError(t, db.First(&unchanged, id).Error)
	assert.Equal(t, stored.Password, unchanged.Password)

	w, resp = mustRequest(t, r, http.MethodGet, "/api/instructors?size=5", nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, float64(5), resp["size"])

	w, _ = mustRequest(t, r, http.MethodDelete, path, nil)
	assertStatus(t, w, http.StatusNoContent)
	w, _ = mustRequest(t, r, http.MethodGet, path, nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestInstructor_Rules(t *testing.T) {
	r, db := setupEndpointTest(t)
	seedFixtures(t, db)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/instructors", instructorBody("ANA@studio.com"))
	assertStatus(t, w, http.StatusConflict)
	assert.Equal(t, "Email already in use: ana@studio.com", resp["message"])

	noPassword := instructorBody("new@studio.com")
	delete(noPassword, "password")
	w, resp = mustRequest(t, r, http.MethodPost, "/api/instructors", noPassword)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, detailsOf(resp), "password: must not be blank")

	contactOnly := instructorBody("other@studio.com")
	contactOnly["emergencyContact"] = "Pedro"
	w, resp = mustRequest(t, r, http.MethodPost, "/api/instructors", contactOnly)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, detailsOf(resp), "emergencyPhone: is required when emergencyContact is provided")
}

func TestInstructor_WorkingHours(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)
	path := fmt.Sprintf("/api/instructors/%d/working-hours", f.instructor.ID)

	w, _ := mustRequest(t, r, http.MethodGet, path, nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "[]", w.Body.String())

	hours := []map[string]interface{}{
		{"dayOfWeek": "TUESDAY", "startTime": "07:00", "endTime": "11:00", "isAvailable": true},
		{"dayOfWeek": "THURSDAY", "startTime": "14:00:00", "endTime": "18:00:00", "isAvailable": false},
	}
	w, _ = mustRequest(t, r, http.MethodPut, path, hours)
	assertStatus(t, w, http.StatusOK)
	replaced := decodeList(t, w)
	require.Len(t, replaced, 2)
	assert.Equal(t, true, replaced[0]["isAvailable"])
	assert.Equal(t, false, replaced[1]["isAvailable"])

	w, _ = mustRequest(t, r, http.MethodGet, path, nil)
	assertStatus(t, w, http.StatusOK)
	fetched := decodeList(t, w)
	require.Len(t, fetched, 2)
	assert.Equal(t, "THURSDAY", fetched[1]["dayOfWeek"])
	assert.Equal(t, false, fetched[1]["isAvailable"])

	var stored []model.WorkingHours
	require.NoError(t, db.Where("instructor_id = ?", f.instructor.ID).Order("id").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, "07:00:00", stored[0].StartTime)
	assert.False(t, stored[1].IsAvailable)

	w, _ = mustRequest(t, r, http.MethodPut, path, []map[string]interface{}{})
	assertStatus(t, w, http.StatusOK)
	require.NoError(t, db.Where("instructor_id = ?", f.instructor.ID).Find(&stored).Error)
	assert.Empty(t, stored)

	bad := []map[string]interface{}{{"dayOfWeek": "FUNDAY", "startTime": "07:00", "endTime": "11:00", "isAvailable": true}}
	w, resp := mustRequest(t, r, http.MethodPut, path, bad)
	assertStatus(t, w, http.StatusBadRequest)
	assert.NotEmpty(t, detailsOf(resp))

	w, _ = mustRequest(t, r, http.MethodPut, "/api/instructors/999/working-hours", hours)
	assertStatus(t, w, http.StatusNotFound)
}

func TestClassType_CRUD(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/class-types", classTypeBody("Barrel"))
	assertStatus(t, w, http.StatusCreated)
	id := idOf(t, resp)
	assert.Equal(t, []interface{}{"BARREL"}, resp["equipment"])

	w, resp = mustRequest(t, r, http.MethodPost, "/api/class-types", classTypeBody("  Barrel "))
	assertStatus(t, w, http.StatusConflict)
	assert.Equal(t, "Class type already exists: Barrel", resp["message"])

	w, resp = mustRequest(t, r, http.MethodGet, "/api/class-types", nil)
	assertStatus(t, w, http.StatusOK)
	content := resp["content"].([]interface{})
	require.Len(t, content, 2)
	assert.Equal(t, "Barrel", content[0].(map[string]interface{})["name"])

	update := classTypeBody("Barrel Advanced")
	update["intensity"] = "HIGH"
	w, resp = mustRequest(t, r, http.MethodPut, fmt.Sprintf("/api/class-types/%d", id), update)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "HIGH", resp["intensity"])

	w, _ = mustRequest(t, r, http.MethodPost, "/api/schedules", scheduleBody(f, daysFromToday(1), "09:00", "10:00"))
	assertStatus(t, w, http.StatusCreated)
	w, _ = mustRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/class-types/%d", f.classType.ID), nil)
	assertStatus(t, w, http.StatusConflict)

	w, _ = mustRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/class-types/%d", id), nil)
	assertStatus(t, w, http.StatusNoContent)
}
