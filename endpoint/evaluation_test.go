package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluationBody(f fixtures, date string) map[string]interface{} {
	return map[string]interface{}{
		"studentId":    f.student.ID,
		"instructorId": f.instructor.ID,
		"date":         date,
		"type":         "INITIAL",
		"anamnesis": map[string]interface{}{
			"mainComplaint": "Lower back pain",
		},
		"weight": 70,
		"height": 1.75,
		"fms": map[string]interface{}{
			"deepSquat": 2,
		},
		"anatomicalMarkers": []map[string]interface{}{
			{"x": 10.5, "y": 20, "type": "pain", "description": "lumbar"},
			{"x": 30, "y": 40.25, "type": "tension", "description": "neck"},
		},
	}
}

func TestPhysicalEvaluation_CreateDerivesBMIAndKeepsMarkers(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/evaluations/physical", evaluationBody(f, "2025-03-10"))
	assertStatus(t, w, http.StatusCreated)
	id := idOf(t, resp)
	assert.Equal(t, fmt.Sprintf("/api/evaluations/physical/%d", id), w.Header().Get("Location"))
	assert.Equal(t, 22.9, resp["bmi"])
	assert.Equal(t, "Lower back pain", resp["anamnesis"].(map[string]interface{})["mainComplaint"])
	assert.Equal(t, float64(2), resp["fms"].(map[string]interface{})["deepSquat"])

	w, resp = mustRequest(t, r, http.MethodGet, fmt.Sprintf("/api/evaluations/physical/%d", id), nil)
	assertStatus(t, w, http.StatusOK)
	markers := resp["anatomicalMarkers"].([]interface{})
	require.Len(t, markers, 2)
	assert.Equal(t, "pain", markers[0].(map[string]interface{})["type"])
	assert.Equal(t, "neck", markers[1].(map[string]interface{})["description"])
	assert.Equal(t, "Ana Lima", resp["instructor"].(map[string]interface{})["name"])
}

func TestPhysicalEvaluation_BMIAbsentWithoutHeight(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	body := evaluationBody(f, "2025-03-10")
	delete(body, "height")
	w, resp := mustRequest(t, r, http.MethodPost, "/api/evaluations/physical", body)
	assertStatus(t, w, http.StatusCreated)
	assert.Nil(t, resp["bmi"])
}

func TestPhysicalEvaluation_RejectsBadScores(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	body := evaluationBody(f, "2025-03-10")
	body["fms"] = map[string]interface{}{"deepSquat": 4}
	body["type"] = "FINAL"
	w, resp := mustRequest(t, r, http.MethodPost, "/api/evaluations/physical", body)

	assertStatus(t, w, http.StatusBadRequest)
	details := detailsOf(resp)
	assert.Contains(t, details, "fms.deepSquat: must be less than or equal to 3")
	assert.Contains(t, details, "type: must be one of [INITIAL PROGRESS REASSESSMENT DISCHARGE]")
}

func TestPhysicalEvaluation_UpdateMergesAndRecomputesBMI(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/evaluations/physical", evaluationBody(f, "2025-03-10"))
	assertStatus(t, w, http.StatusCreated)
	path := fmt.Sprintf("/api/evaluations/physical/%d", idOf(t, resp))

	update := map[string]interface{}{
		"studentId":    f.student.ID,
		"instructorId": f.instructor.ID,
		"date":         "2025-04-10",
		"type":         "PROGRESS",
		"weight":       65,
		"height":       1.75,
		"fms":          map[string]interface{}{"hurdleStep": 3},
	}
	w, resp = mustRequest(t, r, http.MethodPut, path, update)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, 21.2, resp["bmi"])
	assert.Equal(t, "PROGRESS", resp["type"])
	fms := resp["fms"].(map[string]interface{})
	assert.Equal(t, float64(2), fms["deepSquat"])
	assert.Equal(t, float64(3), fms["hurdleStep"])
	assert.Len(t, resp["anatomicalMarkers"], 2)
	assert.Equal(t, "Lower back pain", resp["anamnesis"].(map[string]interface{})["mainComplaint"])
}

func TestPhysicalEvaluation_ListForStudentNewestFirst(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	for _, date := range []string{"2025-01-10", "2025-03-10", "2025-02-10"} {
		w, _ := mustRequest(t, r, http.MethodPost, "/api/evaluations/physical", evaluationBody(f, date))
		assertStatus(t, w, http.StatusCreated)
	}

	w, resp := mustRequest(t, r, http.MethodGet, fmt.Sprintf("/api/students/%d/evaluations/physical?size=2", f.student.ID), nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, float64(3), resp["totalElements"])
	assert.Equal(t, float64(2), resp["totalPages"])
	content := resp["content"].([]interface{})
	require.Len(t, content, 2)
	assert.Equal(t, "2025-03-10", content[0].(map[string]interface{})["date"])
	assert.Equal(t, "2025-02-10", content[1].(map[string]interface{})["date"])

	w, _ = mustRequest(t, r, http.MethodGet, "/api/students/999/evaluations/physical", nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestPhysicalEvaluation_DeleteThenNotFound(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/evaluations/physical", evaluationBody(f, "2025-03-10"))
	assertStatus(t, w, http.StatusCreated)
	path := fmt.Sprintf("/api/evaluations/physical/%d", idOf(t, resp))

	w, _ = mustRequest(t, r, http.MethodDelete, path, nil)
	assertStatus(t, w, http.StatusNoContent)
	w, _ = mustRequest(t, r, http.MethodGet, path, nil)
	assertStatus(t, w, http.StatusNotFound)
}

func evolutionBody(f fixtures) map[string]interface{} {
	return map[string]interface{}{
		"studentId":          f.student.ID,
		"instructorId":       f.instructor.ID,
		"date":               "2025-03-12",
		"sessionNumber":      4,
		"focus":              "Core stability",
		"exercisesPerformed": []string{"Hundred", "Roll up"},
		"overallRating":      4,
		"painLevel":          2,
		"equipment":          []string{"REFORMER"},
		"duration":           55,
	}
}

func TestEvolutionRecord_Lifecycle(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	w, resp := mustRequest(t, r, http.MethodPost, "/api/evaluations/evolution", evolutionBody(f))
	assertStatus(t, w, http.StatusCreated)
	id := idOf(t, resp)
	assert.Equal(t, []interface{}{"Hundred", "Roll up"}, resp["exercisesPerformed"])
	path := fmt.Sprintf("/api/evaluations/evolution/%d", id)

	update := evolutionBody(f)
	update["exercisesPerformed"] = []string{}
	delete(update, "equipment")
	update["painLevel"] = 0
	w, resp = mustRequest(t, r, http.MethodPut, path, update)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, []interface{}{}, resp["exercisesPerformed"])
	assert.Equal(t, []interface{}{"REFORMER"}, resp["equipment"])
	assert.Equal(t, float64(0), resp["painLevel"])

	w, resp = mustRequest(t, r, http.MethodGet, fmt.Sprintf("/api/students/%d/evaluations/evolution", f.student.ID), nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, float64(1), resp["totalElements"])

	w, resp = mustRequest(t, r, http.MethodGet, "/api/evaluations/evolution", nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, float64(1), resp["totalElements"])

	w, _ = mustRequest(t, r, http.MethodDelete, path, nil)
	assertStatus(t, w, http.StatusNoContent)
	w, _ = mustRequest(t, r, http.MethodGet, path, nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestEvolutionRecord_Validation(t *testing.T) {
	r, db := setupEndpointTest(t)
	f := seedFixtures(t, db)

	body := evolutionBody(f)
	body["overallRating"] = 6
	body["painLevel"] = 11
	w, resp := mustRequest(t, r, http.MethodPost, "/api/evaluations/evolution", body)
	assertStatus(t, w, http.StatusBadRequest)
	details := detailsOf(resp)
	assert.Contains(t, details, "overallRating: must be less than or equal to 5")
	assert.Contains(t, details, "painLevel: must be less than or equal to 10")

	body = evolutionBody(f)
	body["studentId"] = 404
	w, resp = mustRequest(t, r, http.MethodPost, "/api/evaluations/evolution", body)
	assertStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Student not found with id: 404", resp["message"])
}
