package service

import (
	"fmt"
	"testing"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name   string
		weight *float64
		height *float64
		want   *float64
	}{
		{name: "rounds to one decimal", weight: ptr(70.0), height: ptr(1.75), want: ptr(22.9)},
		{name: "rounds half up", weight: ptr(81.0), height: ptr(2.0), want: ptr(20.3)},
		{name: "zero height", weight: ptr(70.0), height: ptr(0.0)},
		{name: "missing height", weight: ptr(70.0)},
		{name: "missing weight", height: ptr(1.75)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBMI(tt.weight, tt.height)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func evaluationRequest(f fixtures) model.PhysicalEvaluationRequest {
	return model.PhysicalEvaluationRequest{
		StudentID:    f.student.ID,
		InstructorID: f.instructor.ID,
		Date:         "2025-01-10",
		Type:         model.EvaluationInitial,
	}
}

func TestCreatePhysicalEvaluation_DerivesBMI(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewEvaluationService(db)

	req := evaluationRequest(f)
	req.Weight = ptr(70.0)
	req.Height = ptr(1.75)
	req.Anamnesis = &model.EvaluationAnamnesis{MainComplaint: ptr("low back pain")}
	req.Fms = &model.FmsScores{DeepSquat: ptr(2)}

	view, err := svc.CreatePhysicalEvaluation(req)
	require.NoError(t, err)
	require.NotNil(t, view.BMI)
	assert.InDelta(t, 22.9, *view.BMI, 1e-9)
	assert.Equal(t, "Maria Souza", view.Student.Name)
	assert.Equal(t, "low back pain", *view.Anamnesis.MainComplaint)
	assert.Equal(t, 2, *view.Fms.DeepSquat)
	assert.Nil(t, view.Balance)
	assert.Empty(t, view.AnatomicalMarkers)
	assert.NotNil(t, view.AnatomicalMarkers)

	stored, err := svc.GetPhysicalEvaluation(view.ID)
	require.NoError(t, err)
	assert.InDelta(t, 22.9, *stored.BMI, 1e-9)
}

func TestCreatePhysicalEvaluation_NoBMIWithoutHeight(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewEvaluationService(db)

	req := evaluationRequest(f)
	req.Weight = ptr(70.0)
	req.Height = ptr(0.0)

	view, err := svc.CreatePhysicalEvaluation(req)
	require.NoError(t, err)
	assert.Nil(t, view.BMI)

	stored, err := svc.GetPhysicalEvaluation(view.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.BMI)
}

func TestCreatePhysicalEvaluation_MissingStudent(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	req := evaluationRequest(f)
	req.StudentID = 55
	_, err := NewEvaluationService(db).CreatePhysicalEvaluation(req)
	require.Error(t, err)
	assert.Equal(t, "Student not found with id: 55", err.Error())

	var count int64
	require.NoError(t, db.Model(&model.PhysicalEvaluation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPhysicalEvaluation_MarkersKeepOrder(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewEvaluationService(db)

	markers := []model.AnatomicalMarker{
		{X: 120.5, Y: 88, Type: "pain", Description: "lumbar"},
		{X: 40, Y: 12.25, Type: "tension", Description: "neck"},
		{X: 3, Y: 4, Type: "pain", Description: "left knee"},
	}
	req := evaluationRequest(f)
	req.AnatomicalMarkers = markers

	view, err := svc.CreatePhysicalEvaluation(req)
	require.NoError(t, err)

	stored, err := svc.GetPhysicalEvaluation(view.ID)
	require.NoError(t, err)
	assert.Equal(t, markers, stored.AnatomicalMarkers)
}

func TestUpdatePhysicalEvaluation_RecomputesBMI(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewEvaluationService(db)

	req := evaluationRequest(f)
	req.Weight = ptr(70.0)
	req.Height = ptr(1.75)
	created, err := svc.CreatePhysicalEvaluation(req)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.PhysicalEvaluation{}).Where("id = ?", created.ID).Update("bmi", 1.0).Error)

	update := evaluationRequest(f)
	update.Weight = ptr(70.0)
	update.Height = ptr(1.75)
	update.MedicalObservations = ptr("cleared for reformer")
	updated, err := svc.UpdatePhysicalEvaluation(created.ID, update)
	require.NoError(t, err)
	assert.InDelta(t, 22.9, *updated.BMI, 1e-9)
	assert.Equal(t, "cleared for reformer", *updated.MedicalObservations)
}

func TestUpdatePhysicalEvaluation_MergesSuppliedFields(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewEvaluationService(db)

	req := evaluationRequest(f)
	req.Weight = ptr(70.0)
	req.Height = ptr(1.75)
	req.Fms = &model.FmsScores{DeepSquat: ptr(2), HurdleStep: ptr(1)}
	req.Objectives = ptr("core strength")
	req.AnatomicalMarkers = []model.AnatomicalMarker{{X: 1, Y: 2, Type: "pain"}}
	created, err := svc.CreatePhysicalEvaluation(req)
	require.NoError(t, err)

	update := evaluationRequest(f)
	update.Fms = &model.FmsScores{HurdleStep: ptr(3)}
	update.Type = model.EvaluationProgress
	updated, err := svc.UpdatePhysicalEvaluation(created.ID, update)
	require.NoError(t, err)

	assert.Equal(t, model.EvaluationProgress, updated.Type)
	assert.Equal(t, 2, *updated.Fms.DeepSquat)
	assert.Equal(t, 3, *updated.Fms.HurdleStep)
	assert.Equal(t, "core strength", *updated.Objectives)
	assert.InDelta(t, 22.9, *updated.BMI, 1e-9)
	assert.Len(t, updated.AnatomicalMarkers, 1)
}

func TestUpdatePhysicalEvaluation_ReResolvesPeople(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewEvaluationService(db)

	created, err := svc.CreatePhysicalEvaluation(evaluationRequest(f))
	require.NoError(t, err)

	other := model.Student{Name: "Joao Alves", Status: model.StudentStatusActive}
	require.NoError(t, db.Create(&other).Error)

	update := evaluationRequest(f)
	update.StudentID = other.ID
	updated, err := svc.UpdatePhysicalEvaluation(created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, model.StudentInfo{ID: other.ID, Name: "Joao Alves"}, updated.Student)

	update.InstructorID = 321
	_, err = svc.UpdatePhysicalEvaluation(created.ID, update)
	require.Error(t, err)
	assert.Equal(t, "Instructor not found with id: 321", err.Error())

	_, err = svc.UpdatePhysicalEvaluation(999, evaluationRequest(f))
	assert.Equal(t, "PhysicalEvaluation not found with id: 999", err.Error())
}

func TestListPhysicalEvaluationsForStudent(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewEvaluationService(db)

	other := model.Student{Name: "Joao Alves", Status: model.StudentStatusActive}
	require.NoError(t, db.Create(&other).Error)

	for i := 1; i <= 12; i++ {
		req := evaluationRequest(f)
		req.Date = fmt.Sprintf("2025-01-%02d", i)
		_, err := svc.CreatePhysicalEvaluation(req)
		require.NoError(t, err)
	}
	otherReq := evaluationRequest(f)
	otherReq.StudentID = other.ID
	_, err := svc.CreatePhysicalEvaluation(otherReq)
	require.NoError(t, err)

	page, err := svc.ListPhysicalEvaluationsForStudent(f.student.ID, NewPageRequest(0, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)
	require.Len(t, page.Content, 5)
	assert.Equal(t, "2025-01-12", page.Content[0].Date)

	all, err := svc.ListPhysicalEvaluations(NewPageRequest(0, 50))
	require.NoError(t, err)
	assert.Equal(t, int64(13), all.Total)

	_, err = svc.ListPhysicalEvaluationsForStudent(888, NewPageRequest(0, 5))
	assert.True(t, IsNotFound(err))
}

func TestDeletePhysicalEvaluation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewEvaluationService(db)

	created, err := svc.CreatePhysicalEvaluation(evaluationRequest(f))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePhysicalEvaluation(created.ID))
	_, err = svc.GetPhysicalEvaluation(created.ID)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(svc.DeletePhysicalEvaluation(created.ID)))
}
