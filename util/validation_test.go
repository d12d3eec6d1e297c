package util

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, registerOn(v))
	return v
}

func fixedNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = orig })
}

func validSchedule() model.ScheduleRequest {
	return model.ScheduleRequest{
		StudentID:     1,
		InstructorID:  1,
		ClassTypeID:   1,
		Date:          "2025-03-10",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Status:        model.ScheduleStatusScheduled,
		PaymentStatus: model.PaymentStatusPending,
	}
}

func TestScheduleRequest_Valid(t *testing.T) {
	fixedNow(t, time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local))
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(validSchedule()))
}

func TestScheduleRequest_PastDateRejected(t *testing.T) {
	fixedNow(t, time.Date(2025, time.March, 11, 8, 0, 0, 0, time.Local))
	v := newTestValidator(t)

	err := v.Struct(validSchedule())
	require.Error(t, err)
	assert.Contains(t, BindingErrorDetails(err), "date: must be a date in the present or in the future")
}

func TestScheduleRequest_EndNotAfterStart(t *testing.T) {
	fixedNow(t, time.Date(2025, time.March, 1, 8, 0, 0, 0, time.Local))
	v := newTestValidator(t)

	req := validSchedule()
	req.StartTime = "10:00"
	req.EndTime = "10:00:00"
	err := v.Struct(req)
	require.Error(t, err)
	assert.Equal(t, []string{"endTime: must be after startTime"}, BindingErrorDetails(err))
}

func TestScheduleRequest_MissingFields(t *testing.T) {
	v := newTestValidator(t)

	err := v.Struct(model.ScheduleRequest{})
	require.Error(t, err)
	details := BindingErrorDetails(err)
	assert.Contains(t, details, "studentId: must not be null")
	assert.Contains(t, details, "date: must not be null")
	assert.Contains(t, details, "status: must not be null")
}

func TestScheduleRequest_BadFormats(t *testing.T) {
	fixedNow(t, time.Date(2025, time.March, 1, 8, 0, 0, 0, time.Local))
	v := newTestValidator(t)

	req := validSchedule()
	req.Date = "10/03/2025"
	req.StartTime = "9 o'clock"
	req.Status = "PENDING"
	err := v.Struct(req)
	require.Error(t, err)
	details := BindingErrorDetails(err)
	assert.Contains(t, details, "date: must be a date in format YYYY-MM-DD")
	assert.Contains(t, details, "startTime: must be a time in format HH:MM or HH:MM:SS")
	assert.Contains(t, details, "status: must be one of [SCHEDULED CONFIRMED COMPLETED CANCELLED NO_SHOW]")
}

func TestPhysicalEvaluationRequest_NestedGroupPath(t *testing.T) {
	v := newTestValidator(t)
	score := 4
	req := model.PhysicalEvaluationRequest{
		StudentID:    1,
		InstructorID: 1,
		Date:         "2025-01-10",
		Type:         model.EvaluationInitial,
		Fms:          &model.FmsScores{DeepSquat: &score},
	}

	err := v.Struct(req)
	require.Error(t, err)
	assert.Equal(t, []string{"fms.deepSquat: must be less than or equal to 3"}, BindingErrorDetails(err))
}

func TestStudentRequest_FutureBirthDate(t *testing.T) {
	fixedNow(t, time.Date(2025, time.March, 1, 8, 0, 0, 0, time.Local))
	v := newTestValidator(t)

	err := v.Struct(model.StudentRequest{Name: "Maria", Status: model.StudentStatusActive, BirthDate: "2030-01-01"})
	require.Error(t, err)
	assert.Equal(t, []string{"birthDate: must be a date in the past or in the present"}, BindingErrorDetails(err))
}

func TestWorkingHoursRequest_Slot(t *testing.T) {
	v := newTestValidator(t)
	yes := true

	assert.NoError(t, v.Struct(model.WorkingHoursRequest{DayOfWeek: "MONDAY", StartTime: "08:00", EndTime: "12:00", IsAvailable: &yes}))
	assert.Error(t, v.Struct(model.WorkingHoursRequest{DayOfWeek: "MONDAY", StartTime: "12:00", EndTime: "08:00", IsAvailable: &yes}))
	assert.Error(t, v.Struct(model.WorkingHoursRequest{DayOfWeek: "FUNDAY", StartTime: "08:00", EndTime: "12:00", IsAvailable: &yes}))
}

func TestBindingErrorDetails_JSONErrors(t *testing.T) {
	var req model.ScheduleRequest
	err := json.Unmarshal([]byte(`{"studentId":"one"}`), &req)
	require.Error(t, err)
	assert.Equal(t, []string{"studentId: must be of type uint"}, BindingErrorDetails(err))

	err = json.Unmarshal([]byte(`{"studentId":`), &req)
	require.Error(t, err)
	assert.NotEmpty(t, BindingErrorDetails(err))
}
