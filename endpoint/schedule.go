package endpoint

import (
	"fmt"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/service"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// CreateSchedule godoc
// @Summary      Book a class
// @Description  Create a schedule for a student with an instructor and class type. Overlapping slots are not rejected.
// @Tags         Schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.ScheduleRequest true "Booking"
// @Success      201 {object} model.ScheduleResponse
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Student, instructor or class type not found"
// @Failure      500 {object} util.ErrorResponse "Server error"
// @Router       /schedules [post]
func CreateSchedule(c *gin.Context) {
	var req model.ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := scheduleService(c)
	if svc == nil {
		return
	}

	view, err := svc.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallCreated(c, fmt.Sprintf("/api/schedules/%d", view.ID), view)
}

// GetSchedule godoc
// @Summary      Get a schedule
// @Tags         Schedule
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Schedule ID"
// @Success      200 {object} model.ScheduleResponse
// @Failure      404 {object} util.ErrorResponse "Schedule not found"
// @Router       /schedules/{id} [get]
func GetSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := scheduleService(c)
	if svc == nil {
		return
	}

	view, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, view)
}

// ListSchedules godoc
// @Summary      List schedules
// @Description  With startDate and/or endDate the range is inclusive and results are in chronological order; otherwise ordered by id.
// @Tags         Schedule
// @Produce      json
// @Security     BearerAuth
// @Param        startDate query string false "First day (YYYY-MM-DD)"
// @Param        endDate query string false "Last day (YYYY-MM-DD)"
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.ScheduleResponse]
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Router       /schedules [get]
func ListSchedules(c *gin.Context) {
	p, ok := parsePageRequest(c)
	if !ok {
		return
	}
	svc := scheduleService(c)
	if svc == nil {
		return
	}

	filter := service.ScheduleFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	page, err := svc.List(filter, p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}

// UpdateSchedule godoc
// @Summary      Update a schedule
// @Description  Full overwrite; all three references are resolved again.
// @Tags         Schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Schedule ID"
// @Param        request body model.ScheduleRequest true "Booking"
// @Success      200 {object} model.ScheduleResponse
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Not found"
// @Router       /schedules/{id} [put]
func UpdateSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := scheduleService(c)
	if svc == nil {
		return
	}

	view, err := svc.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, view)
}

// DeleteSchedule godoc
// @Summary      Delete a schedule
// @Tags         Schedule
// @Security     BearerAuth
// @Param        id path int true "Schedule ID"
// @Success      204
// @Failure      404 {object} util.ErrorResponse "Schedule not found"
// @Router       /schedules/{id} [delete]
func DeleteSchedule(c *gin.Context) {
	deleteWith(c, scheduleService, (*service.ScheduleService).Delete)
}

// GetNextClass godoc
// @Summary      Next class of a student
// @Description  Earliest booking dated today or later.
// @Tags         Schedule
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Success      200 {object} model.ScheduleResponse
// @Failure      404 {object} util.ErrorResponse "No upcoming class"
// @Router       /students/{id}/next-class [get]
func GetNextClass(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := scheduleService(c)
	if svc == nil {
		return
	}

	view, found, err := svc.FindNextClassForStudent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: fmt.Sprintf("No upcoming class for student with id: %d", id),
		})
		return
	}
	util.CallSuccessOK(c, view)
}

// ListStudentSchedules godoc
// @Summary      Bookings of a student
// @Tags         Schedule
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.ScheduleResponse]
// @Failure      404 {object} util.ErrorResponse "Student not found"
// @Router       /students/{id}/schedules [get]
func ListStudentSchedules(c *gin.Context) {
	listOwnedSchedules(c, (*service.ScheduleService).ListForStudent)
}

// ListInstructorSchedules godoc
// @Summary      Bookings of an instructor
// @Tags         Schedule
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Instructor ID"
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.ScheduleResponse]
// @Failure      404 {object} util.ErrorResponse "Instructor not found"
// @Router       /instructors/{id}/schedules [get]
func ListInstructorSchedules(c *gin.Context) {
	listOwnedSchedules(c, (*service.ScheduleService).ListForInstructor)
}

func listOwnedSchedules(c *gin.Context, list func(*service.ScheduleService, uint, service.PageRequest) (service.Page[model.ScheduleResponse], error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, ok := parsePageRequest(c)
	if !ok {
		return
	}
	svc := scheduleService(c)
	if svc == nil {
		return
	}

	page, err := list(svc, id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}
