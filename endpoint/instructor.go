package endpoint

import (
	"fmt"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/service"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// CreateInstructor godoc
// @Summary      Register an instructor
// @Description  The password is hashed before it is stored and never returned.
// @Tags         Instructor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.InstructorRequest true "Instructor"
// @Success      201 {object} model.Instructor
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      409 {object} util.ErrorResponse "Email already in use"
// @Router       /instructors [post]
func CreateInstructor(c *gin.Context) {
	var req model.InstructorRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = util.NormalizeName(req.Name)
	svc := registryService(c)
	if svc == nil {
		return
	}

	instructor, err := svc.CreateInstructor(req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallCreated(c, fmt.Sprintf("/api/instructors/%d", instructor.ID), instructor)
}

// GetInstructor godoc
// @Summary      Get an instructor
// @Tags         Instructor
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Instructor ID"
// @Success      200 {object} model.Instructor
// @Failure      404 {object} util.ErrorResponse "Instructor not found"
// @Router       /instructors/{id} [get]
func GetInstructor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	instructor, err := svc.GetInstructor(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, instructor)
}

// ListInstructors godoc
// @Summary      List instructors
// @Tags         Instructor
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.Instructor]
// @Router       /instructors [get]
func ListInstructors(c *gin.Context) {
	p, ok := parsePageRequest(c)
	if !ok {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	page, err := svc.ListInstructors(p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}

// UpdateInstructor godoc
// @Summary      Update an instructor
// @Description  An empty password keeps the stored one; workingHours, when present, replaces the whole list.
// @Tags         Instructor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Instructor ID"
// @Param        request body model.InstructorRequest true "Instructor"
// @Success      200 {object} model.Instructor
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Instructor not found"
// @Failure      409 {object} util.ErrorResponse "Email already in use"
// @Router       /instructors/{id} [put]
func UpdateInstructor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.InstructorRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = util.NormalizeName(req.Name)
	svc := registryService(c)
	if svc == nil {
		return
	}

	instructor, err := svc.UpdateInstructor(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, instructor)
}

// DeleteInstructor godoc
// @Summary      Delete an instructor
// @Description  Instructors with bookings or clinical records cannot be deleted.
// @Tags         Instructor
// @Security     BearerAuth
// @Param        id path int true "Instructor ID"
// @Success      204
// @Failure      404 {object} util.ErrorResponse "Instructor not found"
// @Failure      409 {object} util.ErrorResponse "Instructor is still referenced"
// @Router       /instructors/{id} [delete]
func DeleteInstructor(c *gin.Context) {
	deleteWith(c, registryService, (*service.RegistryService).DeleteInstructor)
}

// GetWorkingHours godoc
// @Summary      Availability of an instructor
// @Tags         Instructor
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Instructor ID"
// @Success      200 {array} model.WorkingHours
// @Failure      404 {object} util.ErrorResponse "Instructor not found"
// @Router       /instructors/{id}/working-hours [get]
func GetWorkingHours(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	hours, err := svc.ListWorkingHours(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, hours)
}

// ReplaceWorkingHours godoc
// @Summary      Replace the availability of an instructor
// @Tags         Instructor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Instructor ID"
// @Param        request body []model.WorkingHoursRequest true "Working hours"
// @Success      200 {array} model.WorkingHours
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Instructor not found"
// @Router       /instructors/{id}/working-hours [put]
func ReplaceWorkingHours(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req []model.WorkingHoursRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	hours, err := svc.ReplaceWorkingHours(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if hours == nil {
		hours = []model.WorkingHours{}
	}
	util.CallSuccessOK(c, hours)
}
