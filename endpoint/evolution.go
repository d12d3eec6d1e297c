package endpoint

import (
	"fmt"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/service"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// CreateEvolutionRecord godoc
// @Summary      Log a session
// @Tags         Evolution
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.EvolutionRecordRequest true "Evolution record"
// @Success      201 {object} model.EvolutionRecordResponse
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Student or instructor not found"
// @Router       /evaluations/evolution [post]
func CreateEvolutionRecord(c *gin.Context) {
	var req model.EvolutionRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	view, err := svc.CreateEvolutionRecord(req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallCreated(c, fmt.Sprintf("/api/evaluations/evolution/%d", view.ID), view)
}

// GetEvolutionRecord godoc
// @Summary      Get an evolution record
// @Tags         Evolution
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Evolution record ID"
// @Success      200 {object} model.EvolutionRecordResponse
// @Failure      404 {object} util.ErrorResponse "Evolution record not found"
// @Router       /evaluations/evolution/{id} [get]
func GetEvolutionRecord(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	view, err := svc.GetEvolutionRecord(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, view)
}

// ListEvolutionRecords godoc
// @Summary      List evolution records
// @Tags         Evolution
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.EvolutionRecordResponse]
// @Router       /evaluations/evolution [get]
func ListEvolutionRecords(c *gin.Context) {
	p, ok := parsePageRequest(c)
	if !ok {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	page, err := svc.ListEvolutionRecords(p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}

// ListStudentEvolutionRecords godoc
// @Summary      Evolution records of a student
// @Tags         Evolution
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.EvolutionRecordResponse]
// @Failure      404 {object} util.ErrorResponse "Student not found"
// @Router       /students/{id}/evaluations/evolution [get]
func ListStudentEvolutionRecords(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, ok := parsePageRequest(c)
	if !ok {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	page, err := svc.ListEvolutionRecordsForStudent(id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}

// UpdateEvolutionRecord godoc
// @Summary      Update an evolution record
// @Description  Supplied fields overwrite the stored record; an empty list clears it.
// @Tags         Evolution
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Evolution record ID"
// @Param        request body model.EvolutionRecordRequest true "Evolution record"
// @Success      200 {object} model.EvolutionRecordResponse
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Not found"
// @Router       /evaluations/evolution/{id} [put]
func UpdateEvolutionRecord(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.EvolutionRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	view, err := svc.UpdateEvolutionRecord(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, view)
}

// DeleteEvolutionRecord godoc
// @Summary      Delete an evolution record
// @Tags         Evolution
// @Security     BearerAuth
// @Param        id path int true "Evolution record ID"
// @Success      204
// @Failure      404 {object} util.ErrorResponse "Evolution record not found"
// @Router       /evaluations/evolution/{id} [delete]
func DeleteEvolutionRecord(c *gin.Context) {
	deleteWith(c, evaluationService, (*service.EvaluationService).DeleteEvolutionRecord)
}
