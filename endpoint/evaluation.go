package endpoint

import (
	"fmt"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/service"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// CreatePhysicalEvaluation godoc
// @Summary      Record a physical evaluation
// @Description  BMI is derived from weight and height when both are supplied.
// @Tags         Evaluation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.PhysicalEvaluationRequest true "Evaluation"
// @Success      201 {object} model.PhysicalEvaluationResponse
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Student or instructor not found"
// @Router       /evaluations/physical [post]
func CreatePhysicalEvaluation(c *gin.Context) {
	var req model.PhysicalEvaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	view, err := svc.CreatePhysicalEvaluation(req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallCreated(c, fmt.Sprintf("/api/evaluations/physical/%d", view.ID), view)
}

// GetPhysicalEvaluation godoc
// @Summary      Get a physical evaluation
// @Tags         Evaluation
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Evaluation ID"
// @Success      200 {object} model.PhysicalEvaluationResponse
// @Failure      404 {object} util.ErrorResponse "Evaluation not found"
// @Router       /evaluations/physical/{id} [get]
func GetPhysicalEvaluation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	view, err := svc.GetPhysicalEvaluation(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, view)
}

// ListPhysicalEvaluations godoc
// @Summary      List physical evaluations
// @Description  Newest first.
// @Tags         Evaluation
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.PhysicalEvaluationResponse]
// @Router       /evaluations/physical [get]
func ListPhysicalEvaluations(c *gin.Context) {
	p, ok := parsePageRequest(c)
	if !ok {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	page, err := svc.ListPhysicalEvaluations(p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}

// ListStudentPhysicalEvaluations godoc
// @Summary      Physical evaluations of a student
// @Tags         Evaluation
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.PhysicalEvaluationResponse]
// @Failure      404 {object} util.ErrorResponse "Student not found"
// @Router       /students/{id}/evaluations/physical [get]
func ListStudentPhysicalEvaluations(c *gin.Context) {
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

	page, err := svc.ListPhysicalEvaluationsForStudent(id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}

// UpdatePhysicalEvaluation godoc
// @Summary      Update a physical evaluation
// @Description  Supplied fields are merged over the stored evaluation.
// @Tags         Evaluation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Evaluation ID"
// @Param        request body model.PhysicalEvaluationRequest true "Evaluation"
// @Success      200 {object} model.PhysicalEvaluationResponse
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Not found"
// @Router       /evaluations/physical/{id} [put]
func UpdatePhysicalEvaluation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.PhysicalEvaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := evaluationService(c)
	if svc == nil {
		return
	}

	view, err := svc.UpdatePhysicalEvaluation(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, view)
}

// DeletePhysicalEvaluation godoc
// @Summary      Delete a physical evaluation
// @Tags         Evaluation
// @Security     BearerAuth
// @Param        id path int true "Evaluation ID"
// @Success      204
// @Failure      404 {object} util.ErrorResponse "Evaluation not found"
// @Router       /evaluations/physical/{id} [delete]
func DeletePhysicalEvaluation(c *gin.Context) {
	deleteWith(c, evaluationService, (*service.EvaluationService).DeletePhysicalEvaluation)
}

// deleteWith resolves the id path parameter and runs del on a service built for the request.
func deleteWith[S any](c *gin.Context, build func(*gin.Context) *S, del func(*S, uint) error) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := build(c)
	if svc == nil {
		return
	}

	if err := del(svc, id); err != nil {
		respondError(c, err)
		return
	}
	util.CallNoContent(c)
}
