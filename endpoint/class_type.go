package endpoint

import (
	"fmt"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/service"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// CreateClassType godoc
// @Summary      Add a class type
// @Tags         ClassType
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.ClassTypeRequest true "Class type"
// @Success      201 {object} model.ClassType
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      409 {object} util.ErrorResponse "Class type already exists"
// @Router       /class-types [post]
func CreateClassType(c *gin.Context) {
	var req model.ClassTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	ct, err := svc.CreateClassType(req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallCreated(c, fmt.Sprintf("/api/class-types/%d", ct.ID), ct)
}

// GetClassType godoc
// @Summary      Get a class type
// @Tags         ClassType
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Class type ID"
// @Success      200 {object} model.ClassType
// @Failure      404 {object} util.ErrorResponse "Class type not found"
// @Router       /class-types/{id} [get]
func GetClassType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	ct, err := svc.GetClassType(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, ct)
}

// ListClassTypes godoc
// @Summary      List class types
// @Tags         ClassType
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.ClassType]
// @Router       /class-types [get]
func ListClassTypes(c *gin.Context) {
	p, ok := parsePageRequest(c)
	if !ok {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	page, err := svc.ListClassTypes(p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}

// UpdateClassType godoc
// @Summary      Update a class type
// @Tags         ClassType
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Class type ID"
// @Param        request body model.ClassTypeRequest true "Class type"
// @Success      200 {object} model.ClassType
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Class type not found"
// @Failure      409 {object} util.ErrorResponse "Class type already exists"
// @Router       /class-types/{id} [put]
func UpdateClassType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.ClassTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	ct, err := svc.UpdateClassType(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, ct)
}

// DeleteClassType godoc
// @Summary      Delete a class type
// @Tags         ClassType
// @Security     BearerAuth
// @Param        id path int true "Class type ID"
// @Success      204
// @Failure      404 {object} util.ErrorResponse "Class type not found"
// @Failure      409 {object} util.ErrorResponse "Class type is still booked"
// @Router       /class-types/{id} [delete]
func DeleteClassType(c *gin.Context) {
	deleteWith(c, registryService, (*service.RegistryService).DeleteClassType)
}
