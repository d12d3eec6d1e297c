package endpoint

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/service"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// maxDocumentSize caps a single uploaded document.
const maxDocumentSize = 10 << 20

// CreateStudent godoc
// @Summary      Register a student
// @Tags         Student
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.StudentRequest true "Student"
// @Success      201 {object} model.Student
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      409 {object} util.ErrorResponse "Email already in use"
// @Router       /students [post]
func CreateStudent(c *gin.Context) {
	var req model.StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = util.NormalizeName(req.Name)
	svc := registryService(c)
	if svc == nil {
		return
	}

	student, err := svc.CreateStudent(req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallCreated(c, fmt.Sprintf("/api/students/%d", student.ID), student)
}

// GetStudent godoc
// @Summary      Get a student
// @Tags         Student
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Success      200 {object} model.Student
// @Failure      404 {object} util.ErrorResponse "Student not found"
// @Router       /students/{id} [get]
func GetStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	student, err := svc.GetStudent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, student)
}

// ListStudents godoc
// @Summary      List students
// @Tags         Student
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size" default(20)
// @Success      200 {object} util.PageResponse[model.Student]
// @Router       /students [get]
func ListStudents(c *gin.Context) {
	p, ok := parsePageRequest(c)
	if !ok {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	page, err := svc.ListStudents(p)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, toPageResponse(page))
}

// UpdateStudent godoc
// @Summary      Update a student
// @Description  Full overwrite; an omitted anamnesis keeps the stored one.
// @Tags         Student
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Param        request body model.StudentRequest true "Student"
// @Success      200 {object} model.Student
// @Failure      400 {object} util.ErrorResponse "Validation error"
// @Failure      404 {object} util.ErrorResponse "Student not found"
// @Failure      409 {object} util.ErrorResponse "Email already in use"
// @Router       /students/{id} [put]
func UpdateStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = util.NormalizeName(req.Name)
	svc := registryService(c)
	if svc == nil {
		return
	}

	student, err := svc.UpdateStudent(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, student)
}

// DeleteStudent godoc
// @Summary      Delete a student
// @Description  Documents are removed with the student. Students with bookings or clinical records cannot be deleted.
// @Tags         Student
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Success      204
// @Failure      404 {object} util.ErrorResponse "Student not found"
// @Failure      409 {object} util.ErrorResponse "Student is still referenced"
// @Router       /students/{id} [delete]
func DeleteStudent(c *gin.Context) {
	deleteWith(c, registryService, (*service.RegistryService).DeleteStudent)
}

// UploadStudentDocument godoc
// @Summary      Upload a student document
// @Tags         Student
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Param        file formData file true "Document"
// @Success      201 {object} model.Document
// @Failure      400 {object} util.ErrorResponse "Missing or oversized file"
// @Failure      404 {object} util.ErrorResponse "Student not found"
// @Router       /students/{id}/documents [post]
func UploadStudentDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentSize+(1<<20))
	header, err := c.FormFile("file")
	if err != nil {
		util.CallValidationError(c, []string{"file: must not be null"})
		return
	}
	if header.Size > maxDocumentSize {
		util.CallValidationError(c, []string{"file: must not exceed " + strconv.Itoa(maxDocumentSize>>20) + " MB"})
		return
	}

	svc := registryService(c)
	if svc == nil {
		return
	}

	f, err := header.Open()
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Err: err})
		return
	}
	defer f.Close()

	fileType := header.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}
	doc, err := svc.UploadDocument(id, header.Filename, fileType, f)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallCreated(c, fmt.Sprintf("/api/students/%d/documents/%d", id, doc.ID), doc)
}

// ListStudentDocuments godoc
// @Summary      List student documents
// @Tags         Student
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Success      200 {array} model.Document
// @Failure      404 {object} util.ErrorResponse "Student not found"
// @Router       /students/{id}/documents [get]
func ListStudentDocuments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	docs, err := svc.ListDocuments(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, docs)
}

// DownloadStudentDocument godoc
// @Summary      Download a student document
// @Tags         Student
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Param        documentId path int true "Document ID"
// @Success      200 {file} file
// @Failure      404 {object} util.ErrorResponse "Document not found"
// @Router       /students/{id}/documents/{documentId} [get]
func DownloadStudentDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docID, ok := parseID(c, "documentId")
	if !ok {
		return
	}
	files := getDeps(c).Files
	if files == nil {
		util.CallServerError(c, util.APIErrorParams{Err: fmt.Errorf("file storage is not configured")})
		return
	}
	svc := registryService(c)
	if svc == nil {
		return
	}

	doc, err := svc.GetDocument(id, docID)
	if err != nil {
		respondError(c, err)
		return
	}
	rc, err := files.Open(doc.FilePath)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Err: err})
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, doc.Size, doc.FileType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.FileName),
	})
}
