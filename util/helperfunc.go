package util

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the X-Request-ID of the current call.
const RequestIDKey = "request_id"

// ErrorResponse is the body returned for every non-2xx API response.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Details   []string  `json:"details,omitempty"`
}

type APIErrorParams struct {
	Msg     string
	Err     error
	Details []string
}

// PageResponse is the envelope of every paginated list.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
}

// NewPageResponse builds the envelope; a nil slice is rendered as [].
func NewPageResponse[T any](content []T, total int64, page, size int) PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(size)))
	}
	return PageResponse[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          page,
		Size:          size,
	}
}

// Contains function is to check item whether is exist or not in a list and will return bool
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

func callError(c *gin.Context, status int, params APIErrorParams) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   params.Msg,
		Path:      c.Request.URL.Path,
		Details:   params.Details,
	})
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusNotFound, params)
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusBadRequest, params)
}

// CallValidationError returns 400 with one "field: message" entry per failed rule.
func CallValidationError(c *gin.Context, details []string) {
	status := http.StatusBadRequest
	c.AbortWithStatusJSON(status, ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     "Validation Error",
		Message:   "One or more fields are invalid",
		Path:      c.Request.URL.Path,
		Details:   details,
	})
}

// CallConflict is for return API response when the request clashes with stored state
func CallConflict(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusConflict, params)
}

// CallTooManyRequests is for return API response when the rate limit is exceeded
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusTooManyRequests, params)
}

// CallServerError logs the cause with the request id and returns a generic 500.
func CallServerError(c *gin.Context, params APIErrorParams) {
	requestID := c.GetString(RequestIDKey)
	if params.Err != nil {
		LogError(requestID, c.Request.Method, c.Request.URL.Path, params.Err)
	}
	msg := params.Msg
	if msg == "" {
		msg = "An unexpected error occurred"
	}
	callError(c, http.StatusInternalServerError, APIErrorParams{Msg: msg})
}

// CallUserNotAuthorized is for return API response with status code 401
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusUnauthorized, params)
}

// CallForbidden is for return API response with status code 403
func CallForbidden(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusForbidden, params)
}

// CallSuccessOK is for return API response with status code 200
func CallSuccessOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// CallCreated returns 201 with the Location of the new resource.
func CallCreated(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// CallNoContent returns 204 with an empty body.
func CallNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// NormalizeName normalizes a name by trimming leading/trailing whitespace
// and collapsing multiple internal spaces into single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
