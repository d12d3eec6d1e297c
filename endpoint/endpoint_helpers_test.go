package endpoint

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/pilates-studio/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "not found", err: &service.NotFoundError{Entity: "Student", ID: 3}, status: http.StatusNotFound, message: "Student not found with id: 3"},
		{name: "validation", err: &service.ValidationError{Details: []string{"x: bad"}}, status: http.StatusBadRequest, message: "One or more fields are invalid"},
		{name: "conflict", err: &service.ConflictError{Message: "Email already in use"}, status: http.StatusConflict, message: "Email already in use"},
		{name: "other", err: errors.New("disk on fire"), status: http.StatusInternalServerError, message: "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp, err := doRequestWithHandler(gin.New(), requestSpec{
				method:       http.MethodGet,
				registerPath: "/boom",
				requestPath:  "/boom",
				handler:      func(c *gin.Context) { respondError(c, tt.err) },
			})
			assert.NoError(t, err)
			assertStatus(t, w, tt.status)
			assert.Equal(t, tt.message, resp["message"])
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		query string
		want  service.PageRequest
		ok    bool
	}{
		{query: "", want: service.PageRequest{Page: 0, Size: 20}, ok: true},
		{query: "page=3&size=10", want: service.PageRequest{Page: 3, Size: 10}, ok: true},
		{query: "size=1000", want: service.PageRequest{Page: 0, Size: 100}, ok: true},
		{query: "page=-4", want: service.PageRequest{Page: 0, Size: 20}, ok: true},
		{query: "page=461168601842738791", want: service.PageRequest{Page: math.MaxInt32 / 20, Size: 20}, ok: true},
		{query: "page=99999999999999999999", ok: false},
		{query: "size=ten", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			got, ok := parsePageRequest(c)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}
