package endpoint

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ariebrainware/pilates-studio/middleware"
	"github.com/ariebrainware/pilates-studio/service"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const depsKey = "endpoint_deps"

// Deps are the collaborators handlers need besides the database.
type Deps struct {
	Hasher util.PasswordHasher
	Files  util.FileStore
}

func withDeps(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(depsKey, deps)
		c.Next()
	}
}

func getDeps(c *gin.Context) Deps {
	if v, ok := c.Get(depsKey); ok {
		if d, ok := v.(Deps); ok {
			return d
		}
	}
	return Deps{}
}

// getDB returns the request database or answers 500 and returns nil.
func getDB(c *gin.Context) *gorm.DB {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
	}
	return db
}

func registryService(c *gin.Context) *service.RegistryService {
	db := getDB(c)
	if db == nil {
		return nil
	}
	deps := getDeps(c)
	hasher := deps.Hasher
	if hasher == nil {
		hasher = util.NewBcryptHasher()
	}
	return service.NewRegistryService(db, hasher, deps.Files)
}

func scheduleService(c *gin.Context) *service.ScheduleService {
	db := getDB(c)
	if db == nil {
		return nil
	}
	return service.NewScheduleService(db)
}

func evaluationService(c *gin.Context) *service.EvaluationService {
	db := getDB(c)
	if db == nil {
		return nil
	}
	return service.NewEvaluationService(db)
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.CallValidationError(c, []string{name + ": must be a positive number"})
		return 0, false
	}
	return uint(id), true
}

// parsePageRequest reads the zero-based page and size query parameters.
func parsePageRequest(c *gin.Context) (service.PageRequest, bool) {
	var details []string
	page, size := 0, 0
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, "page: must be a number")
		}
		page = n
	}
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, "size: must be a number")
		}
		size = n
	}
	if len(details) > 0 {
		util.CallValidationError(c, details)
		return service.PageRequest{}, false
	}
	return service.NewPageRequest(page, size), true
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		util.CallValidationError(c, util.BindingErrorDetails(err))
		return false
	}
	return true
}

func toPageResponse[T any](p service.Page[T]) util.PageResponse[T] {
	return util.NewPageResponse(p.Content, p.Total, p.Request.Page, p.Request.Size)
}

// respondError maps service errors to their HTTP responses.
func respondError(c *gin.Context, err error) {
	var nf *service.NotFoundError
	var ve *service.ValidationError
	var ce *service.ConflictError
	switch {
	case errors.As(err, &nf):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: nf.Error(), Err: err})
	case errors.As(err, &ve):
		util.CallValidationError(c, ve.Details)
	case errors.As(err, &ce):
		util.CallConflict(c, util.APIErrorParams{Msg: ce.Message, Err: err})
	default:
		util.CallServerError(c, util.APIErrorParams{Err: err})
	}
}
