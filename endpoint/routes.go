package endpoint

import (
	"github.com/ariebrainware/pilates-studio/middleware"
	"github.com/ariebrainware/pilates-studio/model"
	"github.com/gin-gonic/gin"
)

// RouteConfig carries what RegisterRoutes needs beyond the handlers themselves.
type RouteConfig struct {
	Deps      Deps
	JWTSecret string
	RateLimit middleware.RateLimitConfig
}

// RegisterRoutes mounts the health probe and the /api surface on r.
// DatabaseMiddleware must already be installed on r.
func RegisterRoutes(r gin.IRouter, cfg RouteConfig) {
	r.GET("/health", Health)

	api := r.Group("/api")
	api.Use(middleware.BearerAuth(cfg.JWTSecret))
	api.Use(middleware.RateLimiter(cfg.RateLimit))
	api.Use(withDeps(cfg.Deps))

	schedules := api.Group("/schedules")
	{
		schedules.POST("", CreateSchedule)
		schedules.GET("", ListSchedules)
		schedules.GET("/:id", GetSchedule)
		schedules.PUT("/:id", UpdateSchedule)
		schedules.DELETE("/:id", DeleteSchedule)
	}

	physical := api.Group("/evaluations/physical")
	{
		physical.POST("", CreatePhysicalEvaluation)
		physical.GET("", ListPhysicalEvaluations)
		physical.GET("/:id", GetPhysicalEvaluation)
		physical.PUT("/:id", UpdatePhysicalEvaluation)
		physical.DELETE("/:id", DeletePhysicalEvaluation)
	}

	evolution := api.Group("/evaluations/evolution")
	{
		evolution.POST("", CreateEvolutionRecord)
		evolution.GET("", ListEvolutionRecords)
		evolution.GET("/:id", GetEvolutionRecord)
		evolution.PUT("/:id", UpdateEvolutionRecord)
		evolution.DELETE("/:id", DeleteEvolutionRecord)
	}

	students := api.Group("/students")
	{
		students.POST("", CreateStudent)
		students.GET("", ListStudents)
		students.GET("/:id", GetStudent)
		students.PUT("/:id", UpdateStudent)
		students.DELETE("/:id", DeleteStudent)
		students.GET("/:id/next-class", GetNextClass)
		students.GET("/:id/schedules", ListStudentSchedules)
		students.GET("/:id/evaluations/physical", ListStudentPhysicalEvaluations)
		students.GET("/:id/evaluations/evolution", ListStudentEvolutionRecords)
		students.POST("/:id/documents", UploadStudentDocument)
		students.GET("/:id/documents", ListStudentDocuments)
		students.GET("/:id/documents/:documentId", DownloadStudentDocument)
	}

	adminOnly := middleware.RequireRole(cfg.JWTSecret, string(model.RoleAdmin))
	instructors := api.Group("/instructors")
	{
		instructors.POST("", adminOnly, CreateInstructor)
		instructors.GET("", ListInstructors)
		instructors.GET("/:id", GetInstructor)
		instructors.PUT("/:id", adminOnly, UpdateInstructor)
		instructors.DELETE("/:id", adminOnly, DeleteInstructor)
		instructors.GET("/:id/working-hours", GetWorkingHours)
		instructors.PUT("/:id/working-hours", ReplaceWorkingHours)
		instructors.GET("/:id/schedules", ListInstructorSchedules)
	}

	classTypes := api.Group("/class-types")
	{
		classTypes.POST("", CreateClassType)
		classTypes.GET("", ListClassTypes)
		classTypes.GET("/:id", GetClassType)
		classTypes.PUT("/:id", UpdateClassType)
		classTypes.DELETE("/:id", DeleteClassType)
	}

	api.GET("/dashboard/stats", GetDashboardStats)
}
