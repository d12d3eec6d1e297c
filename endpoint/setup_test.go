package endpoint

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ariebrainware/pilates-studio/config"
	"github.com/ariebrainware/pilates-studio/middleware"
	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestMain sets up consistent test configuration for all tests in the endpoint package.
// This prevents test order dependency issues caused by the singleton config pattern.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("JWTSECRET", "")
	os.Setenv("GINMODE", "release")

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	if err := util.RegisterValidators(); err != nil {
		fmt.Fprintf(os.Stderr, "register validators: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupEndpointTestDB opens a private in-memory sqlite database with every table migrated.
func setupEndpointTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}
	if err := model.Migrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// setupEndpointTest returns a router with the full /api surface and its database.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	return setupEndpointTestWithSecret(t, "")
}

func setupEndpointTestWithSecret(t *testing.T, secret string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := setupEndpointTestDB(t)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.DatabaseMiddleware(db))
	RegisterRoutes(r, RouteConfig{
		Deps: Deps{
			Hasher: util.BcryptHasher{Cost: bcrypt.MinCost},
			Files:  util.NewLocalFileStore(t.TempDir()),
		},
		JWTSecret: secret,
	})
	return r, db
}

type fixtures struct {
	student    model.Student
	instructor model.Instructor
	classType  model.ClassType
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		student:    model.Student{Name: "Maria Souza", Status: model.StudentStatusActive},
		instructor: model.Instructor{Name: "Ana Lima", Email: "ana@studio.com", Password: "hash", Role: model.RoleInstructor, Status: model.InstructorStatusActive},
		classType:  model.ClassType{Name: "Reformer", Duration: 55, Price: 120, Capacity: 3, Intensity: model.IntensityMedium, Color: "#8b5cf6"},
	}
	for _, v := range []interface{}{&f.student, &f.instructor, &f.classType} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("failed to seed fixtures: %v", err)
		}
	}
	return f
}

// daysFromToday returns the ISO date n days from now.
func daysFromToday(n int) string {
	return util.Today(time.Now().AddDate(0, 0, n))
}

func scheduleBody(f fixtures, date, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"studentId":     f.student.ID,
		"instructorId":  f.instructor.ID,
		"classTypeId":   f.classType.ID,
		"date":          date,
		"startTime":     start,
		"endTime":       end,
		"status":        "SCHEDULED",
		"paymentStatus": "PENDING",
	}
}
