package service

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a uniquely named in-memory sqlite database with every table migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	return db
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
	require.NoError(t, db.Create(&f.student).Error)
	require.NoError(t, db.Create(&f.instructor).Error)
	require.NoError(t, db.Create(&f.classType).Error)
	return f
}

func ptr[T any](v T) *T { return &v }

func fixedClock(day string) func() time.Time {
	return func() time.Time {
		d, _ := time.ParseInLocation("2006-01-02", day, time.Local)
		return d.Add(15 * time.Hour)
	}
}

func scheduleRequest(f fixtures, date, start, end string) model.ScheduleRequest {
	return model.ScheduleRequest{
		StudentID:     f.student.ID,
		InstructorID:  f.instructor.ID,
		ClassTypeID:   f.classType.ID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Status:        model.ScheduleStatusScheduled,
		PaymentStatus: model.PaymentStatusPending,
	}
}

func testHasher() fastHasher { return fastHasher{} }

// fastHasher is bcrypt at minimum cost to keep tests quick.
type fastHasher struct{}

func (fastHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(b), err
}

func (fastHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// memoryFileStore keeps uploads in memory.
type memoryFileStore struct {
	mu        sync.Mutex
	files     map[string][]byte
	seq       int
	removeErr error
}

func newMemoryFileStore() *memoryFileStore {
	return &memoryFileStore{files: map[string][]byte{}}
}

func (m *memoryFileStore) Save(owner, fileName string, r io.Reader) (string, int64, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return "", 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	path := fmt.Sprintf("mem://%s/%d-%s", owner, m.seq, fileName)
	m.files[path] = buf.Bytes()
	return path, n, nil
}

func (m *memoryFileStore) Open(path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memoryFileStore) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.files, path)
	return nil
}

func (m *memoryFileStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
