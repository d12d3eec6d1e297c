package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/ariebrainware/pilates-studio/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AccessEvent describes one served API call.
type AccessEvent struct {
	RequestID string
	Subject   string
	Method    string
	Path      string
	Status    int
	IP        string
	UserAgent string
	Details   map[string]interface{}
}

var (
	accessLogger *log.Logger
	errorLogger  *log.Logger
	accessDB     *gorm.DB
	loggerMu     sync.RWMutex
)

func init() {
	accessLogger = log.New(os.Stdout, "[ACCESS] ", log.LstdFlags|log.Lmsgprefix)
	errorLogger = log.New(os.Stderr, "[ERROR] ", log.LstdFlags|log.Lmsgprefix)
}

// SetAccessLoggerDB sets a gorm DB instance used to persist access events.
// Call this during application startup after DB initialization.
func SetAccessLoggerDB(db *gorm.DB) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	accessDB = db
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// formatLocation renders a GeoIP result as "City/Country", or whichever part is known.
func formatLocation(loc IPLocation) string {
	switch {
	case loc.City != "" && loc.Country != "":
		return fmt.Sprintf("%s/%s", loc.City, loc.Country)
	case loc.Country != "":
		return loc.Country
	default:
		return loc.City
	}
}

// LogAccess writes the event to the access log and, when a DB is configured,
// persists it as a model.AccessLog row. Persistence is best effort.
func LogAccess(event AccessEvent) {
	location := formatLocation(GetIPLocation(event.IP))

	loggerMu.RLock()
	logger, db := accessLogger, accessDB
	loggerMu.RUnlock()

	logger.Printf("RequestID=%s Subject=%s IP=%s Location=%s %s %s -> %d",
		sanitizeLogValue(event.RequestID),
		sanitizeLogValue(event.Subject),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(location),
		sanitizeLogValue(event.Method),
		sanitizeLogValue(event.Path),
		event.Status,
	)

	if db == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.AccessLog{
		RequestID: sanitizeLogValue(event.RequestID),
		Subject:   sanitizeLogValue(event.Subject),
		Method:    event.Method,
		Path:      sanitizeLogValue(event.Path),
		Status:    event.Status,
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(location),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Details:   details,
	}
	if err := db.Create(&entry).Error; err != nil {
		logger.Printf("Failed to persist access event: %v", err)
	}
}

// LogError records an internal failure that was hidden behind a generic 500.
func LogError(requestID, method, path string, err error) {
	loggerMu.RLock()
	logger := errorLogger
	loggerMu.RUnlock()

	logger.Printf("RequestID=%s %s %s: %s",
		sanitizeLogValue(requestID),
		sanitizeLogValue(method),
		sanitizeLogValue(path),
		sanitizeLogValue(err.Error()),
	)
}

// LogCleanupError records a failed best-effort cleanup that ran after a committed write.
func LogCleanupError(operation string, err error) {
	loggerMu.RLock()
	logger := errorLogger
	loggerMu.RUnlock()

	logger.Printf("cleanup %s: %s", sanitizeLogValue(operation), sanitizeLogValue(err.Error()))
}

// GetAccessLoggerForTest returns the current access logger for testing purposes
func GetAccessLoggerForTest() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return accessLogger
}

// SetAccessLoggerForTest sets a custom access logger for testing purposes
func SetAccessLoggerForTest(logger *log.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	accessLogger = logger
}

// SetErrorLoggerForTest sets a custom error logger and returns the previous one.
func SetErrorLoggerForTest(logger *log.Logger) *log.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	prev := errorLogger
	errorLogger = logger
	return prev
}
