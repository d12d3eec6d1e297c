package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/ariebrainware/pilates-studio/middleware"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// GeoIPCacheStats exposes the access-log location cache counters.
type GeoIPCacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// HealthResponse reports liveness of the API and its database.
type HealthResponse struct {
	Status     string          `json:"status" example:"UP"`
	Database   string          `json:"database" example:"UP"`
	GeoIPCache GeoIPCacheStats `json:"geoipCache"`
}

func healthResponse(status string) HealthResponse {
	hits, misses, size := util.GetGeoIPCacheMetrics()
	return HealthResponse{
		Status:     status,
		Database:   status,
		GeoIPCache: GeoIPCacheStats{Hits: hits, Misses: misses, Size: size},
	}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, healthResponse("DOWN"))
		return
	}

	sqlDB, err := db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, healthResponse("DOWN"))
		return
	}
	c.JSON(http.StatusOK, healthResponse("UP"))
}
