package endpoint

import (
	"github.com/ariebrainware/pilates-studio/service"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// GetDashboardStats godoc
// @Summary      Studio overview
// @Description  Student and instructor counts, classes booked for today and revenue of PAID bookings this month.
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} service.DashboardStats
// @Failure      500 {object} util.ErrorResponse "Server error"
// @Router       /dashboard/stats [get]
func GetDashboardStats(c *gin.Context) {
	db := getDB(c)
	if db == nil {
		return
	}

	stats, err := service.NewDashboardService(db).Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	util.CallSuccessOK(c, stats)
}
