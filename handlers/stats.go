package handlers

import (
	"net/http"

	"github.com/seline/velora/pkg"
	"github.com/seline/velora/services"
)

// StatsHandler, admin dashboard sayaçları.
type StatsHandler struct {
	service services.StatsService
}

func NewStatsHandler(service services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetDashboard godoc
// GET /api/admin/stats
func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stats)
}
