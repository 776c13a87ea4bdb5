package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rotaforte/frota/internal/repo"
)

// DashboardStats devolve os agregados da tela inicial.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := repo.New(h.pool).GetDashboardStats(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// DashboardExport exporta as viagens de abastecimento em CSV (admin).
func (h *Handler) DashboardExport(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	filename := fmt.Sprintf("abastecimentos-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"data", "destino", "motorista", "veiculo", "placa", "custo_combustivel", "status"})

	for _, t := range trips {
		driverName := ""
		if t.Driver != nil {
			driverName = t.Driver.Name
		}
		vehicleModel, plate := "", ""
		if t.Vehicle != nil {
			vehicleModel = t.Vehicle.Brand + " " + t.Vehicle.Model
			plate = t.Vehicle.Plate
		}
		_ = cw.Write([]string{
			t.TripDate,
			t.Destination,
			driverName,
			vehicleModel,
			plate,
			strconv.FormatFloat(t.FuelCost, 'f', 2, 64),
			t.Status,
		})
	}
	cw.Flush()
}
