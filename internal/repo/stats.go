package repo

import "context"

// DashboardStats agrega os números exibidos na tela inicial.
type DashboardStats struct {
	TotalDrivers      int64   `json:"totalDrivers"`
	ActiveDrivers     int64   `json:"activeDrivers"`
	TotalVehicles     int64   `json:"totalVehicles"`
	ActiveVehicles    int64   `json:"activeVehicles"`
	ActiveSuppliers   int64   `json:"activeSuppliers"`
	TripsThisMonth    int64   `json:"tripsThisMonth"`
	FuelCostThisMonth float64 `json:"fuelCostThisMonth"`
	EntriesThisMonth  int64   `json:"entriesThisMonth"`
	TonnageThisMonth  float64 `json:"tonnageThisMonth"`
}

// GetDashboardStats calcula os agregados em uma única viagem ao banco.
func (q *Queries) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats
	err := q.db.QueryRow(ctx, `
        SELECT
            (SELECT count(*) FROM drivers),
            (SELECT count(*) FROM drivers WHERE status = 'active'),
            (SELECT count(*) FROM vehicles),
            (SELECT count(*) FROM vehicles WHERE status = 'active'),
            (SELECT count(*) FROM suppliers WHERE status = 'active'),
            (SELECT count(*) FROM fuel_trips WHERE trip_date >= date_trunc('month', now())),
            (SELECT COALESCE(sum(fuel_cost), 0) FROM fuel_trips WHERE trip_date >= date_trunc('month', now())),
            (SELECT count(*) FROM product_entries WHERE entry_date >= date_trunc('month', now())),
            (SELECT COALESCE(sum(tonnage), 0) FROM product_entries WHERE entry_date >= date_trunc('month', now()))`).
		Scan(&s.TotalDrivers, &s.ActiveDrivers, &s.TotalVehicles, &s.ActiveVehicles,
			&s.ActiveSuppliers, &s.TripsThisMonth, &s.FuelCostThisMonth,
			&s.EntriesThisMonth, &s.TonnageThisMonth)
	if err != nil {
		return DashboardStats{}, err
	}
	return s, nil
}
