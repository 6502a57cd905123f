package dto

import "github.com/shopspring/decimal"

// StatsResponse estadísticas agregadas del sistema.
type StatsResponse struct {
	TotalProducts         int64            `json:"total_products"`
	TotalClients          int64            `json:"total_clients"`
	TotalReservations     int64            `json:"total_reservations"`
	ConfirmedReservations int64            `json:"confirmed_reservations"`
	CancelledReservations int64            `json:"cancelled_reservations"`
	CommittedAmount       decimal.Decimal  `json:"committed_amount"` // suma de totales confirmados
	StockByCategory       map[string]int64 `json:"stock_by_category"`
}
