package ports

import "context"

// DashboardSummary aggregates headline figures for the landing view.
type DashboardSummary struct {
	Clients        int     `json:"clients"`
	Employees      int     `json:"employees"`
	PendingQuotes  int     `json:"pending_quotes"`
	UnpaidInvoices int     `json:"unpaid_invoices"`
	Revenue        float64 `json:"revenue"`
}

// DashboardService computes the summary across the entity collections.
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}
