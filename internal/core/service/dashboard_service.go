package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// DashboardService aggregates headline figures across the collections for
// the landing view.
type DashboardService struct {
	clients   ports.ClientRepository
	employees ports.EmployeeRepository
	quotes    ports.QuotationRepository
	invoices  ports.InvoiceRepository
	payments  ports.PaymentRepository
	logger    zerolog.Logger
}

func NewDashboardService(
	clients ports.ClientRepository,
	employees ports.EmployeeRepository,
	quotes ports.QuotationRepository,
	invoices ports.InvoiceRepository,
	payments ports.PaymentRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		clients:   clients,
		employees: employees,
		quotes:    quotes,
		invoices:  invoices,
		payments:  payments,
		logger:    logger,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*ports.DashboardSummary, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}

	sum := &ports.DashboardSummary{
		Clients:   len(clients),
		Employees: len(employees),
	}
	for _, q := range quotes {
		if q.Status == domain.QuotePending {
			sum.PendingQuotes++
		}
	}
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceUnpaid {
			sum.UnpaidInvoices++
		}
	}
	for _, p := range payments {
		sum.Revenue += p.TotalAmount
	}
	return sum, nil
}
