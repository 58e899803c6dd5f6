package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// PaymentService reads the derived payment records. Payments are created
// only by the invoice status transition, never through this service.
type PaymentService struct {
	repo   ports.PaymentRepository
	logger zerolog.Logger
}

func NewPaymentService(repo ports.PaymentRepository, logger zerolog.Logger) *PaymentService {
	return &PaymentService{repo: repo, logger: logger}
}

func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PaymentService) List(ctx context.Context) ([]*domain.Payment, error) {
	return s.repo.List(ctx)
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
