package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

// Create stores a new client. The repository assigns the id; any id supplied
// by the caller is ignored.
func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:        input.Name,
		Surname:     input.Surname,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		CompanyName: input.CompanyName,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, client)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, err
	}
	client.ID = id

	s.logger.Info().Str("client_id", id).Msg("client created")
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, upd ports.ClientUpdate) error {
	if err := s.repo.Update(ctx, upd); err != nil {
		s.logger.Error().Err(err).Str("client_id", upd.ID).Msg("failed to update client")
		return err
	}
	s.logger.Info().Str("client_id", upd.ID).Msg("client updated")
	return nil
}

// Delete removes the client. The failure is returned rather than swallowed;
// the handler decides whether to log-and-continue.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
