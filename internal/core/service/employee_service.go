package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

var idNumberPattern = regexp.MustCompile(`^\d{13}$`)

// ErrInvalidIDNumber is returned when the national id is not 13 digits.
var ErrInvalidIDNumber = fmt.Errorf("%w: id number must be exactly 13 digits", domain.ErrValidation)

type EmployeeService struct {
	repo     ports.EmployeeRepository
	identity ports.IdentityProvider
	logger   zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, identity ports.IdentityProvider, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, identity: identity, logger: logger}
}

// Create provisions the sign-in account with the identity provider using a
// temporary credential derived from the id number, then stores the encrypted
// profile keyed by the subject id the provider returned.
func (s *EmployeeService) Create(ctx context.Context, input ports.CreateEmployeeInput) (*ports.CreateEmployeeResult, error) {
	if !idNumberPattern.MatchString(input.IDNumber) {
		return nil, ErrInvalidIDNumber
	}
	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if role != domain.RoleEmployee && role != domain.RoleManager {
		return nil, fmt.Errorf("%w: role must be Employee or Manager", domain.ErrValidation)
	}

	fullName := input.Name + " " + input.Surname
	tempPassword := tempPasswordFromIDNumber(input.IDNumber)

	uid, err := s.identity.Register(ctx, input.Email, tempPassword, fullName, role)
	if err != nil {
		s.logger.Error().Err(err).Msg("identity registration failed")
		return nil, err
	}

	emp := &domain.Employee{
		UID:         uid,
		IDNumber:    input.IDNumber,
		Name:        input.Name,
		Surname:     input.Surname,
		FullName:    fullName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to store employee profile")
		return nil, err
	}

	s.logger.Info().Str("uid", uid).Str("role", role).Msg("employee created")
	return &ports.CreateEmployeeResult{Employee: emp, TempPassword: tempPassword}, nil
}

func (s *EmployeeService) Get(ctx context.Context, uid string) (*domain.Employee, error) {
	return s.repo.GetByUID(ctx, uid)
}

func (s *EmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) Update(ctx context.Context, upd ports.EmployeeUpdate) error {
	if upd.Role != "" && upd.Role != domain.RoleEmployee && upd.Role != domain.RoleManager {
		return fmt.Errorf("%w: role must be Employee or Manager", domain.ErrValidation)
	}
	if err := s.repo.Update(ctx, upd); err != nil {
		s.logger.Error().Err(err).Str("uid", upd.UID).Msg("failed to update employee")
		return err
	}
	return nil
}

// Delete removes the profile and the sign-in account. The account removal is
// secondary: its failure is reported but does not undo the profile delete.
func (s *EmployeeService) Delete(ctx context.Context, uid string) error {
	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}
	if err := s.identity.DeleteAccount(ctx, uid); err != nil {
		s.logger.Warn().Err(err).Str("uid", uid).Msg("profile deleted but sign-in account removal failed")
	}
	return nil
}

// tempPasswordFromIDNumber builds the first-login credential from the last
// six digits of the national id, prefixed to satisfy the provider's
// complexity rules. The employee is expected to change it on first sign-in.
func tempPasswordFromIDNumber(idNumber string) string {
	return "Tmp@" + idNumber[len(idNumber)-6:]
}
