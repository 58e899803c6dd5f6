package ports

import (
	"context"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
)

// EmployeeRepository defines persistence operations for employee profiles,
// keyed by the identity-provider subject id.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByUID(ctx context.Context, uid string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, upd EmployeeUpdate) error
	Delete(ctx context.Context, uid string) error
}

// CreateEmployeeInput carries the data for a new employee. IDNumber must be
// exactly 13 digits; it seeds the temporary sign-in credential issued through
// the identity provider.
type CreateEmployeeInput struct {
	IDNumber    string
	Name        string
	Surname     string
	Email       string
	PhoneNumber string
	Role        string
}

// EmployeeUpdate is a partial update; empty fields are left unchanged.
type EmployeeUpdate struct {
	UID         string
	Name        string
	Surname     string
	Email       string
	PhoneNumber string
	Role        string
}

// CreateEmployeeResult reports the created profile and the temporary
// credential the employee signs in with for the first time.
type CreateEmployeeResult struct {
	Employee     *domain.Employee
	TempPassword string
}

// EmployeeService defines use-case operations for employees.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*CreateEmployeeResult, error)
	Get(ctx context.Context, uid string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, upd EmployeeUpdate) error
	Delete(ctx context.Context, uid string) error
}
