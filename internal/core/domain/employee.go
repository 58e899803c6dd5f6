package domain

import "time"

// Role is the authorisation level of an employee account.
const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
)

// Employee is a staff record keyed by the identity-provider subject id.
// IDNumber is a 13-digit national id string kept in clear (it seeds the
// temporary sign-in credential); the remaining personal fields are stored
// enciphered.
type Employee struct {
	UID         string    `json:"uid" bson:"_id,omitempty"`
	IDNumber    string    `json:"id_number" bson:"id_number"`
	Name        string    `json:"name" bson:"name"`
	Surname     string    `json:"surname" bson:"surname"`
	FullName    string    `json:"full_name" bson:"full_name"`
	Email       string    `json:"email" bson:"email"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	Role        string    `json:"role" bson:"role"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
