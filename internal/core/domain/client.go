package domain

import "time"

// Client is a customer record. The id is an opaque identifier assigned by the
// repository on create, never by the caller. Name, surname, email, phone,
// address and company name are stored enciphered and only readable after a
// repository read.
type Client struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Surname     string    `json:"surname" bson:"surname"`
	Email       string    `json:"email" bson:"email"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	Address     string    `json:"address" bson:"address"`
	CompanyName string    `json:"company_name" bson:"company_name"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
