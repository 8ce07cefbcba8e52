package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a contact-form submission. Submissions are never edited.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Country   string             `bson:"country" json:"country"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateContactRequest is the JSON body accepted by POST /api/contact.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Country string `json:"country"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidateContact returns the names of absent fields, in request order.
func ValidateContact(req CreateContactRequest) []string {
	return missing(
		field{"name", req.Name},
		field{"email", req.Email},
		field{"mobile", req.Mobile},
		field{"country", req.Country},
		field{"subject", req.Subject},
		field{"message", req.Message},
	)
}

// NewContact builds the document for req. CreatedAt is assigned by the store.
func NewContact(req CreateContactRequest) Contact {
	return Contact{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Country: req.Country,
		Subject: req.Subject,
		Message: req.Message,
	}
}

type field struct {
	name  string
	value string
}

func missing(fields ...field) []string {
	var names []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			names = append(names, f.name)
		}
	}
	return names
}
