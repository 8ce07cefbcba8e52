package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin is a back-office login. Documents are seeded out-of-band;
// the API only reads them.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"` // bcrypt hash
}

// LoginRequest is the JSON body accepted by POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
