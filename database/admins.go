package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/astraautomax/automax-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindAdminByEmail loads the admin with the given email.
func (s *Store) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.admins.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

// UpsertAdmin sets the password hash for email, creating the admin if needed.
// Only the seeding command writes admins.
func (s *Store) UpsertAdmin(ctx context.Context, email, passwordHash string) (created bool, err error) {
	result, err := s.admins.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         bson.M{"password": passwordHash},
			"$setOnInsert": bson.M{"email": email},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("upsert admin: %w", err)
	}
	return result.UpsertedCount > 0, nil
}
