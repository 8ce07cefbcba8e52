package database

import (
	"context"
	"fmt"

	"github.com/astraautomax/automax-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateContact stores a submission, stamping CreatedAt.
func (s *Store) CreateContact(ctx context.Context, c *models.Contact) error {
	c.CreatedAt = s.now()
	result, err := s.contacts.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

// ListContacts returns all submissions, newest first.
func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.contacts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	return contacts, nil
}
