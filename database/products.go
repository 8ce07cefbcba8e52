package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/astraautomax/automax-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProduct inserts p and sets its ID and timestamps.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	result, err := s.products.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert product %q: %w", p.PartNo, ErrDuplicatePartNo)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

// ListProducts returns every product in natural order.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// GetProduct loads a product by its hex identifier.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &p, nil
}

// UpdateProduct applies changes to the product and returns the updated document.
func (s *Store) UpdateProduct(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": s.now()}
	unset := bson.M{}
	for key, value := range map[string]string{
		"name":     changes.Name,
		"category": changes.Category,
		"volt":     changes.Volt,
		"partNo":   changes.PartNo,
		"color":    changes.Color,
		"stock":    changes.Stock,
	} {
		if value != "" {
			set[key] = value
		}
	}
	if img := changes.Image; img != nil {
		// A replacement image may switch representation, so clear the one it does not use.
		setOrUnset(set, unset, "image", img.Data, len(img.Data) > 0)
		setOrUnset(set, unset, "imageUrl", img.URL, img.URL != "")
		setOrUnset(set, unset, "imagePublicId", img.PublicID, img.PublicID != "")
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = s.products.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, fmt.Errorf("update product %s: %w", id, ErrDuplicatePartNo)
		}
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return &updated, nil
}

func setOrUnset(set, unset bson.M, key string, value interface{}, present bool) {
	if present {
		set[key] = value
		return
	}
	unset[key] = ""
}

// DeleteProduct removes a product and returns the removed document.
func (s *Store) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var removed models.Product
	if err := s.products.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&removed); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete product %s: %w", id, err)
	}
	return &removed, nil
}
