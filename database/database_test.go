package database

import (
	"context"
	"testing"
	"time"

	"github.com/astraautomax/automax-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockStore(mt *mtest.T) *Store {
	s := New(mt.DB)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func TestProducts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create sets id and timestamps", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Product{Name: "Relay", PartNo: "R-1"}
		require.NoError(mt, s.CreateProduct(ctx, p))
		assert.False(mt, p.ID.IsZero())
		assert.Equal(mt, s.now(), p.CreatedAt)
		assert.Equal(mt, p.CreatedAt, p.UpdatedAt)
	})

	mt.Run("create duplicate part number", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: automax.products index: partNo_unique",
		}))

		err := s.CreateProduct(ctx, &models.Product{PartNo: "R-1"})
		assert.ErrorIs(mt, err, ErrDuplicatePartNo)
	})

	mt.Run("get malformed id is not found", func(mt *mtest.T) {
		s := newMockStore(mt)
		_, err := s.GetProduct(ctx, "not-an-object-id")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("get missing id is not found", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "automax.products", mtest.FirstBatch))

		_, err := s.GetProduct(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("get existing product", func(mt *mtest.T) {
		s := newMockStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "automax.products", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Relay"},
			{Key: "partNo", Value: "R-1"},
			{Key: "stock", Value: "4"},
		}))

		p, err := s.GetProduct(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, "Relay", p.Name)
		assert.Equal(mt, "4", p.Stock)
	})

	mt.Run("list decodes all products", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "automax.products", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "A"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "B"}},
		))

		products, err := s.ListProducts(ctx)
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "A", products[0].Name)
		assert.Equal(mt, "B", products[1].Name)
	})

	mt.Run("update missing id is not found", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := s.UpdateProduct(ctx, primitive.NewObjectID().Hex(), models.ProductChanges{Name: "X"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		s := newMockStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Relay"},
			{Key: "color", Value: "Blue"},
		}}))

		p, err := s.UpdateProduct(ctx, id.Hex(), models.ProductChanges{Color: "Blue"})
		require.NoError(mt, err)
		assert.Equal(mt, "Blue", p.Color)

		cmd := mt.GetStartedEvent().Command
		set := cmd.Lookup("update", "$set").Document()
		assert.Equal(mt, "Blue", set.Lookup("color").StringValue())
		_, err = set.LookupErr("name")
		assert.Error(mt, err, "unset fields must not be written")
	})

	mt.Run("delete missing id is not found", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := s.DeleteProduct(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestContacts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create stamps createdAt", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		c := &models.Contact{Name: "Asha"}
		require.NoError(mt, s.CreateContact(ctx, c))
		assert.Equal(mt, s.now(), c.CreatedAt)
		assert.False(mt, c.ID.IsZero())
	})

	mt.Run("list sorts newest first", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "automax.contacts", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "newest"}},
		))

		contacts, err := s.ListContacts(ctx)
		require.NoError(mt, err)
		require.Len(mt, contacts, 1)

		sort := mt.GetStartedEvent().Command.Lookup("sort").Document()
		assert.Equal(mt, int32(-1), sort.Lookup("createdAt").Int32())
	})
}

func TestAdmins(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("unknown email", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "automax.admins", mtest.FirstBatch))

		_, err := s.FindAdminByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("known email", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "automax.admins", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "admin@example.com"},
			{Key: "password", Value: "$2a$10$hash"},
		}))

		admin, err := s.FindAdminByEmail(ctx, "admin@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "$2a$10$hash", admin.Password)
	})
}

func TestUpsertAdmin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("creates a new admin", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: primitive.NewObjectID()}}}},
		))

		created, err := s.UpsertAdmin(ctx, "admin@example.com", "$2a$10$hash")
		require.NoError(mt, err)
		assert.True(mt, created)
	})

	mt.Run("resets an existing admin", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		created, err := s.UpsertAdmin(ctx, "admin@example.com", "$2a$10$hash")
		require.NoError(mt, err)
		assert.False(mt, created)
	})

	mt.Run("write failure", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11600, Message: "interrupted"}))

		_, err := s.UpsertAdmin(ctx, "admin@example.com", "$2a$10$hash")
		assert.Error(mt, err)
	})
}
