package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/astraautomax/automax-backend/database"
	"github.com/astraautomax/automax-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore mimics the mongo-backed store, including the unique partNo index.
type memoryStore struct {
	mu       sync.Mutex
	products []models.Product
	contacts []models.Contact
	now      time.Time
	failNext error
	pingErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (s *memoryStore) tick() time.Time {
	s.now = s.now.Add(time.Minute)
	return s.now
}

func (s *memoryStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *memoryStore) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	for _, existing := range s.products {
		if existing.PartNo == p.PartNo {
			return database.ErrDuplicatePartNo
		}
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	s.products = append(s.products, *p)
	return nil
}

func (s *memoryStore) ListProducts(context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	return append([]models.Product{}, s.products...), nil
}

func (s *memoryStore) index(id string) int {
	for i, p := range s.products {
		if p.ID.Hex() == id {
			return i
		}
	}
	return -1
}

func (s *memoryStore) GetProduct(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, database.ErrNotFound
	}
	p := s.products[i]
	return &p, nil
}

func (s *memoryStore) UpdateProduct(_ context.Context, id string, changes models.ProductChanges) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	i := s.index(id)
	if i < 0 {
		return nil, database.ErrNotFound
	}
	if changes.PartNo != "" {
		for j, other := range s.products {
			if j != i && other.PartNo == changes.PartNo {
				return nil, database.ErrDuplicatePartNo
			}
		}
	}
	p := s.products[i]
	changes.Apply(&p)
	p.UpdatedAt = s.tick()
	s.products[i] = p
	return &p, nil
}

func (s *memoryStore) DeleteProduct(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, database.ErrNotFound
	}
	removed := s.products[i]
	s.products = append(s.products[:i], s.products[i+1:]...)
	return &removed, nil
}

func (s *memoryStore) CreateContact(_ context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	c.ID = primitive.NewObjectID()
	c.CreatedAt = s.tick()
	s.contacts = append(s.contacts, *c)
	return nil
}

func (s *memoryStore) ListContacts(context.Context) ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Contact{}, s.contacts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memoryStore) Ping(context.Context) error {
	return s.pingErr
}

// recordingImages is a cloud-like ImageStorage that records uploads and discards.
type recordingImages struct {
	mu        sync.Mutex
	stored    int
	discarded []models.ProductImage
	storeErr  error
}

func (r *recordingImages) Store(_ context.Context, dataURI string) (models.ProductImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.storeErr != nil {
		return models.ProductImage{}, r.storeErr
	}
	if !models.IsImageDataURI(dataURI) {
		return models.ProductImage{}, errors.New("unexpected payload")
	}
	r.stored++
	id := primitive.NewObjectID().Hex()
	return models.ProductImage{URL: "https://cdn.example.com/" + id + ".png", PublicID: "products/" + id}, nil
}

func (r *recordingImages) Discard(_ context.Context, img models.ProductImage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discarded = append(r.discarded, img)
}
