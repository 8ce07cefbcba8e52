package models

import (
	"encoding/base64"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageDataURIPrefix is the literal every uploaded image payload must start with.
const ImageDataURIPrefix = "data:image"

// Product represents a catalog entry in the products collection.
// The image is held either inline (Image) or as a cloud reference
// (ImageURL/ImagePublicID), depending on the configured storage.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Category      string             `bson:"category"`
	Volt          string             `bson:"volt"`
	PartNo        string             `bson:"partNo"` // unique when PART_NUMBER_UNIQUE is on
	Color         string             `bson:"color"`
	Image         []byte             `bson:"image,omitempty"`
	ImageURL      string             `bson:"imageUrl,omitempty"`
	ImagePublicID string             `bson:"imagePublicId,omitempty"`
	Stock         string             `bson:"stock"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// ProductImage is the stored form of an uploaded image.
type ProductImage struct {
	Data     []byte
	URL      string
	PublicID string
}

// IsZero reports whether the image carries neither bytes nor a reference.
func (i ProductImage) IsZero() bool {
	return len(i.Data) == 0 && i.URL == "" && i.PublicID == ""
}

// StoredImage returns the image currently attached to p.
func (p *Product) StoredImage() ProductImage {
	return ProductImage{Data: p.Image, URL: p.ImageURL, PublicID: p.ImagePublicID}
}

// SetImage attaches img to p, clearing whichever representation img does not use.
func (p *Product) SetImage(img ProductImage) {
	p.Image = img.Data
	p.ImageURL = img.URL
	p.ImagePublicID = img.PublicID
}

// CreateProductRequest is the JSON body accepted by POST /api/products.
// Numeric fields such as stock may arrive as JSON numbers.
type CreateProductRequest struct {
	Name     Text `json:"name"`
	Category Text `json:"category"`
	Volt     Text `json:"volt"`
	PartNo   Text `json:"partNo"`
	Color    Text `json:"color"`
	Image    Text `json:"image"`
	Stock    Text `json:"stock"`
}

// ValidateProduct returns the names of absent fields, in request order.
func ValidateProduct(req CreateProductRequest) []string {
	return missing(
		field{"name", req.Name.String()},
		field{"category", req.Category.String()},
		field{"volt", req.Volt.String()},
		field{"partNo", req.PartNo.String()},
		field{"color", req.Color.String()},
		field{"image", req.Image.String()},
		field{"stock", req.Stock.String()},
	)
}

// IsImageDataURI reports whether s looks like a data-URI image payload.
func IsImageDataURI(s string) bool {
	return strings.HasPrefix(s, ImageDataURIPrefix)
}

// UpdateProductRequest is the JSON body accepted by PUT /api/products/:id.
// Empty fields leave the stored value unchanged.
type UpdateProductRequest struct {
	Name     Text `json:"name"`
	Category Text `json:"category"`
	Volt     Text `json:"volt"`
	PartNo   Text `json:"partNo"`
	Color    Text `json:"color"`
	Image    Text `json:"image"`
	Stock    Text `json:"stock"`
}

// HasNewImage reports whether the update carries a replaceable image.
// Payloads without the data-URI prefix are ignored, not rejected.
func (r UpdateProductRequest) HasNewImage() bool {
	return r.Image != "" && IsImageDataURI(r.Image.String())
}

// ProductChanges is the partial update applied by the store.
type ProductChanges struct {
	Name     string
	Category string
	Volt     string
	PartNo   string
	Color    string
	Stock    string
	Image    *ProductImage
}

// Changes converts the request text fields into a ProductChanges without an image.
func (r UpdateProductRequest) Changes() ProductChanges {
	return ProductChanges{
		Name:     r.Name.String(),
		Category: r.Category.String(),
		Volt:     r.Volt.String(),
		PartNo:   r.PartNo.String(),
		Color:    r.Color.String(),
		Stock:    r.Stock.String(),
	}
}

// Apply overwrites the fields of p that c sets.
func (c ProductChanges) Apply(p *Product) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Name, c.Name)
	set(&p.Category, c.Category)
	set(&p.Volt, c.Volt)
	set(&p.PartNo, c.PartNo)
	set(&p.Color, c.Color)
	set(&p.Stock, c.Stock)
	if c.Image != nil {
		p.SetImage(*c.Image)
	}
}

// ProductView is the wire representation of a product.
type ProductView struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Volt     string  `json:"volt"`
	PartNo   string  `json:"partNo"`
	Color    string  `json:"color"`
	Image    *string `json:"image"`
	Stock    string  `json:"stock"`
}

// NewProductView renders p for clients: inline bytes as base64 text,
// cloud references as their URL.
func NewProductView(p Product) ProductView {
	v := ProductView{
		ID:       p.ID.Hex(),
		Name:     p.Name,
		Category: p.Category,
		Volt:     p.Volt,
		PartNo:   p.PartNo,
		Color:    p.Color,
		Stock:    p.Stock,
	}
	switch {
	case p.ImageURL != "":
		url := p.ImageURL
		v.Image = &url
	case len(p.Image) > 0:
		encoded := base64.StdEncoding.EncodeToString(p.Image)
		v.Image = &encoded
	}
	return v
}
