package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const uploadTimeout = 30 * time.Second

// CloudinaryConfig holds the account settings for the Cloudinary upload API.
type CloudinaryConfig struct {
	BaseURL   string // e.g. https://api.cloudinary.com/v1_1
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Cloudinary is a MediaHost backed by Cloudinary's signed REST API.
type Cloudinary struct {
	cfg    CloudinaryConfig
	client *resty.Client
	now    func() time.Time
}

// NewCloudinary creates a Cloudinary client.
func NewCloudinary(cfg CloudinaryConfig) *Cloudinary {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.CloudName).
		SetTimeout(uploadTimeout)
	return &Cloudinary{cfg: cfg, client: client, now: time.Now}
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type cloudinaryDestroyResponse struct {
	Result string `json:"result"`
}

type cloudinaryErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends a data URI to the image upload endpoint.
func (c *Cloudinary) Upload(ctx context.Context, dataURI string) (UploadResult, error) {
	params := map[string]string{"timestamp": c.timestamp()}
	if c.cfg.Folder != "" {
		params["folder"] = c.cfg.Folder
	}

	var out cloudinaryUploadResponse
	var apiErr cloudinaryErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(c.sign(params)).
		SetFormData(map[string]string{"file": dataURI}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/image/upload")
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if resp.IsError() {
		return UploadResult{}, fmt.Errorf("%w: status %d: %s", ErrUpload, resp.StatusCode(), apiErr.Error.Message)
	}
	if out.SecureURL == "" {
		return UploadResult{}, fmt.Errorf("%w: response carried no secure_url", ErrUpload)
	}
	return UploadResult{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// Destroy deletes an uploaded asset. A missing asset is not an error.
func (c *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	params := map[string]string{
		"public_id": publicID,
		"timestamp": c.timestamp(),
	}

	var out cloudinaryDestroyResponse
	var apiErr cloudinaryErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(c.sign(params)).
		SetResult(&out).
		SetError(&apiErr).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("destroy %s: status %d: %s", publicID, resp.StatusCode(), apiErr.Error.Message)
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("destroy %s: unexpected result %q", publicID, out.Result)
	}
	return nil
}

func (c *Cloudinary) timestamp() string {
	return strconv.FormatInt(c.now().Unix(), 10)
}

// sign adds api_key and signature to params. The signature is the SHA-1 of
// the sorted key=value pairs joined by '&', followed by the API secret.
func (c *Cloudinary) sign(params map[string]string) map[string]string {
	signed := make(map[string]string, len(params)+2)
	signed["signature"] = Signature(params, c.cfg.APISecret)
	signed["api_key"] = c.cfg.APIKey
	for k, v := range params {
		signed[k] = v
	}
	return signed
}

// Signature computes a Cloudinary request signature.
func Signature(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
