package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astraautomax/automax-backend/database"
	"github.com/astraautomax/automax-backend/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of tokens issued at login.
const TokenTTL = time.Hour

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned by Verify for malformed, forged or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// AdminFinder looks up admins by email.
type AdminFinder interface {
	FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Claims is the payload of an issued token.
type Claims struct {
	AdminID string `json:"id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator exchanges admin credentials for signed tokens.
type Authenticator struct {
	admins AdminFinder
	secret []byte
	now    func() time.Time
}

// NewAuthenticator creates an Authenticator signing with secret (HS256).
func NewAuthenticator(admins AdminFinder, secret string) *Authenticator {
	return &Authenticator{admins: admins, secret: []byte(secret), now: time.Now}
}

// Login checks email and password and returns a token valid for TokenTTL.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := a.admins.FindAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := a.now()
	claims := Claims{
		AdminID: admin.ID.Hex(),
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token issued by Login.
func (a *Authenticator) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(a.now(), true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword produces the bcrypt hash stored for an admin.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
