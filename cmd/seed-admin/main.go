// Command seed-admin creates or resets an admin login.
//
//	seed-admin -email admin@astraautomax.in -password '...'
//
// MONGODB_URI and MONGODB_DATABASE are read from the environment or .env.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/astraautomax/automax-backend/database"
	"github.com/astraautomax/automax-backend/services"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (falls back to ADMIN_PASSWORD)")
	flag.Parse()

	_ = godotenv.Load()

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if strings.TrimSpace(*email) == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Fatal("MONGODB_URI must be set")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "automax"
	}

	if err := seed(uri, dbName, strings.TrimSpace(*email), *password); err != nil {
		log.Fatal(err)
	}
}

// seed upserts the admin. The store is disconnected before it returns.
func seed(uri, dbName, email, password string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Connect(ctx, database.Options{URI: uri, Database: dbName})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if derr := store.Disconnect(context.Background()); derr != nil {
			log.Printf("disconnect: %v", derr)
		}
	}()

	hash, err := services.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	created, err := store.UpsertAdmin(ctx, email, hash)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Printf("created admin %s", email)
	} else {
		log.Printf("reset password for admin %s", email)
	}
	return nil
}
