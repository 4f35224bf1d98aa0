//
// Creates the initial admin account if no admin exists yet.
// Usage: go run scripts/seed_admin.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DATABASE_NAME")
	if dbName == "" {
		dbName = "ngo_management"
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.org"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(ctx)

	collection := client.Database(dbName).Collection("users")

	count, err := collection.CountDocuments(ctx, bson.M{"role": "admin"})
	if err != nil {
		log.Fatal(err)
	}
	if count > 0 {
		fmt.Println("admin account already exists, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	now := time.Now()
	result, err := collection.InsertOne(ctx, bson.M{
		"name":          "Administrator",
		"email":         email,
		"role":          "admin",
		"password_hash": string(hash),
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("created admin %s (%v)\n", email, result.InsertedID)
}
