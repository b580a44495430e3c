package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ReservationsCollection *mongo.Collection
	TimeSlotsCollection    *mongo.Collection
	NewsCollection         *mongo.Collection
	FreePlayCollection     *mongo.Collection
	SettingsCollection     *mongo.Collection
	UserCollection         *mongo.Collection
	Client                 *mongo.Client
)

// Connect opens the MongoDB connection and binds the collection handles.
// Called once from main before any handler runs.
func Connect(ctx context.Context) error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "eltablero"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	database := client.Database(dbName)
	ReservationsCollection = database.Collection("reservations")
	TimeSlotsCollection = database.Collection("timeslots")
	NewsCollection = database.Collection("news")
	FreePlayCollection = database.Collection("freeplay")
	SettingsCollection = database.Collection("settings")
	UserCollection = database.Collection("users")

	log.Printf("Connected to MongoDB database %q", dbName)
	return nil
}

// Disconnect closes the client; used during graceful shutdown.
func Disconnect(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("Mongo disconnect error: %v", err)
	}
}
