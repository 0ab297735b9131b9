package database

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var Client *mongo.Client

func Connect() error {
	mongoUri := os.Getenv("MONGO_URI")
	connectionString := options.Client().ApplyURI(mongoUri)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectionString)
	if err != nil {
		log.Error().Err(err).Msg("mongo connect failed")
		return err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		log.Error().Err(err).Msg("mongo ping failed")
		return err
	}

	Client = client
	log.Info().Msg("MongoDB connected")
	return nil
}

func Name() string {
	if name := os.Getenv("MONGO_DB"); name != "" {
		return name
	}
	return "mengblog"
}

func Collection(name string) *mongo.Collection {
	return Client.Database(Name()).Collection(name)
}
