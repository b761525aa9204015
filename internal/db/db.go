package db

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectToDB opens the question-bank database. The database name is taken
// from the MONGODB_URI path.
func ConnectToDB() (*mongo.Database, context.CancelFunc, error) {
	mongoURI := os.Getenv("MONGODB_URI")

	uri, err := url.Parse(mongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("parse MONGODB_URI: %w", err)
	}
	dbName := strings.TrimPrefix(uri.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("connect to question bank: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("ping question bank: %w", err)
	}

	return client.Database(dbName), cancel, nil
}

// CreateVariantIndexForCollection indexes the question collection on the
// game variant tag so $sample draws stay cheap.
func CreateVariantIndexForCollection(db *mongo.Database, collectionName string) {
	indexModel := mongo.IndexModel{
		Keys: bson.M{"variant": 1},
	}
	if _, err := db.Collection(collectionName).Indexes().CreateOne(context.TODO(), indexModel); err != nil {
		log.Fatalf("create variant index on %s: %v", collectionName, err)
	}
}
