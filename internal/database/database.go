// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client        *mongo.Client
	Users         *mongo.Collection
	Posts         *mongo.Collection
	Comments      *mongo.Collection
	Reports       *mongo.Collection
	Announcements *mongo.Collection
	Tags          *mongo.Collection
	Feedback      *mongo.Collection
	Pages         *mongo.Collection
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	slog.Info("Successfully connected to MongoDB", "database", dbName)

	// Initialize database and collections. The post collection keeps the
	// original "Allposts" name so existing data stays addressable.
	db := client.Database(dbName)
	m := &MongoDB{
		Client:        client,
		Users:         db.Collection("users"),
		Posts:         db.Collection("Allposts"),
		Comments:      db.Collection("comments"),
		Reports:       db.Collection("reports"),
		Announcements: db.Collection("announcements"),
		Tags:          db.Collection("tags"),
		Feedback:      db.Collection("feedback"),
		Pages:         db.Collection("staticPages"),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %v", err)
	}

	return m, nil
}

// ensureIndexes creates the indexes the service relies on. The unique
// indexes on users.email and tags.name back the conditional upserts that
// keep concurrent identical sign-ins/tag creations from double-inserting.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	_, err := m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users.email index: %v", err)
	}

	_, err = m.Tags.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("tags.name index: %v", err)
	}

	_, err = m.Posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postTime", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("Allposts.postTime index: %v", err)
	}

	_, err = m.Comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("comments.postId index: %v", err)
	}

	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
