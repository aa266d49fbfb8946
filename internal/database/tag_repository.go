// internal/database/tag_repository.go
package database

import (
	"context"
	"fmt"

	"threadqube/internal/models"
	"threadqube/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureTag creates a tag if it doesn't exist. Like CreateUser this is a
// single conditional upsert over the unique name index, so two concurrent
// creations of the same tag leave exactly one document.
func (m *MongoDB) EnsureTag(ctx context.Context, name string) (bool, error) {
	filter := bson.M{"name": name}
	update := bson.M{"$setOnInsert": bson.M{"name": name}}
	opts := options.Update().SetUpsert(true)

	res, err := m.Tags.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, utils.NewAppError(utils.ErrDatabase, "Failed to save tag", err)
	}
	return res.UpsertedCount == 1, nil
}

// ListTags returns every tag, alphabetically.
func (m *MongoDB) ListTags(ctx context.Context) ([]*models.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := m.Tags.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to fetch tags", err)
	}
	defer cursor.Close(ctx)

	var tags []*models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return tags, nil
}
