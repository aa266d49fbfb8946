// internal/database/announcement_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"threadqube/internal/models"
	"threadqube/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAnnouncement inserts an announcement body as-is with the read flag
// cleared and a creation timestamp for ordering.
func (m *MongoDB) CreateAnnouncement(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	prepared := make(models.Document, len(doc)+2)
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		prepared[k] = v
	}
	prepared["read"] = false
	if _, ok := prepared["createdAt"]; !ok {
		prepared["createdAt"] = time.Now().UTC()
	}

	res, err := m.Announcements.InsertOne(ctx, prepared)
	if err != nil {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Failed to insert announcement", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Unexpected inserted id type", nil)
	}
	return id, nil
}

// ListAnnouncements returns all announcements, newest first.
func (m *MongoDB) ListAnnouncements(ctx context.Context) ([]models.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.Announcements.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to fetch announcements", err)
	}
	defer cursor.Close(ctx)

	var announcements []models.Document
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return announcements, nil
}

// MarkAnnouncementRead sets the read flag on one announcement.
func (m *MongoDB) MarkAnnouncementRead(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Announcements.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to update announcement", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Announcement not found", nil)
	}
	return nil
}
