// internal/database/feedback_repository.go
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

// CreateFeedback inserts a feedback body as-is, with the response/read
// flags cleared.
func (m *MongoDB) CreateFeedback(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	prepared := make(models.Document, len(doc)+3)
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		prepared[k] = v
	}
	prepared["response"] = false
	prepared["read"] = false
	if _, ok := prepared["createdAt"]; !ok {
		prepared["createdAt"] = time.Now().UTC()
	}

	res, err := m.Feedback.InsertOne(ctx, prepared)
	if err != nil {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Failed to insert feedback", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Unexpected inserted id type", nil)
	}
	return id, nil
}

// ListFeedback retrieves one admin page of feedback, newest first.
func (m *MongoDB) ListFeedback(ctx context.Context, skip, limit int) ([]models.Document, int64, error) {
	total, err := m.Feedback.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to count feedback", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := m.Feedback.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to fetch feedback", err)
	}
	defer cursor.Close(ctx)

	var feedback []models.Document
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, 0, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return feedback, total, nil
}

// MarkFeedbackResponded sets the response flag and stamps respondedAt.
func (m *MongoDB) MarkFeedbackResponded(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Feedback.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"response": true, "respondedAt": time.Now().UTC()},
	})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to update feedback", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Feedback not found", nil)
	}
	return nil
}

// MarkFeedbackRead sets the read flag.
func (m *MongoDB) MarkFeedbackRead(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Feedback.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to update feedback", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Feedback not found", nil)
	}
	return nil
}

// DeleteFeedback removes one feedback document by id.
func (m *MongoDB) DeleteFeedback(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := m.Feedback.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, utils.NewAppError(utils.ErrDatabase, "Failed to delete feedback", err)
	}
	return res.DeletedCount, nil
}
