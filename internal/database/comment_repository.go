// internal/database/comment_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"threadqube/internal/models"
	"threadqube/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateComment inserts a comment under a post. The post's comment counter
// is maintained separately by the comment actor.
func (m *MongoDB) CreateComment(ctx context.Context, comment *models.Comment) (primitive.ObjectID, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	res, err := m.Comments.InsertOne(ctx, comment)
	if err != nil {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Failed to insert comment", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Unexpected inserted id type", nil)
	}
	return id, nil
}

// GetComment retrieves a single comment by id.
func (m *MongoDB) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := m.Comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found", err)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to get comment", err)
	}
	return &comment, nil
}

// ListCommentsByPost retrieves all comments for a post, newest first.
// PostID matching is string equality against the stored post id hex.
func (m *MongoDB) ListCommentsByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.Comments.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to fetch comments", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return comments, nil
}

// DeleteComment removes a comment by id.
func (m *MongoDB) DeleteComment(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := m.Comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, utils.NewAppError(utils.ErrDatabase, "Failed to delete comment", err)
	}
	return res.DeletedCount, nil
}
