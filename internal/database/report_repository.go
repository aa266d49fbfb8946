// internal/database/report_repository.go
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

// CreateReport files a report against a comment.
func (m *MongoDB) CreateReport(ctx context.Context, report *models.Report) (primitive.ObjectID, error) {
	if report.ReportedAt.IsZero() {
		report.ReportedAt = time.Now().UTC()
	}

	res, err := m.Reports.InsertOne(ctx, report)
	if err != nil {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Failed to insert report", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Unexpected inserted id type", nil)
	}
	return id, nil
}

// ListReportsByPost retrieves every report filed under a post.
func (m *MongoDB) ListReportsByPost(ctx context.Context, postID string) ([]*models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "reportedAt", Value: -1}})

	cursor, err := m.Reports.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to fetch reports", err)
	}
	defer cursor.Close(ctx)

	var reports []*models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return reports, nil
}

// ListReports retrieves one admin page of reports, each enriched with the
// reported comment (joined on string equality with the comment id hex).
func (m *MongoDB) ListReports(ctx context.Context, skip, limit int) ([]models.Document, int64, error) {
	total, err := m.Reports.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to count reports", err)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "reportedAt", Value: -1}}}},
		bson.D{{Key: "$skip", Value: int64(skip)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "comments"},
			{Key: "let", Value: bson.D{{Key: "cid", Value: "$commentId"}}},
			{Key: "pipeline", Value: mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{
						bson.D{{Key: "$toString", Value: "$_id"}},
						"$$cid",
					}}}},
				}}},
			}},
			{Key: "as", Value: "comment"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "comment", Value: bson.D{{Key: "$first", Value: "$comment"}}},
		}}},
	}

	cursor, err := m.Reports.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to aggregate reports", err)
	}
	defer cursor.Close(ctx)

	var reports []models.Document
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return reports, total, nil
}

// DeleteReport removes one report by id.
func (m *MongoDB) DeleteReport(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := m.Reports.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, utils.NewAppError(utils.ErrDatabase, "Failed to delete report", err)
	}
	return res.DeletedCount, nil
}

// DeleteReportsByComment removes every report that points at the given
// comment. Called when the comment itself is deleted.
func (m *MongoDB) DeleteReportsByComment(ctx context.Context, commentID string) (int64, error) {
	res, err := m.Reports.DeleteMany(ctx, bson.M{"commentId": commentID})
	if err != nil {
		return 0, utils.NewAppError(utils.ErrDatabase, "Failed to delete reports", err)
	}
	return res.DeletedCount, nil
}
