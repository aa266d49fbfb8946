package handlers

import (
	"context"
	"net/http"
	"testing"

	"threadqube/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateReportValidatesIDs(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.HandleCreateReport(), http.MethodPost, "/reports", CreateReportRequest{
		PostID:    "nothex",
		CommentID: primitive.NewObjectID().Hex(),
		Feedback:  "spam",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListReportsEnrichedWithComment(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	postID, err := store.CreatePost(ctx, models.Document{"title": "reported"})
	assert.NoError(t, err)
	commentID, err := store.CreateComment(ctx, &models.Comment{
		PostID:      postID.Hex(),
		UserEmail:   "troll@example.com",
		CommentText: "spam",
	})
	assert.NoError(t, err)

	rec := doJSON(t, s.HandleCreateReport(), http.MethodPost, "/reports", CreateReportRequest{
		PostID:    postID.Hex(),
		CommentID: commentID.Hex(),
		Feedback:  "spam",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	list := doJSON(t, s.HandleListReports(), http.MethodGet, "/reports?page=1&limit=10", nil, nil)
	assert.Equal(t, http.StatusOK, list.Code)

	var envelope struct {
		Reports      []models.Document `json:"reports"`
		TotalReports int               `json:"totalReports"`
	}
	decodeBody(t, list, &envelope)
	assert.Equal(t, 1, envelope.TotalReports)
	if assert.Len(t, envelope.Reports, 1) {
		comment, ok := envelope.Reports[0]["comment"].(map[string]interface{})
		if assert.True(t, ok, "report should carry the reported comment") {
			assert.Equal(t, "spam", comment["commentText"])
		}
	}
}

func TestDeleteReport(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	reportID, err := store.CreateReport(ctx, &models.Report{
		PostID:    primitive.NewObjectID().Hex(),
		CommentID: primitive.NewObjectID().Hex(),
		Feedback:  "spam",
	})
	assert.NoError(t, err)

	id := reportID.Hex()
	rec := doJSON(t, s.HandleDeleteReport(), http.MethodDelete, "/reports/"+id, nil, map[string]string{"id": id})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	assert.EqualValues(t, 1, resp["deletedCount"])
}

func TestDeleteReportsByComment(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	postID := primitive.NewObjectID().Hex()
	commentID := primitive.NewObjectID().Hex()
	for i := 0; i < 3; i++ {
		_, err := store.CreateReport(ctx, &models.Report{PostID: postID, CommentID: commentID, Feedback: "spam"})
		assert.NoError(t, err)
	}
	_, err := store.CreateReport(ctx, &models.Report{
		PostID:    postID,
		CommentID: primitive.NewObjectID().Hex(),
		Feedback:  "unrelated",
	})
	assert.NoError(t, err)

	rec := doJSON(t, s.HandleDeleteReportsByComment(), http.MethodDelete, "/reports/byComment/"+commentID,
		nil, map[string]string{"commentId": commentID})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	assert.EqualValues(t, 3, resp["deletedCount"])

	remaining, err := store.ListReportsByPost(ctx, postID)
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "unrelated", remaining[0].Feedback)
}
