package handlers

import (
	"net/http"
	"testing"

	"threadqube/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateCommentRejectsMalformedPostID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.HandleCreateComment(), http.MethodPost, "/comments",
		CreateCommentRequest{PostID: "nothex", CommentText: "hi"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentLifecycleWithReportCascade(t *testing.T) {
	s, _ := newTestServer(t)

	postID := createTestPost(t, s, models.Document{"title": "thread"})

	rec := doJSON(t, s.HandleCreateComment(), http.MethodPost, "/comments", CreateCommentRequest{
		PostID:      postID,
		UserEmail:   "gator@example.com",
		UserName:    "Gator",
		CommentText: "nice post",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var insert models.InsertResponse
	decodeBody(t, rec, &insert)
	commentID := insert.InsertedID

	// The parent post's counter moved with the comment.
	get := doJSON(t, s.HandleGetPost(), http.MethodGet, "/Allposts/"+postID, nil, map[string]string{"id": postID})
	var post models.Document
	decodeBody(t, get, &post)
	assert.EqualValues(t, 1, post[models.PostFieldCommentsCount])

	report := doJSON(t, s.HandleCreateReport(), http.MethodPost, "/reports", CreateReportRequest{
		PostID:    postID,
		CommentID: commentID,
		Feedback:  "rude",
	}, nil)
	assert.Equal(t, http.StatusOK, report.Code)

	del := doJSON(t, s.HandleDeleteComment(), http.MethodDelete, "/comments/"+commentID, nil,
		map[string]string{"id": commentID})
	assert.Equal(t, http.StatusOK, del.Code)

	// Reports filed against the comment disappear with it.
	reports := doJSON(t, s.HandleListPostReports(), http.MethodGet, "/reports/"+postID, nil,
		map[string]string{"postId": postID})
	assert.Equal(t, http.StatusOK, reports.Code)
	var remaining []models.Report
	decodeBody(t, reports, &remaining)
	assert.Empty(t, remaining)

	comments := doJSON(t, s.HandleListComments(), http.MethodGet, "/comments?postId="+postID, nil, nil)
	assert.Equal(t, http.StatusOK, comments.Code)
	var left []models.Comment
	decodeBody(t, comments, &left)
	assert.Empty(t, left)
}

func TestListCommentsMalformedPostID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.HandleListComments(), http.MethodGet, "/comments?postId=zzz", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
