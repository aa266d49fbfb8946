// internal/database/store.go
package database

import (
	"context"

	"threadqube/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostQuery describes one page of the post listing.
type PostQuery struct {
	Tag   string // optional, case-insensitive exact match
	Sort  string // models.SortNewest (default) or models.SortPopularity
	Skip  int
	Limit int
}

// Store defines the common interface for document-store operations.
// MongoDB is the production backend; MemoryStore backs tests and local
// development.
type Store interface {
	// Connection
	Close(ctx context.Context) error

	// User methods
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, int64, error)
	SetUserRole(ctx context.Context, id primitive.ObjectID, role string) error
	SetUserBadge(ctx context.Context, email, badge string) error

	// Post methods
	CreatePost(ctx context.Context, doc models.Document) (primitive.ObjectID, error)
	GetPost(ctx context.Context, id primitive.ObjectID) (models.Document, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error)
	ListPosts(ctx context.Context, q PostQuery) ([]models.Document, int64, error)
	ListPostsByAuthor(ctx context.Context, email string, skip, limit int) ([]models.Document, int64, error)
	ApplyVote(ctx context.Context, id primitive.ObjectID, voteType string) error
	BumpCommentCount(ctx context.Context, id primitive.ObjectID) error

	// Comment methods
	CreateComment(ctx context.Context, comment *models.Comment) (primitive.ObjectID, error)
	GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) (int64, error)

	// Report methods
	CreateReport(ctx context.Context, report *models.Report) (primitive.ObjectID, error)
	ListReportsByPost(ctx context.Context, postID string) ([]*models.Report, error)
	ListReports(ctx context.Context, skip, limit int) ([]models.Document, int64, error)
	DeleteReport(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteReportsByComment(ctx context.Context, commentID string) (int64, error)

	// Announcement methods
	CreateAnnouncement(ctx context.Context, doc models.Document) (primitive.ObjectID, error)
	ListAnnouncements(ctx context.Context) ([]models.Document, error)
	MarkAnnouncementRead(ctx context.Context, id primitive.ObjectID) error

	// Tag methods
	EnsureTag(ctx context.Context, name string) (bool, error)
	ListTags(ctx context.Context) ([]*models.Tag, error)

	// Feedback methods
	CreateFeedback(ctx context.Context, doc models.Document) (primitive.ObjectID, error)
	ListFeedback(ctx context.Context, skip, limit int) ([]models.Document, int64, error)
	MarkFeedbackResponded(ctx context.Context, id primitive.ObjectID) error
	MarkFeedbackRead(ctx context.Context, id primitive.ObjectID) error
	DeleteFeedback(ctx context.Context, id primitive.ObjectID) (int64, error)

	// Static page methods
	UpsertPage(ctx context.Context, id string, doc models.Document) error
	PatchPage(ctx context.Context, id string, doc models.Document) error
	GetPage(ctx context.Context, id string) (models.Document, error)
}
