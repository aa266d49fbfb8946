package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report flags a comment on a post. Reports are removed in bulk when the
// reported comment is deleted.
type Report struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PostID     string             `json:"postId" bson:"postId"`
	CommentID  string             `json:"commentId" bson:"commentId"`
	Feedback   string             `json:"feedback" bson:"feedback"`
	ReportedAt time.Time          `json:"reportedAt" bson:"reportedAt"`
}
