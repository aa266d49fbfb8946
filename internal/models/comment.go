package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lives under a post. PostID is the string form of the post's
// ObjectID, matching how the frontend sends it.
type Comment struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PostID      string             `json:"postId" bson:"postId"`
	UserEmail   string             `json:"userEmail" bson:"userEmail"`
	UserName    string             `json:"userName,omitempty" bson:"userName,omitempty"`
	CommentText string             `json:"commentText" bson:"commentText"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
