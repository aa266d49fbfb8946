// internal/database/post_repository.go
package database

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"threadqube/internal/models"
	"threadqube/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePost inserts a post document as-is. The body is opaque to the API;
// only the timestamp and the counters the service maintains are filled in
// when the caller leaves them out.
func (m *MongoDB) CreatePost(ctx context.Context, doc models.Document) (primitive.ObjectID, error) {
	prepared := preparePostDocument(doc)

	res, err := m.Posts.InsertOne(ctx, prepared)
	if err != nil {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Failed to insert post", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, utils.NewAppError(utils.ErrDatabase, "Unexpected inserted id type", nil)
	}
	return id, nil
}

// preparePostDocument copies the caller document and fills in the fields
// the service owns: postTime and the three counters.
func preparePostDocument(doc models.Document) models.Document {
	prepared := make(models.Document, len(doc)+4)
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		prepared[k] = v
	}
	if _, ok := prepared[models.PostFieldPostTime]; !ok {
		prepared[models.PostFieldPostTime] = time.Now().UTC()
	}
	for _, counter := range []string{models.PostFieldUpvote, models.PostFieldDownVote, models.PostFieldCommentsCount} {
		if _, ok := prepared[counter]; !ok {
			prepared[counter] = int32(0)
		}
	}
	return prepared
}

// GetPost retrieves a post by its ObjectID.
func (m *MongoDB) GetPost(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var doc models.Document
	err := m.Posts.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrPostNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to get post", err)
	}
	return doc, nil
}

// DeletePost removes a post by id and reports how many documents went away.
func (m *MongoDB) DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := m.Posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, utils.NewAppError(utils.ErrDatabase, "Failed to delete post", err)
	}
	return res.DeletedCount, nil
}

// ListPosts runs the feed pipeline: optional case-insensitive tag match,
// derived totalVotes (upvote - downVote), a comments join keyed on the
// string form of the post id, commentsCount from the join size, then sort,
// skip and limit. The popularity sort orders by (totalVotes desc, postTime
// desc); the default orders by postTime desc alone.
func (m *MongoDB) ListPosts(ctx context.Context, q PostQuery) ([]models.Document, int64, error) {
	match := bson.M{}
	if q.Tag != "" {
		match[models.PostFieldTag] = primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(q.Tag) + "$",
			Options: "i",
		}
	}

	total, err := m.Posts.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to count posts", err)
	}

	sort := bson.D{{Key: models.PostFieldPostTime, Value: -1}}
	if q.Sort == models.SortPopularity {
		sort = bson.D{
			{Key: models.PostFieldTotalVotes, Value: -1},
			{Key: models.PostFieldPostTime, Value: -1},
		}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: models.PostFieldTotalVotes, Value: bson.D{{Key: "$subtract", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$" + models.PostFieldUpvote, 0}}},
				bson.D{{Key: "$ifNull", Value: bson.A{"$" + models.PostFieldDownVote, 0}}},
			}}}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "comments"},
			{Key: "let", Value: bson.D{{Key: "postId", Value: bson.D{{Key: "$toString", Value: "$_id"}}}}},
			{Key: "pipeline", Value: mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$postId", "$$postId"}}}},
				}}},
			}},
			{Key: "as", Value: "joinedComments"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: models.PostFieldCommentsCount, Value: bson.D{{Key: "$size", Value: "$joinedComments"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "joinedComments", Value: 0}}}},
		bson.D{{Key: "$sort", Value: sort}},
		bson.D{{Key: "$skip", Value: int64(q.Skip)}},
		bson.D{{Key: "$limit", Value: int64(q.Limit)}},
	}

	cursor, err := m.Posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to aggregate posts", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Document
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, total, nil
}

// ListPostsByAuthor retrieves one page of a user's own posts, newest first.
func (m *MongoDB) ListPostsByAuthor(ctx context.Context, email string, skip, limit int) ([]models.Document, int64, error) {
	filter := bson.M{models.PostFieldAuthorEmail: email}

	total, err := m.Posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to count posts", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: models.PostFieldPostTime, Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := m.Posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to fetch posts", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Document
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, total, nil
}

// ApplyVote bumps exactly one vote counter. "upvote" increments upvote;
// every other voteType increments downVote.
func (m *MongoDB) ApplyVote(ctx context.Context, id primitive.ObjectID, voteType string) error {
	field := models.PostFieldDownVote
	if models.IsUpvote(voteType) {
		field = models.PostFieldUpvote
	}

	res, err := m.Posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to record vote", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	return nil
}

// BumpCommentCount increments a post's comment counter by one.
func (m *MongoDB) BumpCommentCount(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Posts.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{models.PostFieldCommentsCount: 1}})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to update comment count", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	return nil
}
