// internal/database/user_repository.go
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

// CreateUser performs the idempotent first-sign-in insert. A single
// conditional upsert keyed on email (backed by the unique index) replaces
// the racy check-then-insert: when the email already exists nothing
// changes and created comes back false.
func (m *MongoDB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, bool, error) {
	now := time.Now().UTC()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	filter := bson.M{"email": user.Email}
	update := bson.M{"$setOnInsert": user}
	opts := options.Update().SetUpsert(true)

	res, err := m.Users.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return primitive.NilObjectID, false, utils.NewAppError(utils.ErrDatabase, "Failed to save user", err)
	}

	if res.UpsertedCount == 0 {
		return primitive.NilObjectID, false, nil
	}

	id, ok := res.UpsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, false, utils.NewAppError(utils.ErrDatabase, "Unexpected upserted id type", nil)
	}
	return id, true, nil
}

// GetUserByEmail retrieves a user by email, the identity key for every
// identity-scoped operation.
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewUserNotFoundError(email)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to get user", err)
	}
	return &user, nil
}

// ListUsers retrieves one page of users, newest first.
func (m *MongoDB) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, int64, error) {
	total, err := m.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to count users", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := m.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "Failed to fetch users", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return users, total, nil
}

// SetUserRole updates the role field, used by the promote-to-admin route.
func (m *MongoDB) SetUserRole(ctx context.Context, id primitive.ObjectID, role string) error {
	res, err := m.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to update role", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	return nil
}

// SetUserBadge updates the badge field, keyed by email.
func (m *MongoDB) SetUserBadge(ctx context.Context, email, badge string) error {
	res, err := m.Users.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"badge": badge, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to update badge", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewUserNotFoundError(email)
	}
	return nil
}
