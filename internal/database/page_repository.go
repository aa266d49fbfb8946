// internal/database/page_repository.go
package database

import (
	"context"
	"time"

	"threadqube/internal/models"
	"threadqube/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Static pages are keyed by a semantic string id ("terms-and-conditions"
// and friends), not an ObjectID, so _id is the page key itself.

// UpsertPage replaces a page's content, creating the page when absent.
func (m *MongoDB) UpsertPage(ctx context.Context, id string, doc models.Document) error {
	set := pageUpdate(doc)
	opts := options.Update().SetUpsert(true)

	_, err := m.Pages.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to save page", err)
	}
	return nil
}

// PatchPage merges fields into an existing page; missing pages are not
// created.
func (m *MongoDB) PatchPage(ctx context.Context, id string, doc models.Document) error {
	set := pageUpdate(doc)

	res, err := m.Pages.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "Failed to update page", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrPageNotFound, "Page not found", nil)
	}
	return nil
}

// GetPage retrieves a page by its key.
func (m *MongoDB) GetPage(ctx context.Context, id string) (models.Document, error) {
	var doc models.Document
	err := m.Pages.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrPageNotFound, "Page not found", err)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to get page", err)
	}
	return doc, nil
}

// pageUpdate strips the immutable key and stamps lastUpdated.
func pageUpdate(doc models.Document) models.Document {
	set := make(models.Document, len(doc)+1)
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	set["lastUpdated"] = time.Now().UTC()
	return set
}
