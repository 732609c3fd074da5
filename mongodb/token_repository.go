package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/relaymesh/mcpgate/domain"
)

// TokenRepository implements domain.TokenStore on a MongoDB collection with a
// TTL index on expires_at.
type TokenRepository struct {
	coll *mongo.Collection
}

// NewTokenRepository creates the repository and ensures the TTL index.
func NewTokenRepository(ctx context.Context, db *mongo.Database) (*TokenRepository, error) {
	coll := db.Collection(TokensCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token TTL index: %w", err)
	}

	return &TokenRepository{coll: coll}, nil
}

// Save implements domain.TokenStore.Save.
func (r *TokenRepository) Save(ctx context.Context, token *domain.AccessToken, _ time.Duration) error {
	_, err := r.coll.InsertOne(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Get implements domain.TokenStore.Get. Expired-but-unpurged documents are
// filtered out, so the caller sees them as absent.
func (r *TokenRepository) Get(ctx context.Context, tokenValue string) (*domain.AccessToken, error) {
	var token domain.AccessToken
	err := r.coll.FindOne(ctx, bson.M{
		"_id": tokenValue, "expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&token)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("token not found")
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete implements domain.TokenStore.Delete.
func (r *TokenRepository) Delete(ctx context.Context, tokenValue string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": tokenValue})
	return err
}
