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

// SessionRepository implements domain.SessionStore on a MongoDB collection.
// Expiry is double-tracked: queries filter on expires_at, and a TTL index lets
// the server purge stale documents at the same horizon.
type SessionRepository struct {
	coll *mongo.Collection
}

// NewSessionRepository creates the repository and ensures the TTL index.
func NewSessionRepository(ctx context.Context, db *mongo.Database) (*SessionRepository, error) {
	coll := db.Collection(SessionsCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0), // TTL index for automatic cleanup
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session TTL index: %w", err)
	}

	return &SessionRepository{coll: coll}, nil
}

// Save implements domain.SessionStore.Save. The ttl parameter is carried by
// the document's expires_at field, which the TTL index enforces server-side.
func (r *SessionRepository) Save(ctx context.Context, session *domain.AuthSession, _ time.Duration) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": session.Code},
		session,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get implements domain.SessionStore.Get.
func (r *SessionRepository) Get(ctx context.Context, code string) (*domain.AuthSession, error) {
	var session domain.AuthSession
	err := r.coll.FindOne(ctx, bson.M{
		"_id": code, "expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Take implements domain.SessionStore.Take with FindOneAndDelete, so the claim
// is a single server-side operation and a second Take fails as not found.
func (r *SessionRepository) Take(ctx context.Context, code string) (*domain.AuthSession, error) {
	var session domain.AuthSession
	err := r.coll.FindOneAndDelete(ctx, bson.M{
		"_id": code, "expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete implements domain.SessionStore.Delete.
func (r *SessionRepository) Delete(ctx context.Context, code string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": code})
	return err
}
