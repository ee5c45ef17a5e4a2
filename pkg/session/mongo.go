package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/generator"
)

// MongoStore keeps sessions in a capped-by-TTL collection, the layout the
// production deployment used before Redis. Mongo reaps expired documents
// lazily (the TTL monitor runs about once a minute), so Get checks
// expires_at itself.
type MongoStore struct {
	collection *mongo.Collection
	ttl        time.Duration
}

func NewMongoStore(ctx context.Context, db *mongo.Database, ttl time.Duration) (*MongoStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	coll := db.Collection("sessions")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, fmt.Errorf("create session ttl index: %w", err)
	}

	return &MongoStore{collection: coll, ttl: ttl}, nil
}

func (s *MongoStore) Create(ctx context.Context, accountID string) (*Session, error) {
	id, err := generator.NewToken(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("session id gen: %w", err)
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:        id,
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if _, err := s.collection.InsertOne(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return sess, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !time.Now().Before(sess.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
