package di

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"campus_backend/internal/feature/signup/adapters"
)

// NewSignupStore creates the failover Store for the signup feature.
// If a Mongo database is available it becomes the primary backend with
// the in-memory store as fallback, and the unique email index is ensured
// up front. Otherwise the in-memory store serves alone for the lifetime
// of the process.
func NewSignupStore(ctx context.Context, db *mongo.Database) (*adapters.Failover, error) {
	mem := adapters.NewMemoryStore()
	if db == nil {
		return adapters.NewFailover(nil, mem), nil
	}

	primary := adapters.NewMongoStore(db)
	if err := primary.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return adapters.NewFailover(primary, mem), nil
}
