// Package mongo provides the MongoDB client and connectivity watching.
package mongo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultURI = "mongodb://127.0.0.1:27017"

// NewClient connects to MongoDB using the MONGODB_URI environment
// variable and verifies the connection with a ping.
func NewClient(ctx context.Context) (*mongo.Client, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = defaultURI
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		slog.Error("MongoDB connection failed", "uri", uri, "error", err)
		_ = client.Disconnect(ctx)
		return nil, err
	}

	slog.Info("MongoDB connection successful", "uri", uri)
	return client, nil
}

// DatabaseName returns the database to use, defaulting to the name the
// application has always used.
func DatabaseName() string {
	if name := os.Getenv("MONGODB_DATABASE"); name != "" {
		return name
	}
	return "student-management"
}

// AvailabilitySink receives connectivity-change events.
// adapters.Failover satisfies this.
type AvailabilitySink interface {
	SetAvailable(ok bool)
}

// WatchAvailability pings the server on an interval and pushes the
// result into the sink. It blocks until ctx is cancelled, so run it in
// its own goroutine. Transitions are logged once, not every tick.
func WatchAvailability(ctx context.Context, client *mongo.Client, sink AvailabilitySink, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := client.Ping(pingCtx, nil)
			cancel()

			ok := err == nil
			sink.SetAvailable(ok)
			if ok != last {
				if ok {
					slog.Info("MongoDB connection restored, switching back to database backend")
				} else {
					slog.Warn("MongoDB unreachable, switching to in-memory backend", "error", err)
				}
				last = ok
			}
		}
	}
}
