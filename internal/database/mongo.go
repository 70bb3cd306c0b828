package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names, one per entity.
const (
	Users     = "users"
	Tuits     = "tuits"
	Follows   = "follows"
	Bookmarks = "bookmarks"
	Messages  = "messages"
)

// Open connects to MongoDB and verifies the connection.  The returned client
// is shared by every repository for the life of the process; callers
// disconnect it on shutdown.
func Open(uri, name string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("tuiter").
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "mongo connect")
	}
	// Ping with timeout
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errors.Wrap(err, "mongo ping")
	}
	return client, client.Database(name), nil
}

// referenceIndexes lists the reference fields the repositories filter on.
// None of them is unique: duplicate follows and bookmarks are allowed.
var referenceIndexes = map[string][]string{
	Tuits:     {"postedBy"},
	Follows:   {"userFollowing", "userFollowed"},
	Bookmarks: {"bookmarkedBy"},
	Messages:  {"from", "to"},
}

// EnsureIndexes creates the secondary indexes used by the repository
// queries.  Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, fields := range referenceIndexes {
		models := make([]mongo.IndexModel, 0, len(fields))
		for _, f := range fields {
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
		}
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes on %s", coll)
		}
	}
	return nil
}
