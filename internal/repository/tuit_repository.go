package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/tuiter/internal/database"
	"github.com/iliyamo/tuiter/internal/model"
)

// postedByProfile expands the author of a tuit to a public profile.
var postedByProfile = Populate{
	Field:  "postedBy",
	From:   database.Users,
	Select: []string{"username", "firstName", "lastName"},
}

// TuitRepo encapsulates all queries on the tuits collection.
type TuitRepo struct {
	coll *mongo.Collection
}

func NewTuitRepo(db *mongo.Database) *TuitRepo {
	return &TuitRepo{coll: db.Collection(database.Tuits)}
}

// Create inserts a tuit.  The author is stored as a bare id and is not
// checked for existence.
func (r *TuitRepo) Create(ctx context.Context, t *model.Tuit) (*model.Tuit, error) {
	t.ApplyDefaults(now())
	id, err := insertOne(ctx, r.coll, t)
	if err != nil {
		return nil, errors.Wrap(err, "tuits: create")
	}
	t.ID = id
	return t, nil
}

// FindAll returns every tuit with postedBy left as an id.
func (r *TuitRepo) FindAll(ctx context.Context) ([]model.Tuit, error) {
	tuits, err := findMany[model.Tuit](ctx, r.coll, bson.D{})
	return tuits, errors.Wrap(err, "tuits: find all")
}

// FindByID returns the tuit with its author expanded, or nil.
func (r *TuitRepo) FindByID(ctx context.Context, tid string) (*model.Tuit, error) {
	id, err := objectID(tid)
	if err != nil {
		return nil, err
	}
	t, err := findOne[model.Tuit](ctx, r.coll, bson.D{{Key: "_id", Value: id}}, postedByProfile)
	return t, errors.Wrap(err, "tuits: find by id")
}

// FindByUser returns the tuits posted by uid with their author expanded.
func (r *TuitRepo) FindByUser(ctx context.Context, uid string) ([]model.Tuit, error) {
	filter, err := byRef("postedBy", uid)
	if err != nil {
		return nil, err
	}
	tuits, err := findMany[model.Tuit](ctx, r.coll, filter, postedByProfile)
	return tuits, errors.Wrap(err, "tuits: find by user")
}

func (r *TuitRepo) Update(ctx context.Context, tid string, patch *model.TuitPatch) (*model.MutationStatus, error) {
	st, err := updateByID(ctx, r.coll, tid, patch)
	return st, errors.Wrap(err, "tuits: update")
}

// Delete removes the tuit only; bookmarks of it are kept.
func (r *TuitRepo) Delete(ctx context.Context, tid string) (*model.DeletionStatus, error) {
	st, err := deleteByID(ctx, r.coll, tid)
	return st, errors.Wrap(err, "tuits: delete")
}
