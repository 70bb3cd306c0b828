package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/tuiter/internal/database"
	"github.com/iliyamo/tuiter/internal/model"
)

// UserRepo encapsulates all queries on the users collection.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepo constructs a UserRepo on the given database handle.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(database.Users)}
}

// Create inserts a user with schema defaults applied and returns it with its
// new id.  Duplicate usernames and emails are accepted.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	u.ApplyDefaults(now())
	id, err := insertOne(ctx, r.coll, u)
	if err != nil {
		return nil, errors.Wrap(err, "users: create")
	}
	u.ID = id
	return u, nil
}

func (r *UserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	users, err := findMany[model.User](ctx, r.coll, bson.D{})
	return users, errors.Wrap(err, "users: find all")
}

// FindByID returns nil without error when the user does not exist.
func (r *UserRepo) FindByID(ctx context.Context, uid string) (*model.User, error) {
	id, err := objectID(uid)
	if err != nil {
		return nil, err
	}
	u, err := findOne[model.User](ctx, r.coll, bson.D{{Key: "_id", Value: id}})
	return u, errors.Wrap(err, "users: find by id")
}

func (r *UserRepo) Update(ctx context.Context, uid string, patch *model.UserPatch) (*model.MutationStatus, error) {
	st, err := updateByID(ctx, r.coll, uid, patch)
	return st, errors.Wrap(err, "users: update")
}

// Delete removes the user only.  Tuits, follows, bookmarks and messages that
// reference the user are left in place.
func (r *UserRepo) Delete(ctx context.Context, uid string) (*model.DeletionStatus, error) {
	st, err := deleteByID(ctx, r.coll, uid)
	return st, errors.Wrap(err, "users: delete")
}
