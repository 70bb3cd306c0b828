package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/tuiter/internal/database"
	"github.com/iliyamo/tuiter/internal/model"
)

// FollowRepo encapsulates all queries on the follows collection.  Each
// document is one directed edge: userFollowing follows userFollowed.
type FollowRepo struct {
	coll *mongo.Collection
}

func NewFollowRepo(db *mongo.Database) *FollowRepo {
	return &FollowRepo{coll: db.Collection(database.Follows)}
}

// Create stores a follow edge.  Duplicate edges and self-follows are stored
// as given.
func (r *FollowRepo) Create(ctx context.Context, f *model.Follow) (*model.Follow, error) {
	id, err := insertOne(ctx, r.coll, f)
	if err != nil {
		return nil, errors.Wrap(err, "follows: create")
	}
	f.ID = id
	return f, nil
}

// FindAllFollowing returns the edges where uid is the follower.
func (r *FollowRepo) FindAllFollowing(ctx context.Context, uid string) ([]model.Follow, error) {
	filter, err := byRef("userFollowing", uid)
	if err != nil {
		return nil, err
	}
	out, err := findMany[model.Follow](ctx, r.coll, filter)
	return out, errors.Wrap(err, "follows: find following")
}

// FindAllFollowed returns the edges where uid is the one being followed.
func (r *FollowRepo) FindAllFollowed(ctx context.Context, uid string) ([]model.Follow, error) {
	filter, err := byRef("userFollowed", uid)
	if err != nil {
		return nil, err
	}
	out, err := findMany[model.Follow](ctx, r.coll, filter)
	return out, errors.Wrap(err, "follows: find followed")
}

func (r *FollowRepo) Update(ctx context.Context, fid string, patch *model.FollowPatch) (*model.MutationStatus, error) {
	st, err := updateByID(ctx, r.coll, fid, patch)
	return st, errors.Wrap(err, "follows: update")
}

// Delete removes a single edge (unfollow).
func (r *FollowRepo) Delete(ctx context.Context, fid string) (*model.DeletionStatus, error) {
	st, err := deleteByID(ctx, r.coll, fid)
	return st, errors.Wrap(err, "follows: delete")
}

// DeleteAllFollowers removes every edge pointing at uid.
func (r *FollowRepo) DeleteAllFollowers(ctx context.Context, uid string) (*model.DeletionStatus, error) {
	filter, err := byRef("userFollowed", uid)
	if err != nil {
		return nil, err
	}
	st, err := deleteWhere(ctx, r.coll, filter)
	return st, errors.Wrap(err, "follows: delete followers")
}
