package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/tuiter/internal/database"
	"github.com/iliyamo/tuiter/internal/model"
)

// bookmarkedTuit expands a bookmark to the full tuit it saves.
var bookmarkedTuit = Populate{Field: "bookmarkedTuit", From: database.Tuits}

// BookmarkRepo encapsulates all queries on the bookmarks collection.
type BookmarkRepo struct {
	coll *mongo.Collection
}

func NewBookmarkRepo(db *mongo.Database) *BookmarkRepo {
	return &BookmarkRepo{coll: db.Collection(database.Bookmarks)}
}

func (r *BookmarkRepo) Create(ctx context.Context, b *model.Bookmark) (*model.Bookmark, error) {
	id, err := insertOne(ctx, r.coll, b)
	if err != nil {
		return nil, errors.Wrap(err, "bookmarks: create")
	}
	b.ID = id
	return b, nil
}

// FindTuitsByUser returns the bookmarks of uid with bookmarkedTuit expanded
// to the whole tuit.  A bookmark whose tuit was deleted comes back with a
// null bookmarkedTuit.
func (r *BookmarkRepo) FindTuitsByUser(ctx context.Context, uid string) ([]model.Bookmark, error) {
	filter, err := byRef("bookmarkedBy", uid)
	if err != nil {
		return nil, err
	}
	out, err := findMany[model.Bookmark](ctx, r.coll, filter, bookmarkedTuit)
	return out, errors.Wrap(err, "bookmarks: find by user")
}

func (r *BookmarkRepo) Update(ctx context.Context, bid string, patch *model.BookmarkPatch) (*model.MutationStatus, error) {
	st, err := updateByID(ctx, r.coll, bid, patch)
	return st, errors.Wrap(err, "bookmarks: update")
}

// Delete removes one bookmark (unbookmark).
func (r *BookmarkRepo) Delete(ctx context.Context, bid string) (*model.DeletionStatus, error) {
	st, err := deleteByID(ctx, r.coll, bid)
	return st, errors.Wrap(err, "bookmarks: delete")
}

// DeleteAllByUser removes every bookmark made by uid.
func (r *BookmarkRepo) DeleteAllByUser(ctx context.Context, uid string) (*model.DeletionStatus, error) {
	filter, err := byRef("bookmarkedBy", uid)
	if err != nil {
		return nil, err
	}
	st, err := deleteWhere(ctx, r.coll, filter)
	return st, errors.Wrap(err, "bookmarks: delete by user")
}
