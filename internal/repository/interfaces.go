package repository

import (
	"context"

	"github.com/iliyamo/tuiter/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, uid string) (*model.User, error)
	Update(ctx context.Context, uid string, patch *model.UserPatch) (*model.MutationStatus, error)
	Delete(ctx context.Context, uid string) (*model.DeletionStatus, error)
}

type TuitRepository interface {
	Create(ctx context.Context, tuit *model.Tuit) (*model.Tuit, error)
	FindAll(ctx context.Context) ([]model.Tuit, error)
	FindByID(ctx context.Context, tid string) (*model.Tuit, error)
	FindByUser(ctx context.Context, uid string) ([]model.Tuit, error)
	Update(ctx context.Context, tid string, patch *model.TuitPatch) (*model.MutationStatus, error)
	Delete(ctx context.Context, tid string) (*model.DeletionStatus, error)
}

type FollowRepository interface {
	Create(ctx context.Context, follow *model.Follow) (*model.Follow, error)
	FindAllFollowing(ctx context.Context, uid string) ([]model.Follow, error)
	FindAllFollowed(ctx context.Context, uid string) ([]model.Follow, error)
	Update(ctx context.Context, fid string, patch *model.FollowPatch) (*model.MutationStatus, error)
	Delete(ctx context.Context, fid string) (*model.DeletionStatus, error)
	DeleteAllFollowers(ctx context.Context, uid string) (*model.DeletionStatus, error)
}

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error)
	FindTuitsByUser(ctx context.Context, uid string) ([]model.Bookmark, error)
	Update(ctx context.Context, bid string, patch *model.BookmarkPatch) (*model.MutationStatus, error)
	Delete(ctx context.Context, bid string) (*model.DeletionStatus, error)
	DeleteAllByUser(ctx context.Context, uid string) (*model.DeletionStatus, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) (*model.Message, error)
	FindSentByUser(ctx context.Context, uid string) ([]model.Message, error)
	FindReceivedByUser(ctx context.Context, uid string) ([]model.Message, error)
	FindBetweenUsers(ctx context.Context, uid1, uid2 string) ([]model.Message, error)
	Update(ctx context.Context, mid string, patch *model.MessagePatch) (*model.MutationStatus, error)
	Delete(ctx context.Context, mid string) (*model.DeletionStatus, error)
}

var (
	_ UserRepository     = (*UserRepo)(nil)
	_ TuitRepository     = (*TuitRepo)(nil)
	_ FollowRepository   = (*FollowRepo)(nil)
	_ BookmarkRepository = (*BookmarkRepo)(nil)
	_ MessageRepository  = (*MessageRepo)(nil)
)
