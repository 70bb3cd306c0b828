package handler

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/tuiter/internal/model"
)

// The fakes record the identifiers they were called with and answer with
// whatever the test put in them.  err, when set, fails every call.

type fakeUsers struct {
	users   map[string]*model.User
	created *model.User
	lastID  string
	patch   *model.UserPatch
	err     error
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u.ID = primitive.NewObjectID()
	f.created = u
	return u, nil
}

func (f *fakeUsers) FindAll(context.Context) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) FindByID(_ context.Context, uid string) (*model.User, error) {
	f.lastID = uid
	if f.err != nil {
		return nil, f.err
	}
	return f.users[uid], nil
}

func (f *fakeUsers) Update(_ context.Context, uid string, p *model.UserPatch) (*model.MutationStatus, error) {
	f.lastID, f.patch = uid, p
	if f.err != nil {
		return nil, f.err
	}
	var n int64
	if _, ok := f.users[uid]; ok {
		n = 1
	}
	return &model.MutationStatus{Acknowledged: true, MatchedCount: n, ModifiedCount: n}, nil
}

func (f *fakeUsers) Delete(_ context.Context, uid string) (*model.DeletionStatus, error) {
	f.lastID = uid
	if f.err != nil {
		return nil, f.err
	}
	var n int64
	if _, ok := f.users[uid]; ok {
		delete(f.users, uid)
		n = 1
	}
	return &model.DeletionStatus{Acknowledged: true, DeletedCount: n}, nil
}

type fakeTuits struct {
	byID    map[string]*model.Tuit
	byUser  map[string][]model.Tuit
	created *model.Tuit
	lastID  string
	patch   *model.TuitPatch
	err     error
}

func (f *fakeTuits) Create(_ context.Context, t *model.Tuit) (*model.Tuit, error) {
	if f.err != nil {
		return nil, f.err
	}
	t.ID = primitive.NewObjectID()
	f.created = t
	return t, nil
}

func (f *fakeTuits) FindAll(context.Context) ([]model.Tuit, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Tuit, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTuits) FindByID(_ context.Context, tid string) (*model.Tuit, error) {
	f.lastID = tid
	return f.byID[tid], f.err
}

func (f *fakeTuits) FindByUser(_ context.Context, uid string) ([]model.Tuit, error) {
	f.lastID = uid
	if f.err != nil {
		return nil, f.err
	}
	if out, ok := f.byUser[uid]; ok {
		return out, nil
	}
	return []model.Tuit{}, nil
}

func (f *fakeTuits) Update(_ context.Context, tid string, p *model.TuitPatch) (*model.MutationStatus, error) {
	f.lastID, f.patch = tid, p
	if f.err != nil {
		return nil, f.err
	}
	return &model.MutationStatus{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeTuits) Delete(_ context.Context, tid string) (*model.DeletionStatus, error) {
	f.lastID = tid
	if f.err != nil {
		return nil, f.err
	}
	return &model.DeletionStatus{Acknowledged: true, DeletedCount: 1}, nil
}

type fakeFollows struct {
	lastCall string
	lastID   string
	created  *model.Follow
	patch    *model.FollowPatch
	err      error
}

func (f *fakeFollows) Create(_ context.Context, fl *model.Follow) (*model.Follow, error) {
	f.lastCall = "Create"
	if f.err != nil {
		return nil, f.err
	}
	fl.ID = primitive.NewObjectID()
	f.created = fl
	return fl, nil
}

func (f *fakeFollows) FindAllFollowing(_ context.Context, uid string) ([]model.Follow, error) {
	f.lastCall, f.lastID = "FindAllFollowing", uid
	return []model.Follow{}, f.err
}

func (f *fakeFollows) FindAllFollowed(_ context.Context, uid string) ([]model.Follow, error) {
	f.lastCall, f.lastID = "FindAllFollowed", uid
	return []model.Follow{}, f.err
}

func (f *fakeFollows) Update(_ context.Context, fid string, p *model.FollowPatch) (*model.MutationStatus, error) {
	f.lastCall, f.lastID, f.patch = "Update", fid, p
	return &model.MutationStatus{Acknowledged: true}, f.err
}

func (f *fakeFollows) Delete(_ context.Context, fid string) (*model.DeletionStatus, error) {
	f.lastCall, f.lastID = "Delete", fid
	return &model.DeletionStatus{Acknowledged: true}, f.err
}

func (f *fakeFollows) DeleteAllFollowers(_ context.Context, uid string) (*model.DeletionStatus, error) {
	f.lastCall, f.lastID = "DeleteAllFollowers", uid
	return &model.DeletionStatus{Acknowledged: true, DeletedCount: 2}, f.err
}

// fakeBookmarks keeps bookmarks in memory and expands the tuit from tuits on
// read, the way the Mongo repository does.
type fakeBookmarks struct {
	tuits map[primitive.ObjectID]model.Tuit
	items []model.Bookmark
	err   error
}

func (f *fakeBookmarks) Create(_ context.Context, b *model.Bookmark) (*model.Bookmark, error) {
	if f.err != nil {
		return nil, f.err
	}
	b.ID = primitive.NewObjectID()
	f.items = append(f.items, *b)
	return b, nil
}

func (f *fakeBookmarks) FindTuitsByUser(_ context.Context, uid string) ([]model.Bookmark, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Bookmark, 0)
	for _, b := range f.items {
		if b.BookmarkedBy.ID.Hex() != uid {
			continue
		}
		if t, ok := f.tuits[b.BookmarkedTuit.ID]; ok {
			b.BookmarkedTuit.Doc = &t
		} else {
			b.BookmarkedTuit = model.Ref[model.Tuit]{}
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookmarks) Update(_ context.Context, bid string, p *model.BookmarkPatch) (*model.MutationStatus, error) {
	for i := range f.items {
		if f.items[i].ID.Hex() == bid {
			if p.BookmarkedTuit != nil {
				f.items[i].BookmarkedTuit = model.RefTo[model.Tuit](*p.BookmarkedTuit)
			}
			return &model.MutationStatus{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, f.err
		}
	}
	return &model.MutationStatus{Acknowledged: true}, f.err
}

func (f *fakeBookmarks) Delete(_ context.Context, bid string) (*model.DeletionStatus, error) {
	return f.deleteWhere(func(b model.Bookmark) bool { return b.ID.Hex() == bid })
}

func (f *fakeBookmarks) DeleteAllByUser(_ context.Context, uid string) (*model.DeletionStatus, error) {
	return f.deleteWhere(func(b model.Bookmark) bool { return b.BookmarkedBy.ID.Hex() == uid })
}

func (f *fakeBookmarks) deleteWhere(match func(model.Bookmark) bool) (*model.DeletionStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	kept := f.items[:0]
	var n int64
	for _, b := range f.items {
		if match(b) {
			n++
			continue
		}
		kept = append(kept, b)
	}
	f.items = kept
	return &model.DeletionStatus{Acknowledged: true, DeletedCount: n}, nil
}

type fakeMessages struct {
	lastCall string
	ids      []string
	created  *model.Message
	patch    *model.MessagePatch
	err      error
}

func (f *fakeMessages) Create(_ context.Context, m *model.Message) (*model.Message, error) {
	f.lastCall = "Create"
	if f.err != nil {
		return nil, f.err
	}
	m.ID = primitive.NewObjectID()
	f.created = m
	return m, nil
}

func (f *fakeMessages) FindSentByUser(_ context.Context, uid string) ([]model.Message, error) {
	f.lastCall, f.ids = "FindSentByUser", []string{uid}
	return []model.Message{}, f.err
}

func (f *fakeMessages) FindReceivedByUser(_ context.Context, uid string) ([]model.Message, error) {
	f.lastCall, f.ids = "FindReceivedByUser", []string{uid}
	return []model.Message{}, f.err
}

func (f *fakeMessages) FindBetweenUsers(_ context.Context, uid1, uid2 string) ([]model.Message, error) {
	f.lastCall, f.ids = "FindBetweenUsers", []string{uid1, uid2}
	return []model.Message{}, f.err
}

func (f *fakeMessages) Update(_ context.Context, mid string, p *model.MessagePatch) (*model.MutationStatus, error) {
	f.lastCall, f.ids, f.patch = "Update", []string{mid}, p
	return &model.MutationStatus{Acknowledged: true}, f.err
}

func (f *fakeMessages) Delete(_ context.Context, mid string) (*model.DeletionStatus, error) {
	f.lastCall, f.ids = "Delete", []string{mid}
	return &model.DeletionStatus{Acknowledged: true}, f.err
}
