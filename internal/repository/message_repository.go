package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/tuiter/internal/database"
	"github.com/iliyamo/tuiter/internal/model"
)

var (
	// sender and recipient expanded to full user documents
	fullTo   = Populate{Field: "to", From: database.Users}
	fullFrom = Populate{Field: "from", From: database.Users}

	// sender and recipient expanded to a public profile
	profileTo   = Populate{Field: "to", From: database.Users, Select: []string{"username", "firstName", "lastName"}}
	profileFrom = Populate{Field: "from", From: database.Users, Select: []string{"username", "firstName", "lastName"}}
)

// MessageRepo encapsulates all queries on the messages collection.
type MessageRepo struct {
	coll *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) *MessageRepo {
	return &MessageRepo{coll: db.Collection(database.Messages)}
}

func (r *MessageRepo) Create(ctx context.Context, m *model.Message) (*model.Message, error) {
	m.ApplyDefaults(now())
	id, err := insertOne(ctx, r.coll, m)
	if err != nil {
		return nil, errors.Wrap(err, "messages: create")
	}
	m.ID = id
	return m, nil
}

// FindSentByUser returns the messages uid sent.
func (r *MessageRepo) FindSentByUser(ctx context.Context, uid string) ([]model.Message, error) {
	filter, err := byRef("from", uid)
	if err != nil {
		return nil, err
	}
	out, err := findMany[model.Message](ctx, r.coll, filter, fullTo, fullFrom)
	return out, errors.Wrap(err, "messages: find sent")
}

// FindReceivedByUser returns the messages addressed to uid.
func (r *MessageRepo) FindReceivedByUser(ctx context.Context, uid string) ([]model.Message, error) {
	filter, err := byRef("to", uid)
	if err != nil {
		return nil, err
	}
	out, err := findMany[model.Message](ctx, r.coll, filter, fullTo, fullFrom)
	return out, errors.Wrap(err, "messages: find received")
}

// FindBetweenUsers returns the conversation between uid1 and uid2 in both
// directions.  Messages involving any third user are excluded.
func (r *MessageRepo) FindBetweenUsers(ctx context.Context, uid1, uid2 string) ([]model.Message, error) {
	a, err := objectID(uid1)
	if err != nil {
		return nil, err
	}
	b, err := objectID(uid2)
	if err != nil {
		return nil, err
	}
	out, err := findMany[model.Message](ctx, r.coll, conversation(a, b), profileTo, profileFrom)
	return out, errors.Wrap(err, "messages: find between users")
}

func conversation(a, b primitive.ObjectID) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "from", Value: a}, {Key: "to", Value: b}},
		bson.D{{Key: "from", Value: b}, {Key: "to", Value: a}},
	}}}
}

func (r *MessageRepo) Update(ctx context.Context, mid string, patch *model.MessagePatch) (*model.MutationStatus, error) {
	st, err := updateByID(ctx, r.coll, mid, patch)
	return st, errors.Wrap(err, "messages: update")
}

func (r *MessageRepo) Delete(ctx context.Context, mid string) (*model.DeletionStatus, error) {
	st, err := deleteByID(ctx, r.coll, mid)
	return st, errors.Wrap(err, "messages: delete")
}
