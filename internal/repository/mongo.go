package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/tuiter/internal/model"
)

// Populate asks a read to replace a stored reference with the document it
// points to.  It is the explicit form of a join: nothing is expanded unless
// the repository method passes a Populate for the field.
type Populate struct {
	Field  string   // reference field on the queried document
	From   string   // collection holding the referenced documents
	Select []string // fields kept on the referenced document; empty keeps all
}

// stages renders the populate as $lookup + $unwind.  Documents whose
// reference is dangling are kept, with the field removed.
func (p Populate) stages() mongo.Pipeline {
	inner := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
			{Key: "$eq", Value: bson.A{"$_id", "$$ref"}},
		}}}}},
	}
	if len(p.Select) > 0 {
		proj := make(bson.D, 0, len(p.Select))
		for _, f := range p.Select {
			proj = append(proj, bson.E{Key: f, Value: 1})
		}
		inner = append(inner, bson.D{{Key: "$project", Value: proj}})
	}
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: p.From},
			{Key: "let", Value: bson.D{{Key: "ref", Value: "$" + p.Field}}},
			{Key: "pipeline", Value: inner},
			{Key: "as", Value: p.Field},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + p.Field},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// pipeline builds the aggregation for a filtered, populated read.
func pipeline(filter bson.D, pops []Populate) mongo.Pipeline {
	out := mongo.Pipeline{{{Key: "$match", Value: filter}}}
	for _, p := range pops {
		out = append(out, p.stages()...)
	}
	return out
}

// objectID parses a hex identifier coming from a path parameter.
func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(ErrInvalidID, "%q", hex)
	}
	return id, nil
}

// findMany runs a filtered read.  Plain Find is used when nothing is
// populated.  The result is never nil.
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, pops ...Populate) ([]T, error) {
	var (
		cur *mongo.Cursor
		err error
	)
	if len(pops) == 0 {
		cur, err = coll.Find(ctx, filter)
	} else {
		cur, err = coll.Aggregate(ctx, pipeline(filter, pops))
	}
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// findOne returns the first match or nil when there is none.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, pops ...Populate) (*T, error) {
	if len(pops) > 0 {
		items, err := findMany[T](ctx, coll, filter, pops...)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, nil
		}
		return &items[0], nil
	}
	v := new(T)
	if err := coll.FindOne(ctx, filter).Decode(v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// insertOne stores doc and returns the id the server assigned.
func insertOne(ctx context.Context, coll *mongo.Collection, doc any) (primitive.ObjectID, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// updateByID applies patch with $set to the single document with the given
// id.  A missing id matches nothing; it is never upserted.
func updateByID(ctx context.Context, coll *mongo.Collection, hex string, patch any) (*model.MutationStatus, error) {
	id, err := objectID(hex)
	if err != nil {
		return nil, err
	}
	res, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: patch}})
	if err != nil {
		return nil, err
	}
	return &model.MutationStatus{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, hex string) (*model.DeletionStatus, error) {
	id, err := objectID(hex)
	if err != nil {
		return nil, err
	}
	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, err
	}
	return &model.DeletionStatus{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func deleteWhere(ctx context.Context, coll *mongo.Collection, filter bson.D) (*model.DeletionStatus, error) {
	res, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.DeletionStatus{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// byRef filters on a reference field holding the given user or tuit id.
func byRef(field, hex string) (bson.D, error) {
	id, err := objectID(hex)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: field, Value: id}}, nil
}

// now is the clock used for schema defaults.  BSON dates keep milliseconds.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
