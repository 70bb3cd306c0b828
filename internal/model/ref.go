package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ref is a reference from one document to another.  It is always stored as
// the bare ObjectID of the target.  When a read asks for the reference to be
// populated, the aggregation replaces the id with the target document and
// Doc carries it.
//
// JSON output is the hex id when Doc is nil, the nested document when it is
// set, and null when the reference is empty.
type Ref[T any] struct {
	ID  primitive.ObjectID
	Doc *T
}

// RefTo builds an unpopulated reference.
func RefTo[T any](id primitive.ObjectID) Ref[T] {
	return Ref[T]{ID: id}
}

// IsZero reports whether the reference points nowhere.  The bson encoder uses
// it for omitempty.
func (r Ref[T]) IsZero() bool {
	return r.ID.IsZero() && r.Doc == nil
}

// Populated reports whether the target document was loaded.
func (r Ref[T]) Populated() bool {
	return r.Doc != nil
}

func (r Ref[T]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.ID.IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(r.ID)
}

func (r *Ref[T]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		r.ID = raw.ObjectID()
		r.Doc = nil
	case bson.TypeEmbeddedDocument:
		doc := new(T)
		if err := raw.Unmarshal(doc); err != nil {
			return err
		}
		if id, ok := raw.Document().Lookup("_id").ObjectIDOK(); ok {
			r.ID = id
		}
		r.Doc = doc
	case bson.TypeNull, bson.TypeUndefined:
		*r = Ref[T]{}
	default:
		return fmt.Errorf("model: cannot decode reference from bson %s", t)
	}
	return nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID.Hex())
}

// UnmarshalJSON accepts a hex id, an object carrying an "_id" field, or null.
func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = Ref[T]{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var hex string
		if err := json.Unmarshal(b, &hex); err != nil {
			return err
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return err
		}
		*r = Ref[T]{ID: id}
		return nil
	default:
		var withID struct {
			ID primitive.ObjectID `json:"_id"`
		}
		if err := json.Unmarshal(b, &withID); err != nil {
			return err
		}
		*r = Ref[T]{ID: withID.ID}
		return nil
	}
}
