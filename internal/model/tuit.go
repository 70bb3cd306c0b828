package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tuit is a post in the `tuits` collection.  Deleting a tuit leaves any
// bookmarks pointing at it in place.
type Tuit struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Content  string             `json:"content" bson:"content"`
	PostedBy Ref[User]          `json:"postedBy" bson:"postedBy,omitempty"`
	Posted   time.Time          `json:"posted,omitzero" bson:"posted"`
}

// ApplyDefaults stamps the post time when the client did not send one.
func (t *Tuit) ApplyDefaults(now time.Time) {
	if t.Posted.IsZero() {
		t.Posted = now
	}
}

type TuitPatch struct {
	Content  *string             `json:"content" bson:"content,omitempty"`
	PostedBy *primitive.ObjectID `json:"postedBy" bson:"postedBy,omitempty"`
	Posted   *time.Time          `json:"posted" bson:"posted,omitempty"`
}
