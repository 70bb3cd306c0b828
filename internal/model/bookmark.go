package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Bookmark records that a user saved a tuit.
type Bookmark struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	BookmarkedBy   Ref[User]          `json:"bookmarkedBy" bson:"bookmarkedBy,omitempty"`
	BookmarkedTuit Ref[Tuit]          `json:"bookmarkedTuit" bson:"bookmarkedTuit,omitempty"`
}

type BookmarkPatch struct {
	BookmarkedBy   *primitive.ObjectID `json:"bookmarkedBy" bson:"bookmarkedBy,omitempty"`
	BookmarkedTuit *primitive.ObjectID `json:"bookmarkedTuit" bson:"bookmarkedTuit,omitempty"`
}
