package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Follow is a directed edge of the social graph stored in `follows`.
// UserFollowing is the follower and UserFollowed the followee.  Duplicate
// edges and self-follows are stored as given.
type Follow struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserFollowing Ref[User]          `json:"userFollowing" bson:"userFollowing,omitempty"`
	UserFollowed  Ref[User]          `json:"userFollowed" bson:"userFollowed,omitempty"`
}

type FollowPatch struct {
	UserFollowing *primitive.ObjectID `json:"userFollowing" bson:"userFollowing,omitempty"`
	UserFollowed  *primitive.ObjectID `json:"userFollowed" bson:"userFollowed,omitempty"`
}
