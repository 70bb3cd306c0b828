package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRef_JSON_UnpopulatedIsHexID(t *testing.T) {
	uid := primitive.NewObjectID()
	tuit := Tuit{ID: primitive.NewObjectID(), Content: "hi", PostedBy: RefTo[User](uid)}

	b, err := json.Marshal(tuit)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, uid.Hex(), out["postedBy"])
	assert.Equal(t, "hi", out["content"])
}

func TestRef_JSON_PopulatedIsNestedObject(t *testing.T) {
	uid := primitive.NewObjectID()
	tuit := Tuit{Content: "hi", PostedBy: Ref[User]{ID: uid, Doc: &User{ID: uid, Username: "alice", FirstName: "Alice"}}}

	b, err := json.Marshal(tuit)
	require.NoError(t, err)

	var out struct {
		PostedBy map[string]any `json:"postedBy"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, uid.Hex(), out.PostedBy["_id"])
	assert.Equal(t, "alice", out.PostedBy["username"])
	assert.Equal(t, "Alice", out.PostedBy["firstName"])
	// projected profiles do not leak zero values of unselected fields
	assert.NotContains(t, out.PostedBy, "password")
	assert.NotContains(t, out.PostedBy, "joined")
}

func TestRef_JSON_EmptyIsNull(t *testing.T) {
	b, err := json.Marshal(Bookmark{})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"bookmarkedBy":null`)
	assert.Contains(t, string(b), `"bookmarkedTuit":null`)
}

func TestRef_JSON_DecodeAcceptsHexObjectAndNull(t *testing.T) {
	uid := primitive.NewObjectID()
	tid := primitive.NewObjectID()

	var b Bookmark
	body := `{"bookmarkedBy":"` + uid.Hex() + `","bookmarkedTuit":{"_id":"` + tid.Hex() + `","content":"x"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &b))
	assert.Equal(t, uid, b.BookmarkedBy.ID)
	assert.Equal(t, tid, b.BookmarkedTuit.ID)
	assert.False(t, b.BookmarkedTuit.Populated())

	require.NoError(t, json.Unmarshal([]byte(`{"bookmarkedBy":null}`), &b))
	assert.True(t, b.BookmarkedBy.IsZero())
}

func TestRef_JSON_RejectsBadHex(t *testing.T) {
	var f Follow
	err := json.Unmarshal([]byte(`{"userFollowing":"not-an-id"}`), &f)
	assert.Error(t, err)
}

func TestRef_BSON_StoresBareObjectID(t *testing.T) {
	uid := primitive.NewObjectID()
	raw, err := bson.Marshal(Follow{UserFollowing: Ref[User]{ID: uid, Doc: &User{Username: "ignored"}}})
	require.NoError(t, err)

	v := bson.Raw(raw).Lookup("userFollowing")
	assert.Equal(t, bson.TypeObjectID, v.Type)
	assert.Equal(t, uid, v.ObjectID())

	// an empty reference is omitted
	_, err = bson.Raw(raw).LookupErr("userFollowed")
	assert.Error(t, err)
}

func TestRef_BSON_DecodesEmbeddedDocument(t *testing.T) {
	uid := primitive.NewObjectID()
	doc := bson.D{
		{Key: "content", Value: "hi"},
		{Key: "postedBy", Value: bson.D{{Key: "_id", Value: uid}, {Key: "username", Value: "alice"}}},
		{Key: "posted", Value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var tuit Tuit
	require.NoError(t, bson.Unmarshal(raw, &tuit))
	require.True(t, tuit.PostedBy.Populated())
	assert.Equal(t, uid, tuit.PostedBy.ID)
	assert.Equal(t, "alice", tuit.PostedBy.Doc.Username)
}

func TestUser_ApplyDefaults(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	u := User{Username: "alice"}
	u.ApplyDefaults(now)
	assert.Equal(t, now, u.Joined)
	assert.Equal(t, AccountPersonal, u.AccountType)
	assert.Equal(t, Single, u.MaritalStatus)

	v := User{AccountType: AccountAcademic, MaritalStatus: Married}
	v.ApplyDefaults(now)
	assert.Equal(t, AccountAcademic, v.AccountType)
	assert.Equal(t, Married, v.MaritalStatus)
}

func TestPatch_BSONOmitsUnsetFields(t *testing.T) {
	content := ""
	raw, err := bson.Marshal(TuitPatch{Content: &content})
	require.NoError(t, err)

	elems, err := bson.Raw(raw).Elements()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "content", elems[0].Key())
}
