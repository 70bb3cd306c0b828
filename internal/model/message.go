package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message from one user to another.
type Message struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Message string             `json:"message" bson:"message"`
	From    Ref[User]          `json:"from" bson:"from,omitempty"`
	To      Ref[User]          `json:"to" bson:"to,omitempty"`
	SentOn  time.Time          `json:"sentOn,omitzero" bson:"sentOn"`
}

// ApplyDefaults stamps the send time when the client did not send one.
func (m *Message) ApplyDefaults(now time.Time) {
	if m.SentOn.IsZero() {
		m.SentOn = now
	}
}

type MessagePatch struct {
	Message *string             `json:"message" bson:"message,omitempty"`
	From    *primitive.ObjectID `json:"from" bson:"from,omitempty"`
	To      *primitive.ObjectID `json:"to" bson:"to,omitempty"`
	SentOn  *time.Time          `json:"sentOn" bson:"sentOn,omitempty"`
}
