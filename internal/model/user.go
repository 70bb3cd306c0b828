package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountType classifies a user account.
type AccountType string

const (
	AccountPersonal     AccountType = "PERSONAL"
	AccountAcademic     AccountType = "ACADEMIC"
	AccountProfessional AccountType = "PROFESSIONAL"
)

// MaritalStatus is the relationship status shown on a profile.
type MaritalStatus string

const (
	Married MaritalStatus = "MARRIED"
	Single  MaritalStatus = "SINGLE"
	Widowed MaritalStatus = "WIDOWED"
)

// Location is a point on the profile.
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// User represents a document in the `users` collection.  Username and email
// are not unique at the database level.  The password is stored and returned
// exactly as supplied.
//
// Fields:
//
//	ID            – ObjectID assigned on insert.
//	Username      – handle shown on tuits.
//	Password      – account password.
//	FirstName     – optional.
//	LastName      – optional.
//	Email         – contact address.
//	ProfilePhoto  – optional image URL.
//	HeaderImage   – optional image URL.
//	Biography     – optional free text.
//	DateOfBirth   – optional.
//	Joined        – defaults to the insert time.
//	AccountType   – defaults to PERSONAL.
//	Location      – optional.
//	MaritalStatus – defaults to SINGLE.
type User struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username      string             `json:"username,omitempty" bson:"username"`
	Password      string             `json:"password,omitempty" bson:"password"`
	FirstName     string             `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName      string             `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email         string             `json:"email,omitempty" bson:"email"`
	ProfilePhoto  string             `json:"profilePhoto,omitempty" bson:"profilePhoto,omitempty"`
	HeaderImage   string             `json:"headerImage,omitempty" bson:"headerImage,omitempty"`
	Biography     string             `json:"biography,omitempty" bson:"biography,omitempty"`
	DateOfBirth   *time.Time         `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Joined        time.Time          `json:"joined,omitzero" bson:"joined"`
	AccountType   AccountType        `json:"accountType,omitempty" bson:"accountType"`
	Location      *Location          `json:"location,omitempty" bson:"location,omitempty"`
	MaritalStatus MaritalStatus      `json:"maritalStatus,omitempty" bson:"maritalStatus"`
}

// ApplyDefaults fills the schema defaults that the client left empty.
func (u *User) ApplyDefaults(now time.Time) {
	if u.Joined.IsZero() {
		u.Joined = now
	}
	if u.AccountType == "" {
		u.AccountType = AccountPersonal
	}
	if u.MaritalStatus == "" {
		u.MaritalStatus = Single
	}
}

// UserPatch is a partial user.  Nil fields are left untouched by an update.
type UserPatch struct {
	Username      *string        `json:"username" bson:"username,omitempty"`
	Password      *string        `json:"password" bson:"password,omitempty"`
	FirstName     *string        `json:"firstName" bson:"firstName,omitempty"`
	LastName      *string        `json:"lastName" bson:"lastName,omitempty"`
	Email         *string        `json:"email" bson:"email,omitempty"`
	ProfilePhoto  *string        `json:"profilePhoto" bson:"profilePhoto,omitempty"`
	HeaderImage   *string        `json:"headerImage" bson:"headerImage,omitempty"`
	Biography     *string        `json:"biography" bson:"biography,omitempty"`
	DateOfBirth   *time.Time     `json:"dateOfBirth" bson:"dateOfBirth,omitempty"`
	Joined        *time.Time     `json:"joined" bson:"joined,omitempty"`
	AccountType   *AccountType   `json:"accountType" bson:"accountType,omitempty"`
	Location      *Location      `json:"location" bson:"location,omitempty"`
	MaritalStatus *MaritalStatus `json:"maritalStatus" bson:"maritalStatus,omitempty"`
}
