package model

import (
	"time"
)

// UserProfile is the users/{uid} document the front end reads.
type UserProfile struct {
	UID         string     `bson:"_id"                   json:"uid"`
	ID          string     `bson:"id,omitempty"          json:"id,omitempty"`
	DisplayName string     `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Email       string     `bson:"email,omitempty"       json:"email,omitempty"`
	PhotoURL    string     `bson:"photoURL,omitempty"    json:"photoURL,omitempty"`
	FirstName   string     `bson:"firstName,omitempty"   json:"firstName,omitempty"`
	LastName    string     `bson:"lastName,omitempty"    json:"lastName,omitempty"`
	LastLogin   *time.Time `bson:"lastLogin,omitempty"   json:"lastLogin,omitempty"`
	SignUpDate  *time.Time `bson:"signUpDate,omitempty"  json:"signUpDate,omitempty"`
}

// Profile document fields.
const (
	ProfileFieldID          = "id"
	ProfileFieldDisplayName = "displayName"
	ProfileFieldEmail       = "email"
	ProfileFieldPhotoURL    = "photoURL"
	ProfileFieldFirstName   = "firstName"
	ProfileFieldLastName    = "lastName"
	ProfileFieldLastLogin   = "lastLogin"
	ProfileFieldSignUpDate  = "signUpDate"
)

// WritePolicy decides what an upsert does with a field that already has a value.
type WritePolicy int

const (
	// Overwrite replaces the stored value on every write (last write wins).
	Overwrite WritePolicy = iota
	// SetOnce writes the value only when the document is being created.
	SetOnce
)

var profileWritePolicies = map[string]WritePolicy{
	ProfileFieldID:          Overwrite,
	ProfileFieldDisplayName: Overwrite,
	ProfileFieldEmail:       Overwrite,
	ProfileFieldPhotoURL:    Overwrite,
	ProfileFieldFirstName:   Overwrite,
	ProfileFieldLastName:    Overwrite,
	ProfileFieldLastLogin:   Overwrite,
	ProfileFieldSignUpDate:  SetOnce,
}

// ProfileFieldPolicy returns the write policy of a profile field. Unknown
// fields are overwritten.
func ProfileFieldPolicy(field string) WritePolicy {
	return profileWritePolicies[field]
}

// ProfileWrite is the set of fields one upsert carries. Every field is routed
// through ProfileFieldPolicy by the store.
type ProfileWrite map[string]any

// NewProfileWrite builds the full write used on sign-up and federated sign-in.
func NewProfileWrite(uid, displayName, email, photoURL, firstName, lastName string, now time.Time) ProfileWrite {
	return ProfileWrite{
		ProfileFieldID:          uid,
		ProfileFieldDisplayName: displayName,
		ProfileFieldEmail:       email,
		ProfileFieldPhotoURL:    photoURL,
		ProfileFieldFirstName:   firstName,
		ProfileFieldLastName:    lastName,
		ProfileFieldLastLogin:   now,
		ProfileFieldSignUpDate:  now,
	}
}

// LastLoginWrite only refreshes lastLogin.
func LastLoginWrite(now time.Time) ProfileWrite {
	return ProfileWrite{ProfileFieldLastLogin: now}
}
