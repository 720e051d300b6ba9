package model

import (
	"time"
)

// Account is the identity provider's record of a principal. Its ID is the UID
// shared by the profile and every application the principal submits.
type Account struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	DisplayName  string    `bson:"display_name"`
	PhotoURL     string    `bson:"photo_url,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}
