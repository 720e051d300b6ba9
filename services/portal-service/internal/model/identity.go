package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IdentityProvider names where a principal's credential comes from.
type IdentityProvider string

const (
	ProviderPassword IdentityProvider = "password"
	ProviderGoogle   IdentityProvider = "google"
	ProviderFacebook IdentityProvider = "facebook"
)

// Identity maps a credential at one provider to an account UID.
// Password identities use the lower-cased email as ProviderID.
type Identity struct {
	ID          bson.ObjectID    `bson:"_id,omitempty"`
	UserID      string           `bson:"user_id"`
	ProviderID  string           `bson:"provider_id"`
	Provider    IdentityProvider `bson:"provider"`
	Email       string           `bson:"email"`
	LastLoginAt time.Time        `bson:"last_login_at"`
	CreatedAt   time.Time        `bson:"created_at"`
	UpdatedAt   time.Time        `bson:"updated_at"`
}
