package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
)

// ProfileRepository persists users/{uid} profile documents.
type ProfileRepository interface {
	// UpsertProfile creates the profile or merges write into it. Each field
	// follows model.ProfileFieldPolicy.
	UpsertProfile(ctx context.Context, uid string, write model.ProfileWrite) error
	GetProfile(ctx context.Context, uid string) (*model.UserProfile, error)
}

const profileCollection = "users"

type profileMongoRepository struct {
	db *mongo.Database
}

func NewProfileMongoRepository(db *mongo.Database) ProfileRepository {
	return &profileMongoRepository{db: db}
}

func (r *profileMongoRepository) UpsertProfile(ctx context.Context, uid string, write model.ProfileWrite) error {
	update := buildProfileUpdate(write)
	if len(update) == 0 {
		return nil
	}

	_, err := r.db.Collection(profileCollection).UpdateOne(
		ctx,
		bson.M{"_id": uid},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *profileMongoRepository) GetProfile(ctx context.Context, uid string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.Collection(profileCollection).FindOne(ctx, bson.M{"_id": uid}).Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// buildProfileUpdate routes Overwrite fields to $set and SetOnce fields to
// $setOnInsert so the whole upsert is a single atomic document write.
func buildProfileUpdate(write model.ProfileWrite) bson.M {
	set := bson.M{}
	setOnInsert := bson.M{}

	for field, value := range write {
		switch model.ProfileFieldPolicy(field) {
		case model.SetOnce:
			setOnInsert[field] = value
		default:
			set[field] = value
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(setOnInsert) > 0 {
		update["$setOnInsert"] = setOnInsert
	}

	return update
}
