package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
)

// AccountRepository defines the interface for account-related database operations.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error)
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdateAccount(ctx context.Context, id string, params UpdateAccountParams) (*model.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// UpdateAccountParams defines the optional parameters for updating an account.
// Only the fields that are not nil will be updated.
type UpdateAccountParams struct {
	DisplayName *string
	PhotoURL    *string
}

const accountCollection = "accounts"

type accountMongoRepository struct {
	db *mongo.Database
}

func NewAccountMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) AccountRepository {
	collection := db.Collection(accountCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create account indexes")
	}

	return &accountMongoRepository{db: db}
}

func (r *accountMongoRepository) CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	if account.ID == "" {
		return nil, errors.New("account id is required")
	}

	now := time.Now()
	account.Email = strings.ToLower(account.Email)
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.db.Collection(accountCollection).InsertOne(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *accountMongoRepository) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	if err := r.db.Collection(accountCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountMongoRepository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	filter := bson.M{"email": strings.ToLower(email)}

	var account model.Account
	if err := r.db.Collection(accountCollection).FindOne(ctx, filter).Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountMongoRepository) UpdateAccount(
	ctx context.Context,
	id string,
	params UpdateAccountParams,
) (*model.Account, error) {
	updateMap := bson.M{}
	if params.DisplayName != nil {
		updateMap["display_name"] = *params.DisplayName
	}
	if params.PhotoURL != nil {
		updateMap["photo_url"] = *params.PhotoURL
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no account fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(accountCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.Account
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountMongoRepository) DeleteAccount(ctx context.Context, id string) error {
	_, err := r.db.Collection(accountCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
