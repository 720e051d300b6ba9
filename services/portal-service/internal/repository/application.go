package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
)

// ApplicationRepository stores the append-only applications of every profile.
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, application *model.Application) (*model.Application, error)
	ListApplicationsByUser(ctx context.Context, uid string) ([]*model.Application, error)
	ListRecentApplications(ctx context.Context, limit int64) ([]*model.Application, error)
}

const applicationCollection = "applications"

type applicationMongoRepository struct {
	db *mongo.Database
}

func NewApplicationMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) ApplicationRepository {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userProfileId", Value: 1}, {Key: "applicationDate", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "applicationDate", Value: -1}},
		},
	}

	if _, err := db.Collection(applicationCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create application indexes")
	}

	return &applicationMongoRepository{db: db}
}

func (r *applicationMongoRepository) CreateApplication(
	ctx context.Context,
	application *model.Application,
) (*model.Application, error) {
	result, err := r.db.Collection(applicationCollection).InsertOne(ctx, application)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		application.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return application, nil
}

func (r *applicationMongoRepository) ListApplicationsByUser(
	ctx context.Context,
	uid string,
) ([]*model.Application, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "applicationDate", Value: -1}})

	return r.find(ctx, bson.M{"userProfileId": uid}, findOptions)
}

func (r *applicationMongoRepository) ListRecentApplications(
	ctx context.Context,
	limit int64,
) ([]*model.Application, error) {
	if limit <= 0 {
		limit = 50
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "applicationDate", Value: -1}}).
		SetLimit(limit)

	return r.find(ctx, bson.M{}, findOptions)
}

func (r *applicationMongoRepository) find(
	ctx context.Context,
	filter bson.M,
	findOptions *options.FindOptionsBuilder,
) ([]*model.Application, error) {
	cursor, err := r.db.Collection(applicationCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	applications := []*model.Application{}
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, err
	}

	return applications, nil
}
