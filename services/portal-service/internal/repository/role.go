package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// RoleRepository reads the roles_admin marker collection. Markers are
// provisioned out of band; this service never writes them.
type RoleRepository interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
}

const adminRoleCollection = "roles_admin"

type roleMongoRepository struct {
	db *mongo.Database
}

func NewRoleMongoRepository(db *mongo.Database) RoleRepository {
	return &roleMongoRepository{db: db}
}

func (r *roleMongoRepository) IsAdmin(ctx context.Context, uid string) (bool, error) {
	count, err := r.db.Collection(adminRoleCollection).CountDocuments(
		ctx,
		bson.M{"_id": uid},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
