package mongostore

import (
	"context"

	"classmanager/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	coll *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return insert(ctx, r.coll, user)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.coll, bson.M{"_id": id})
}

func (r *userRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.coll, bson.M{"$or": bson.A{
		bson.M{"user_name": login},
		bson.M{"email": login},
	}})
}

func (r *userRepository) Exists(ctx context.Context, field string, value string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, field, value, excludeID)
}

func (r *userRepository) Registrations(ctx context.Context) ([]string, error) {
	return registrations(ctx, r.coll)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return replaceByID(ctx, r.coll, user.ID, user)
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.coll, id)
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	return findMany[entity.User](ctx, r.coll, bson.M{}, opts)
}
