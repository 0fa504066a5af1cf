package mongostore

import (
	"context"

	"classmanager/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type instructorRepository struct {
	coll *mongo.Collection
}

func (r *instructorRepository) Create(ctx context.Context, instructor *entity.Instructor) error {
	return insert(ctx, r.coll, instructor)
}

func (r *instructorRepository) FindByID(ctx context.Context, id string) (*entity.Instructor, error) {
	return findOne[entity.Instructor](ctx, r.coll, bson.M{"_id": id})
}

func (r *instructorRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Instructor, error) {
	return listByOwner[entity.Instructor](ctx, r.coll, ownerID)
}

func (r *instructorRepository) Exists(ctx context.Context, field string, value string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, field, value, excludeID)
}

func (r *instructorRepository) Registrations(ctx context.Context) ([]string, error) {
	return registrations(ctx, r.coll)
}

func (r *instructorRepository) Update(ctx context.Context, instructor *entity.Instructor) error {
	return replaceByID(ctx, r.coll, instructor.ID, instructor)
}

func (r *instructorRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.coll, id)
}
