package mongostore

import (
	"context"

	"classmanager/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type studentRepository struct {
	coll *mongo.Collection
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return insert(ctx, r.coll, student)
}

func (r *studentRepository) FindByID(ctx context.Context, id string) (*entity.Student, error) {
	return findOne[entity.Student](ctx, r.coll, bson.M{"_id": id})
}

func (r *studentRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Student, error) {
	return listByOwner[entity.Student](ctx, r.coll, ownerID)
}

func (r *studentRepository) FindIDs(ctx context.Context, ids []string, ownerID string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	if ownerID != "" {
		filter["linked_to"] = ownerID
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	found := make([]string, 0, len(rows))
	for _, row := range rows {
		found = append(found, row.ID)
	}
	return found, nil
}

func (r *studentRepository) Exists(ctx context.Context, field string, value string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, field, value, excludeID)
}

func (r *studentRepository) Registrations(ctx context.Context) ([]string, error) {
	return registrations(ctx, r.coll)
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	return replaceByID(ctx, r.coll, student.ID, student)
}

func (r *studentRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.coll, id)
}
