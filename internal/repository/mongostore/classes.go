package mongostore

import (
	"context"
	"time"

	"classmanager/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type classRepository struct {
	coll *mongo.Collection
}

func (r *classRepository) Create(ctx context.Context, class *entity.Class) error {
	return insert(ctx, r.coll, class)
}

func (r *classRepository) FindByID(ctx context.Context, id string) (*entity.Class, error) {
	return findOne[entity.Class](ctx, r.coll, bson.M{"_id": id})
}

func (r *classRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Class, error) {
	return listByOwner[entity.Class](ctx, r.coll, ownerID)
}

func (r *classRepository) Exists(ctx context.Context, field string, value string, excludeID string) (bool, error) {
	return exists(ctx, r.coll, field, value, excludeID)
}

func (r *classRepository) Update(ctx context.Context, class *entity.Class) error {
	return replaceByID(ctx, r.coll, class.ID, class)
}

func (r *classRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.coll, id)
}

func (r *classRepository) RemoveStudent(ctx context.Context, studentID string, at time.Time) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"students": studentID},
		bson.M{
			"$pull": bson.M{"students": studentID},
			"$set":  bson.M{"updated_at": at},
		},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *classRepository) UnassignInstructor(ctx context.Context, instructorID string, at time.Time) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"instructor_id": instructorID},
		bson.M{"$set": bson.M{"instructor_id": nil, "updated_at": at}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
