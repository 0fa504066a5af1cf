package mongostore

import (
	"context"
	"time"

	"classmanager/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type verificationTokenRepository struct {
	coll *mongo.Collection
}

func (r *verificationTokenRepository) Upsert(ctx context.Context, t *entity.VerificationToken) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"email": t.Email},
		bson.M{
			"$set":         bson.M{"code": t.Code, "created_at": t.CreatedAt},
			"$setOnInsert": bson.M{"_id": t.ID},
		},
		options.Update().SetUpsert(true),
	)
	return translateError(err)
}

func (r *verificationTokenRepository) FindByEmailAndCode(ctx context.Context, email string, code string) (*entity.VerificationToken, error) {
	return findOne[entity.VerificationToken](ctx, r.coll, bson.M{"email": email, "code": code})
}

func (r *verificationTokenRepository) DeleteExpired(ctx context.Context, createdBefore time.Time) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lte": createdBefore}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
