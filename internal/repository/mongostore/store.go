// Package mongostore implements the repository interfaces on MongoDB. Every
// document uses the UUID string id as _id and the snake_case field names
// shared with the SQL schema.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"classmanager/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection         = "users"
	studentsCollection      = "students"
	instructorsCollection   = "instructors"
	classesCollection       = "classes"
	verificationsCollection = "verification_tokens"
	securityLogsCollection  = "security_logs"
)

func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:         &userRepository{coll: db.Collection(usersCollection)},
		Students:      &studentRepository{coll: db.Collection(studentsCollection)},
		Instructors:   &instructorRepository{coll: db.Collection(instructorsCollection)},
		Classes:       &classRepository{coll: db.Collection(classesCollection)},
		Verifications: &verificationTokenRepository{coll: db.Collection(verificationsCollection)},
		SecurityLogs:  &securityLogRepository{coll: db.Collection(securityLogsCollection)},
	}
}

// EnsureIndexes creates the unique indexes the workflows rely on for race
// safety, plus a TTL index that purges verification tokens.
func EnsureIndexes(ctx context.Context, db *mongo.Database, tokenTTL time.Duration) error {
	uniques := map[string][]string{
		usersCollection:         {"registration", "email", "phone", "user_name"},
		studentsCollection:      {"registration", "cpf", "email", "phone"},
		instructorsCollection:   {"registration", "cpf", "email", "phone"},
		classesCollection:       {"code"},
		verificationsCollection: {"email"},
		securityLogsCollection:  nil,
	}
	for name, fields := range uniques {
		models := make([]mongo.IndexModel, 0, len(fields)+2)
		for _, field := range fields {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
		}
		switch name {
		case studentsCollection, instructorsCollection:
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: "linked_to", Value: 1}}})
		case classesCollection:
			models = append(models,
				mongo.IndexModel{Keys: bson.D{{Key: "linked_to", Value: 1}}},
				mongo.IndexModel{Keys: bson.D{{Key: "students", Value: 1}}},
				mongo.IndexModel{Keys: bson.D{{Key: "instructor_id", Value: 1}}},
			)
		case securityLogsCollection:
			models = append(models, mongo.IndexModel{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			})
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	if err := ensureTTLIndex(ctx, db.Collection(verificationsCollection), tokenTTL); err != nil {
		return fmt.Errorf("ttl index on %s: %w", verificationsCollection, err)
	}
	return nil
}

const tokenTTLIndex = "created_at_ttl"

// ensureTTLIndex creates the expiry index on created_at, or retunes it with
// collMod when the configured ttl changed since it was built.
func ensureTTLIndex(ctx context.Context, coll *mongo.Collection, ttl time.Duration) error {
	seconds := int32(ttl.Seconds())

	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return err
	}
	var indexes []bson.M
	if err := cursor.All(ctx, &indexes); err != nil {
		return err
	}
	for _, index := range indexes {
		current, hasTTL := int64Value(index["expireAfterSeconds"])
		if index["name"] != tokenTTLIndex && !(hasTTL && onCreatedAtOnly(index["key"])) {
			continue
		}
		if hasTTL && current == int64(seconds) {
			return nil
		}
		return coll.Database().RunCommand(ctx, bson.D{
			{Key: "collMod", Value: coll.Name()},
			{Key: "index", Value: bson.D{
				{Key: "name", Value: index["name"]},
				{Key: "expireAfterSeconds", Value: seconds},
			}},
		}).Err()
	}

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetName(tokenTTLIndex).SetExpireAfterSeconds(seconds),
	})
	return err
}

// onCreatedAtOnly matches an index built before the ttl index was named.
func onCreatedAtOnly(key any) bool {
	switch fields := key.(type) {
	case bson.M:
		_, ok := fields["created_at"]
		return ok && len(fields) == 1
	case bson.D:
		return len(fields) == 1 && fields[0].Key == "created_at"
	}
	return false
}

func int64Value(value any) (int64, bool) {
	switch n := value.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
	}
	return err
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var record T
	err := coll.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func listByOwner[T any](ctx context.Context, coll *mongo.Collection, ownerID string) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findMany[T](ctx, coll, bson.M{"linked_to": ownerID}, opts)
}

func exists(ctx context.Context, coll *mongo.Collection, field string, value string, excludeID string) (bool, error) {
	filter := bson.M{field: value}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func registrations(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	values, err := coll.Distinct(ctx, "registration", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func insert(ctx context.Context, coll *mongo.Collection, document any) error {
	_, err := coll.InsertOne(ctx, document)
	return translateError(err)
}

// replaceByID never upserts; a missing id yields repository.ErrNoRecord.
func replaceByID(ctx context.Context, coll *mongo.Collection, id string, document any) error {
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, document)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNoRecord
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
