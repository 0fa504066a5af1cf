package mongostore

import (
	"context"
	"encoding/json"

	"classmanager/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"
)

// securityLogDocument stores metadata as a sub-document instead of the raw
// JSON bytes the SQL schema keeps.
type securityLogDocument struct {
	entity.SecurityLog `bson:",inline"`
	Metadata           bson.M `bson:"metadata,omitempty"`
}

type securityLogRepository struct {
	coll *mongo.Collection
}

func (r *securityLogRepository) Log(ctx context.Context, log *entity.SecurityLog) error {
	document := securityLogDocument{SecurityLog: *log}
	if len(log.Metadata) > 0 {
		var metadata map[string]any
		if err := json.Unmarshal(log.Metadata, &metadata); err != nil {
			return err
		}
		document.Metadata = metadata
	}
	return insert(ctx, r.coll, document)
}

func (r *securityLogRepository) RecentForUser(ctx context.Context, userID string, limit int) ([]entity.SecurityLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	documents, err := findMany[securityLogDocument](ctx, r.coll, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}

	logs := make([]entity.SecurityLog, 0, len(documents))
	for _, document := range documents {
		log := document.SecurityLog
		if len(document.Metadata) > 0 {
			raw, err := json.Marshal(document.Metadata)
			if err != nil {
				return nil, err
			}
			log.Metadata = datatypes.JSON(raw)
		}
		logs = append(logs, log)
	}
	return logs, nil
}
