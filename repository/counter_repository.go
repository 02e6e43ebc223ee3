package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staff-administration/config"
)

// CounterRepository hands out per-department identifier sequences. The
// counter only ever increments, so a sequence number is never reused even
// after the staff member it was assigned to is deleted.
type CounterRepository interface {
	Next(ctx context.Context, department string) (int64, error)
}

type counterRepository struct {
	collection *mongo.Collection
}

func NewCounterRepository() CounterRepository {
	return &counterRepository{
		collection: config.GetCollection(config.CounterCollection),
	}
}

func (r *counterRepository) Next(ctx context.Context, department string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": department},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter for %s: %w", department, err)
	}
	return doc.Seq, nil
}
