package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"staff-administration/config"
	"staff-administration/models"
)

type WorkScheduleRepository interface {
	Create(ctx context.Context, schedule *models.WorkSchedule) (*models.WorkSchedule, error)
	FindAll(ctx context.Context) ([]models.WorkSchedule, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, payload *models.WorkScheduleUpdatePayload) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type workScheduleRepository struct {
	collection *mongo.Collection
}

func NewWorkScheduleRepository() WorkScheduleRepository {
	return &workScheduleRepository{
		collection: config.GetCollection(config.WorkScheduleCollection),
	}
}

func (r *workScheduleRepository) Create(ctx context.Context, schedule *models.WorkSchedule) (*models.WorkSchedule, error) {
	schedule.ID = primitive.NewObjectID()
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to create work schedule: %w", err)
	}
	return schedule, nil
}

func (r *workScheduleRepository) FindAll(ctx context.Context) ([]models.WorkSchedule, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find work schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []models.WorkSchedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("failed to decode work schedules: %w", err)
	}
	return schedules, nil
}

func (r *workScheduleRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, payload *models.WorkScheduleUpdatePayload) error {
	update := bson.M{
		"$set": bson.M{
			"date":            payload.Date,
			"start_time":      payload.StartTime,
			"end_time":        payload.EndTime,
			"note":            payload.Note,
			"recurrence_rule": payload.RecurrenceRule,
			"updated_at":      time.Now(),
		},
	}

	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update work schedule: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("work schedule not found")
	}
	return nil
}

func (r *workScheduleRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete work schedule: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("work schedule not found")
	}
	return nil
}
