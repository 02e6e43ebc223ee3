package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staff-administration/config"
	"staff-administration/models"
)

// ErrDuplicateRecord is returned when a payroll record for the same
// (staff, month) already exists. The batch treats it as a skip.
var ErrDuplicateRecord = errors.New("payroll record already exists for this staff and month")

type PayrollRepository interface {
	Create(ctx context.Context, record *models.PayrollRecord) (*mongo.InsertOneResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.PayrollRecord, error)
	FindByMonth(ctx context.Context, month string) ([]models.PayrollRecord, error)
	FindByStaffID(ctx context.Context, staffID string) ([]models.PayrollRecord, error)
	FindByStaffAndMonth(ctx context.Context, staffID, month string) (*models.PayrollRecord, error)
	ExistsForMonth(ctx context.Context, staffID, month string) (bool, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PayrollStatus, paidAt *time.Time) (*mongo.UpdateResult, error)
}

type payrollRepository struct {
	collection *mongo.Collection
}

func NewPayrollRepository() PayrollRepository {
	return &payrollRepository{
		collection: config.GetCollection(config.PayrollCollection),
	}
}

func (r *payrollRepository) Create(ctx context.Context, record *models.PayrollRecord) (*mongo.InsertOneResult, error) {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateRecord
		}
		return nil, fmt.Errorf("failed to create payroll record: %w", err)
	}
	return result, nil
}

func (r *payrollRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PayrollRecord, error) {
	var record models.PayrollRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payroll record by ID: %w", err)
	}
	return &record, nil
}

func (r *payrollRepository) FindByMonth(ctx context.Context, month string) ([]models.PayrollRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "staff_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"month": month}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll records by month: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.PayrollRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode payroll records: %w", err)
	}
	if len(records) == 0 {
		return []models.PayrollRecord{}, nil
	}
	return records, nil
}

func (r *payrollRepository) FindByStaffID(ctx context.Context, staffID string) ([]models.PayrollRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "month", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"staff_id": staffID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll records by staff id: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.PayrollRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode payroll records: %w", err)
	}
	if len(records) == 0 {
		return []models.PayrollRecord{}, nil
	}
	return records, nil
}

func (r *payrollRepository) FindByStaffAndMonth(ctx context.Context, staffID, month string) (*models.PayrollRecord, error) {
	var record models.PayrollRecord
	err := r.collection.FindOne(ctx, bson.M{"staff_id": staffID, "month": month}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payroll record by staff and month: %w", err)
	}
	return &record, nil
}

func (r *payrollRepository) ExistsForMonth(ctx context.Context, staffID, month string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"staff_id": staffID, "month": month})
	if err != nil {
		return false, fmt.Errorf("failed to check payroll record existence: %w", err)
	}
	return count > 0, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PayrollStatus, paidAt *time.Time) (*mongo.UpdateResult, error) {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if paidAt != nil {
		set["paid_at"] = *paidAt
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update payroll status: %w", err)
	}
	return result, nil
}
