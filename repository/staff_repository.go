package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staff-administration/config"
	"staff-administration/models"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *models.StaffMember) (*mongo.InsertOneResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.StaffMember, error)
	FindByStaffID(ctx context.Context, staffID string) (*models.StaffMember, error)
	Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	FindAll(ctx context.Context, filter models.StaffFilter, page, limit int64) ([]models.StaffMember, int64, error)
	FindByStaffIDs(ctx context.Context, staffIDs []string) ([]models.StaffMember, error)
	FindActive(ctx context.Context, department models.Department) ([]models.StaffMember, error)
	CountActive(ctx context.Context) (int64, error)
}

type staffRepository struct {
	collection *mongo.Collection
}

func NewStaffRepository() StaffRepository {
	return &staffRepository{
		collection: config.GetCollection(config.StaffCollection),
	}
}

func (r *staffRepository) Create(ctx context.Context, staff *models.StaffMember) (*mongo.InsertOneResult, error) {
	if staff.ID.IsZero() {
		staff.ID = primitive.NewObjectID()
	}
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, staff)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("staff id %s already exists", staff.StaffID)
		}
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return result, nil
}

func (r *staffRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StaffMember, error) {
	var staff models.StaffMember
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find staff member by ID: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) FindByStaffID(ctx context.Context, staffID string) (*models.StaffMember, error) {
	var staff models.StaffMember
	err := r.collection.FindOne(ctx, bson.M{"staff_id": staffID}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find staff member by staff id: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateData})
	if err != nil {
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	return result, nil
}

func (r *staffRepository) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete staff member: %w", err)
	}
	return result, nil
}

// FindAll lists staff matching the composed filter. The free-text term is a
// case-insensitive substring match over name, staff id, role and email; the
// exact-match fields are ANDed with it.
func (r *staffRepository) FindAll(ctx context.Context, filter models.StaffFilter, page, limit int64) ([]models.StaffMember, int64, error) {
	query := bson.M{}

	if filter.Q != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Q), Options: "i"}
		query["$or"] = []bson.M{
			{"name": pattern},
			{"staff_id": pattern},
			{"role": pattern},
			{"email": pattern},
		}
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.EmploymentType != "" {
		query["employment_type"] = filter.EmploymentType
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	// limit <= 0 disables pagination; stats reads the full directory.
	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetSkip((page - 1) * limit)
		findOptions.SetLimit(limit)
	}
	findOptions.SetSort(bson.D{{Key: "staff_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.StaffMember
	if err = cursor.All(ctx, &staff); err != nil {
		return nil, 0, fmt.Errorf("failed to decode staff: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count staff: %w", err)
	}

	return staff, total, nil
}

func (r *staffRepository) FindByStaffIDs(ctx context.Context, staffIDs []string) ([]models.StaffMember, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"staff_id": bson.M{"$in": staffIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find staff by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.StaffMember
	if err = cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	return staff, nil
}

// FindActive returns the Active staff set, optionally narrowed to one
// department. Callers iterating the result operate on a snapshot taken
// here; staff created afterwards are not included.
func (r *staffRepository) FindActive(ctx context.Context, department models.Department) ([]models.StaffMember, error) {
	query := bson.M{"status": models.StaffActive}
	if department != "" {
		query["department"] = department
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find active staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.StaffMember
	if err = cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode active staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": models.StaffActive})
	if err != nil {
		return 0, fmt.Errorf("failed to count active staff: %w", err)
	}
	return count, nil
}
