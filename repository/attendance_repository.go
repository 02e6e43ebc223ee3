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

type AttendanceRepository interface {
	// --- Attendance records ---
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
	FindByStaffAndDate(ctx context.Context, staffID, date string) (*models.AttendanceRecord, error)
	FindByStaffID(ctx context.Context, staffID string) ([]models.AttendanceRecord, error)
	FindByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error)
	FindByDateWithStaff(ctx context.Context, date string) ([]models.AttendanceWithStaff, error)
	UpdateCheckout(ctx context.Context, id primitive.ObjectID, checkOut string) error

	// --- Check-in QR codes ---
	CreateQRCode(ctx context.Context, qrCode *models.QRCode) error
	FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error)
	MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, staffID string) error
}

type attendanceRepository struct {
	attendanceCollection *mongo.Collection
	qrCodeCollection     *mongo.Collection
}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{
		attendanceCollection: config.GetCollection(config.AttendanceCollection),
		qrCodeCollection:     config.GetCollection(config.QRCodeCollection),
	}
}

// Upsert writes the single attendance record for (staff, date): it creates
// the record when none exists and replaces the prior entry otherwise.
func (r *attendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = time.Now()

	filter := bson.M{"staff_id": record.StaffID, "date": record.Date}
	update := bson.M{
		"$set": bson.M{
			"status":     record.Status,
			"check_in":   record.CheckIn,
			"check_out":  record.CheckOut,
			"notes":      record.Notes,
			"updated_at": record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        record.ID,
			"staff_id":   record.StaffID,
			"date":       record.Date,
			"created_at": record.CreatedAt,
		},
	}

	_, err := r.attendanceCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindByStaffAndDate(ctx context.Context, staffID, date string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.attendanceCollection.FindOne(ctx, bson.M{"staff_id": staffID, "date": date}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance by staff and date: %w", err)
	}
	return &record, nil
}

func (r *attendanceRepository) FindByStaffID(ctx context.Context, staffID string) ([]models.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.attendanceCollection.Find(ctx, bson.M{"staff_id": staffID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance history: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance history: %w", err)
	}
	if len(records) == 0 {
		return []models.AttendanceRecord{}, nil
	}
	return records, nil
}

func (r *attendanceRepository) FindByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	cursor, err := r.attendanceCollection.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance by date: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance by date: %w", err)
	}
	if len(records) == 0 {
		return []models.AttendanceRecord{}, nil
	}
	return records, nil
}

// FindByDateWithStaff joins the day's records with the staff directory.
// Records whose staff member has been deleted keep no join row and are
// dropped from this view; the bare record remains reachable per staff id.
func (r *attendanceRepository) FindByDateWithStaff(ctx context.Context, date string) ([]models.AttendanceWithStaff, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "date", Value: date}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.StaffCollection},
			{Key: "localField", Value: "staff_id"},
			{Key: "foreignField", Value: "staff_id"},
			{Key: "as", Value: "staffDetails"},
		}}},
		{{Key: "$unwind", Value: "$staffDetails"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "staff_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "status", Value: 1},
			{Key: "check_in", Value: 1},
			{Key: "check_out", Value: 1},
			{Key: "notes", Value: 1},
			{Key: "staff_name", Value: "$staffDetails.name"},
			{Key: "staff_email", Value: "$staffDetails.email"},
			{Key: "staff_role", Value: "$staffDetails.role"},
			{Key: "staff_department", Value: "$staffDetails.department"},
		}}},
	}

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed aggregation for daily attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceWithStaff
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode daily attendance: %w", err)
	}
	if len(results) == 0 {
		return []models.AttendanceWithStaff{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) UpdateCheckout(ctx context.Context, id primitive.ObjectID, checkOut string) error {
	update := bson.M{
		"$set": bson.M{
			"check_out":  checkOut,
			"updated_at": time.Now(),
		},
	}
	_, err := r.attendanceCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update attendance check-out: %w", err)
	}
	return nil
}

func (r *attendanceRepository) CreateQRCode(ctx context.Context, qrCode *models.QRCode) error {
	_, err := r.qrCodeCollection.InsertOne(ctx, qrCode)
	if err != nil {
		return fmt.Errorf("failed to create QR code: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error) {
	var qrCode models.QRCode
	err := r.qrCodeCollection.FindOne(ctx, bson.M{"code": code}).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find QR code: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, staffID string) error {
	update := bson.M{
		"$addToSet": bson.M{"used_by": staffID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	_, err := r.qrCodeCollection.UpdateByID(ctx, qrCodeID, update)
	if err != nil {
		return fmt.Errorf("failed to mark QR code as used: %w", err)
	}
	return nil
}
