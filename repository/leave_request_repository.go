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
	"staff-administration/pkg/apperr"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req *models.LeaveRequest) (*mongo.InsertOneResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error)
	FindAll(ctx context.Context) ([]models.LeaveRequestWithStaff, error)
	FindByStaffID(ctx context.Context, staffID string) ([]models.LeaveRequest, error)
	CountPending(ctx context.Context) (int64, error)
	// Approve flips a Pending request to Approved and the referenced staff
	// member to On Leave in one transaction; both writes land or neither.
	Approve(ctx context.Context, id primitive.ObjectID, note string) error
	// Reject flips a Pending request to Rejected. No staff side effect.
	Reject(ctx context.Context, id primitive.ObjectID, note string) error
	UpdateAttachmentURL(ctx context.Context, id primitive.ObjectID, fileURL string) (*mongo.UpdateResult, error)
}

type leaveRequestRepository struct {
	client          *mongo.Client
	collection      *mongo.Collection
	staffCollection *mongo.Collection
}

func NewLeaveRequestRepository() LeaveRequestRepository {
	return &leaveRequestRepository{
		client:          config.MongoConn,
		collection:      config.GetCollection(config.LeaveRequestCollection),
		staffCollection: config.GetCollection(config.StaffCollection),
	}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req *models.LeaveRequest) (*mongo.InsertOneResult, error) {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}
	return result, nil
}

func (r *leaveRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find leave request by ID: %w", err)
	}
	return &request, nil
}

func (r *leaveRequestRepository) FindAll(ctx context.Context) ([]models.LeaveRequestWithStaff, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{
			Key: "$lookup",
			Value: bson.D{
				{Key: "from", Value: config.StaffCollection},
				{Key: "localField", Value: "staff_id"},
				{Key: "foreignField", Value: "staff_id"},
				{Key: "as", Value: "staff_info"},
			},
		}},
		bson.D{{
			Key: "$unwind",
			Value: bson.D{
				{Key: "path", Value: "$staff_info"},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			},
		}},
		bson.D{{
			Key: "$addFields",
			Value: bson.D{
				{Key: "staff_name", Value: "$staff_info.name"},
				{Key: "staff_email", Value: "$staff_info.email"},
				{Key: "department", Value: "$staff_info.department"},
			},
		}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "staff_info", Value: 0}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed aggregation for leave requests with staff details: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequestWithStaff
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}
	if len(requests) == 0 {
		return []models.LeaveRequestWithStaff{}, nil
	}
	return requests, nil
}

func (r *leaveRequestRepository) FindByStaffID(ctx context.Context, staffID string) ([]models.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"staff_id": staffID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find leave requests by staff id: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}
	if len(requests) == 0 {
		return []models.LeaveRequest{}, nil
	}
	return requests, nil
}

func (r *leaveRequestRepository) CountPending(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": models.LeavePending})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}
	return count, nil
}

func (r *leaveRequestRepository) Approve(ctx context.Context, id primitive.ObjectID, note string) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var request models.LeaveRequest
		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&request); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperr.NotFoundf("leave request %s does not exist", id.Hex())
			}
			return nil, fmt.Errorf("failed to load leave request: %w", err)
		}
		if !request.Decidable() {
			return nil, apperr.InvalidStatef("leave request is already %s", request.Status)
		}

		// The status filter makes the flip atomic under concurrent decisions.
		res, err := r.collection.UpdateOne(sc,
			bson.M{"_id": id, "status": models.LeavePending},
			bson.M{"$set": bson.M{
				"status":     models.LeaveApproved,
				"note":       note,
				"updated_at": time.Now(),
			}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to approve leave request: %w", err)
		}
		if res.ModifiedCount == 0 {
			return nil, apperr.InvalidStatef("leave request was decided concurrently")
		}

		staffRes, err := r.staffCollection.UpdateOne(sc,
			bson.M{"staff_id": request.StaffID},
			bson.M{"$set": bson.M{
				"status":     models.StaffOnLeave,
				"updated_at": time.Now(),
			}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to set staff member on leave: %w", err)
		}
		if staffRes.MatchedCount == 0 {
			// Orphaned request: abort so the request stays Pending.
			return nil, apperr.NotFoundf("staff member %s referenced by the request does not exist", request.StaffID)
		}
		return nil, nil
	})
	return err
}

func (r *leaveRequestRepository) Reject(ctx context.Context, id primitive.ObjectID, note string) error {
	var request models.LeaveRequest
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFoundf("leave request %s does not exist", id.Hex())
		}
		return fmt.Errorf("failed to load leave request: %w", err)
	}
	if !request.Decidable() {
		return apperr.InvalidStatef("leave request is already %s", request.Status)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.LeavePending},
		bson.M{"$set": bson.M{
			"status":     models.LeaveRejected,
			"note":       note,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to reject leave request: %w", err)
	}
	if res.ModifiedCount == 0 {
		return apperr.InvalidStatef("leave request was decided concurrently")
	}
	return nil
}

func (r *leaveRequestRepository) UpdateAttachmentURL(ctx context.Context, id primitive.ObjectID, fileURL string) (*mongo.UpdateResult, error) {
	update := bson.M{"$set": bson.M{"attachment_url": fileURL, "updated_at": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update attachment URL: %w", err)
	}
	return result, nil
}
