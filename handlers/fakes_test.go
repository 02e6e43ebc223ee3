package handlers

// In-memory repository fakes backing the handler tests. They mirror the
// Mongo implementations' contracts: nil, nil for missing documents and
// the same sentinel errors.

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"staff-administration/models"
	"staff-administration/pkg/apperr"
	"staff-administration/repository"
)

type fakeStaffRepo struct {
	staff []*models.StaffMember
}

func (f *fakeStaffRepo) Create(ctx context.Context, s *models.StaffMember) (*mongo.InsertOneResult, error) {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	f.staff = append(f.staff, s)
	return &mongo.InsertOneResult{InsertedID: s.ID}, nil
}

func (f *fakeStaffRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StaffMember, error) {
	for _, s := range f.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) FindByStaffID(ctx context.Context, staffID string) (*models.StaffMember, error) {
	for _, s := range f.staff {
		if s.StaffID == staffID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	for _, s := range f.staff {
		if s.ID != id {
			continue
		}
		if v, ok := updateData["name"]; ok {
			s.Name = v.(string)
		}
		if v, ok := updateData["status"]; ok {
			s.Status = v.(models.StaffStatus)
		}
		if v, ok := updateData["salary"]; ok {
			s.Salary = v.(float64)
		}
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &mongo.UpdateResult{}, nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	for i, s := range f.staff {
		if s.ID == id {
			f.staff = append(f.staff[:i], f.staff[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

func (f *fakeStaffRepo) FindAll(ctx context.Context, filter models.StaffFilter, page, limit int64) ([]models.StaffMember, int64, error) {
	var out []models.StaffMember
	for _, s := range f.staff {
		if filter.Department != "" && s.Department != filter.Department {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStaffRepo) FindByStaffIDs(ctx context.Context, staffIDs []string) ([]models.StaffMember, error) {
	wanted := make(map[string]bool, len(staffIDs))
	for _, id := range staffIDs {
		wanted[id] = true
	}
	var out []models.StaffMember
	for _, s := range f.staff {
		if wanted[s.StaffID] {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStaffRepo) FindActive(ctx context.Context, department models.Department) ([]models.StaffMember, error) {
	var out []models.StaffMember
	for _, s := range f.staff {
		if s.Status != models.StaffActive {
			continue
		}
		if department != "" && s.Department != department {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStaffRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, s := range f.staff {
		if s.Status == models.StaffActive {
			n++
		}
	}
	return n, nil
}

type fakeCounterRepo struct {
	seqs map[string]int64
}

func (f *fakeCounterRepo) Next(ctx context.Context, department string) (int64, error) {
	if f.seqs == nil {
		f.seqs = make(map[string]int64)
	}
	f.seqs[department]++
	return f.seqs[department], nil
}

type fakeLeaveRepo struct {
	requests  []*models.LeaveRequest
	staffRepo *fakeStaffRepo
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req *models.LeaveRequest) (*mongo.InsertOneResult, error) {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	f.requests = append(f.requests, req)
	return &mongo.InsertOneResult{InsertedID: req.ID}, nil
}

func (f *fakeLeaveRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaveRepo) FindAll(ctx context.Context) ([]models.LeaveRequestWithStaff, error) {
	out := []models.LeaveRequestWithStaff{}
	for _, r := range f.requests {
		out = append(out, models.LeaveRequestWithStaff{LeaveRequest: *r})
	}
	return out, nil
}

func (f *fakeLeaveRepo) FindByStaffID(ctx context.Context, staffID string) ([]models.LeaveRequest, error) {
	out := []models.LeaveRequest{}
	for _, r := range f.requests {
		if r.StaffID == staffID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	for _, r := range f.requests {
		if r.Status == models.LeavePending {
			n++
		}
	}
	return n, nil
}

func (f *fakeLeaveRepo) Approve(ctx context.Context, id primitive.ObjectID, note string) error {
	req, _ := f.FindByID(ctx, id)
	if req == nil {
		return apperr.NotFoundf("leave request %s does not exist", id.Hex())
	}
	if !req.Decidable() {
		return apperr.InvalidStatef("leave request is already %s", req.Status)
	}

	staff, _ := f.staffRepo.FindByStaffID(ctx, req.StaffID)
	if staff == nil {
		// Orphaned request: nothing is written, the request stays Pending.
		return apperr.NotFoundf("staff member %s referenced by the request does not exist", req.StaffID)
	}

	req.Status = models.LeaveApproved
	req.Note = note
	staff.Status = models.StaffOnLeave
	return nil
}

func (f *fakeLeaveRepo) Reject(ctx context.Context, id primitive.ObjectID, note string) error {
	req, _ := f.FindByID(ctx, id)
	if req == nil {
		return apperr.NotFoundf("leave request %s does not exist", id.Hex())
	}
	if !req.Decidable() {
		return apperr.InvalidStatef("leave request is already %s", req.Status)
	}
	req.Status = models.LeaveRejected
	req.Note = note
	return nil
}

func (f *fakeLeaveRepo) UpdateAttachmentURL(ctx context.Context, id primitive.ObjectID, fileURL string) (*mongo.UpdateResult, error) {
	req, _ := f.FindByID(ctx, id)
	if req == nil {
		return &mongo.UpdateResult{}, nil
	}
	req.AttachmentURL = fileURL
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeAttendanceRepo struct {
	records []*models.AttendanceRecord
	qrCodes []*models.QRCode
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	for _, r := range f.records {
		if r.StaffID == record.StaffID && r.Date == record.Date {
			r.Status = record.Status
			r.CheckIn = record.CheckIn
			r.CheckOut = record.CheckOut
			r.Notes = record.Notes
			record.ID = r.ID
			return nil
		}
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAttendanceRepo) FindByStaffAndDate(ctx context.Context, staffID, date string) (*models.AttendanceRecord, error) {
	for _, r := range f.records {
		if r.StaffID == staffID && r.Date == date {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) FindByStaffID(ctx context.Context, staffID string) ([]models.AttendanceRecord, error) {
	out := []models.AttendanceRecord{}
	for _, r := range f.records {
		if r.StaffID == staffID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	out := []models.AttendanceRecord{}
	for _, r := range f.records {
		if r.Date == date {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindByDateWithStaff(ctx context.Context, date string) ([]models.AttendanceWithStaff, error) {
	out := []models.AttendanceWithStaff{}
	for _, r := range f.records {
		if r.Date == date {
			out = append(out, models.AttendanceWithStaff{
				ID:      r.ID,
				StaffID: r.StaffID,
				Date:    r.Date,
				Status:  r.Status,
			})
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) UpdateCheckout(ctx context.Context, id primitive.ObjectID, checkOut string) error {
	for _, r := range f.records {
		if r.ID == id {
			r.CheckOut = checkOut
		}
	}
	return nil
}

func (f *fakeAttendanceRepo) CreateQRCode(ctx context.Context, qrCode *models.QRCode) error {
	f.qrCodes = append(f.qrCodes, qrCode)
	return nil
}

func (f *fakeAttendanceRepo) FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error) {
	for _, q := range f.qrCodes {
		if q.Code == code {
			return q, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, staffID string) error {
	for _, q := range f.qrCodes {
		if q.ID == qrCodeID {
			q.UsedBy = append(q.UsedBy, staffID)
		}
	}
	return nil
}

type fakePayrollRepo struct {
	records []*models.PayrollRecord
}

func (f *fakePayrollRepo) Create(ctx context.Context, record *models.PayrollRecord) (*mongo.InsertOneResult, error) {
	for _, r := range f.records {
		if r.StaffID == record.StaffID && r.Month == record.Month {
			return nil, repository.ErrDuplicateRecord
		}
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	f.records = append(f.records, record)
	return &mongo.InsertOneResult{InsertedID: record.ID}, nil
}

func (f *fakePayrollRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PayrollRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollRepo) FindByMonth(ctx context.Context, month string) ([]models.PayrollRecord, error) {
	out := []models.PayrollRecord{}
	for _, r := range f.records {
		if r.Month == month {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) FindByStaffID(ctx context.Context, staffID string) ([]models.PayrollRecord, error) {
	out := []models.PayrollRecord{}
	for _, r := range f.records {
		if r.StaffID == staffID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) FindByStaffAndMonth(ctx context.Context, staffID, month string) (*models.PayrollRecord, error) {
	for _, r := range f.records {
		if r.StaffID == staffID && r.Month == month {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollRepo) ExistsForMonth(ctx context.Context, staffID, month string) (bool, error) {
	r, _ := f.FindByStaffAndMonth(ctx, staffID, month)
	return r != nil, nil
}

func (f *fakePayrollRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PayrollStatus, paidAt *time.Time) (*mongo.UpdateResult, error) {
	for _, r := range f.records {
		if r.ID == id {
			r.Status = status
			if paidAt != nil {
				r.PaidAt = paidAt
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

type fakeScheduleRepo struct {
	schedules []models.WorkSchedule
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule *models.WorkSchedule) (*models.WorkSchedule, error) {
	schedule.ID = primitive.NewObjectID()
	f.schedules = append(f.schedules, *schedule)
	return schedule, nil
}

func (f *fakeScheduleRepo) FindAll(ctx context.Context) ([]models.WorkSchedule, error) {
	return f.schedules, nil
}

func (f *fakeScheduleRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, payload *models.WorkScheduleUpdatePayload) error {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules[i].Date = payload.Date
			f.schedules[i].StartTime = payload.StartTime
			f.schedules[i].EndTime = payload.EndTime
			return nil
		}
	}
	return apperr.NotFoundf("work schedule not found")
}

func (f *fakeScheduleRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return apperr.NotFoundf("work schedule not found")
}
