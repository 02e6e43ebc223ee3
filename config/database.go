package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName string = "staff-administration-db"
var StaffCollection string = "staff"
var CounterCollection string = "counters"
var AttendanceCollection string = "attendance_records"
var LeaveRequestCollection string = "leave_requests"
var PayrollCollection string = "payroll_records"
var WorkScheduleCollection string = "work_schedules"
var QRCodeCollection string = "qr_codes"

func MongoConnect() {

	mongoURI := os.Getenv("MONGOSTRING")

	if mongoURI == "" {
		log.Fatal("MONGOSTRING is not set in the environment")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB!")
	MongoConn = client
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB client is not initialized. Call MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

// InitDatabase creates the indexes the repositories rely on. staff_id is
// unique across the directory, attendance keeps one record per (staff, date)
// and payroll keeps one record per (staff, month).
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	staffIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "staff_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "department", Value: 1}, {Key: "status", Value: 1}},
		},
	}
	if _, err := GetCollection(StaffCollection).Indexes().CreateMany(ctx, staffIndexes); err != nil {
		log.Fatalf("Failed to create staff indexes: %v", err)
	}

	attendanceIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "staff_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := GetCollection(AttendanceCollection).Indexes().CreateOne(ctx, attendanceIndex); err != nil {
		log.Fatalf("Failed to create attendance index: %v", err)
	}

	payrollIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "staff_id", Value: 1}, {Key: "month", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := GetCollection(PayrollCollection).Indexes().CreateOne(ctx, payrollIndex); err != nil {
		log.Fatalf("Failed to create payroll index: %v", err)
	}

	leaveIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "status", Value: 1}},
	}
	if _, err := GetCollection(LeaveRequestCollection).Indexes().CreateOne(ctx, leaveIndex); err != nil {
		log.Fatalf("Failed to create leave request index: %v", err)
	}

	log.Println("Database indexes ready")
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnected from MongoDB")
	}
}
