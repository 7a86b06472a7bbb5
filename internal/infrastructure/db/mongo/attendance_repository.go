package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

const attendancesCollection = "attendances"

// AttendanceRepository implements ports.AttendanceRepository using MongoDB.
// The unique (employee_id, type, timestamp) index makes Insert idempotent:
// a replayed punch that slipped past the Redis dedup layer is dropped here.
type AttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(attendancesCollection)}
}

type attendanceDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	Type       string             `bson:"type"`
	Timestamp  time.Time          `bson:"timestamp"`
	Source     string             `bson:"source,omitempty"`
	RecordedAt time.Time          `bson:"recorded_at"`
}

func (r *AttendanceRepository) Insert(ctx context.Context, a *domain.Attendance) error {
	doc := attendanceDoc{
		EmployeeID: a.EmployeeID,
		Type:       string(a.Type),
		Timestamp:  a.Timestamp,
		Source:     a.Source,
		RecordedAt: a.RecordedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) List(ctx context.Context, employeeID string) ([]domain.Attendance, error) {
	filter := bson.M{}
	if employeeID != "" {
		filter["employee_id"] = employeeID
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Attendance
	for cur.Next(ctx) {
		var doc attendanceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		out = append(out, domain.Attendance{
			ID:         doc.ID.Hex(),
			EmployeeID: doc.EmployeeID,
			Type:       domain.PunchType(doc.Type),
			Timestamp:  doc.Timestamp,
			Source:     doc.Source,
			RecordedAt: doc.RecordedAt,
		})
	}
	return out, cur.Err()
}
