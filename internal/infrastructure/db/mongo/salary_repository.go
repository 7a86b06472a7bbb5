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

const salariesCollection = "salaries"

// SalaryRepository implements ports.SalaryRepository using MongoDB.
type SalaryRepository struct {
	coll *mongo.Collection
}

func NewSalaryRepository(db *mongo.Database) *SalaryRepository {
	return &SalaryRepository{coll: db.Collection(salariesCollection)}
}

type salaryDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	Basic      float64            `bson:"basic"`
	Allowances float64            `bson:"allowances"`
	Deductions float64            `bson:"deductions"`
	NetPay     float64            `bson:"net_pay"`
	PayDate    time.Time          `bson:"pay_date"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d salaryDoc) toDomain() domain.Salary {
	return domain.Salary{
		ID:         d.ID.Hex(),
		EmployeeID: d.EmployeeID,
		Basic:      d.Basic,
		Allowances: d.Allowances,
		Deductions: d.Deductions,
		NetPay:     d.NetPay,
		PayDate:    d.PayDate,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *SalaryRepository) Create(ctx context.Context, s *domain.Salary) (*domain.Salary, error) {
	doc := salaryDoc{
		EmployeeID: s.EmployeeID,
		Basic:      s.Basic,
		Allowances: s.Allowances,
		Deductions: s.Deductions,
		NetPay:     s.NetPay,
		PayDate:    s.PayDate,
		CreatedAt:  s.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert salary: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SalaryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Salary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "pay_date", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Salary
	for cur.Next(ctx) {
		var doc salaryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode salary: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}
