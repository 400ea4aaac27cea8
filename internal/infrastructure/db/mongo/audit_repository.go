package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/testbot/testbot-api/internal/core/domain"
)

const collectionReportAudit = "report_audit"

// AuditRepository appends report submissions to the report_audit collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionReportAudit)}
}

type auditDocument struct {
	ReportID    string    `bson:"report_id"`
	TestCaseID  string    `bson:"test_case_id"`
	ProjectID   string    `bson:"project_id"`
	ClientID    string    `bson:"client_id"`
	TesterID    string    `bson:"tester_id"`
	SubmittedAt time.Time `bson:"submitted_at"`
	RecordedAt  time.Time `bson:"recorded_at"`
}

// RecordReport inserts one audit entry.
func (r *AuditRepository) RecordReport(ctx context.Context, entry domain.ReportAudit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDocument{
		ReportID:    entry.ReportID,
		TestCaseID:  entry.TestCaseID,
		ProjectID:   entry.ProjectID,
		ClientID:    entry.ClientID,
		TesterID:    entry.TesterID,
		SubmittedAt: entry.SubmittedAt.UTC(),
		RecordedAt:  time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the audit collection.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "report_id", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "submitted_at", Value: -1}}},
		{Keys: bson.D{{Key: "tester_id", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}
