package ports

import (
	"context"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// SnapshotRepository exposes the read-only queries behind the data snapshot.
// Implementations must be safe for concurrent use.
type SnapshotRepository interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListTestCases(ctx context.Context) ([]domain.TestCase, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
	// ListTemplates returns custom templates when custom is true, presets otherwise.
	ListTemplates(ctx context.Context, custom bool) ([]domain.Template, error)
}

type DataService interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}
