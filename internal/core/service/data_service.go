package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
	"github.com/testbot/testbot-api/internal/pkg/metrics"
)

type dataService struct {
	repo ports.SnapshotRepository
}

func NewDataService(repo ports.SnapshotRepository) ports.DataService {
	return &dataService{repo: repo}
}

// Snapshot runs the seven reference queries concurrently. The first failure
// cancels the others and fails the whole snapshot.
func (s *dataService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	start := time.Now()

	var snap domain.Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Clients, err = s.repo.ListClients(gCtx)
		return wrapList("clients", err)
	})
	g.Go(func() (err error) {
		snap.Projects, err = s.repo.ListProjects(gCtx)
		return wrapList("projects", err)
	})
	g.Go(func() (err error) {
		snap.Users, err = s.repo.ListUsers(gCtx)
		return wrapList("users", err)
	})
	g.Go(func() (err error) {
		snap.TestCases, err = s.repo.ListTestCases(gCtx)
		return wrapList("test cases", err)
	})
	g.Go(func() (err error) {
		snap.Reports, err = s.repo.ListReports(gCtx)
		return wrapList("reports", err)
	})
	g.Go(func() (err error) {
		snap.CustomTemplates, err = s.repo.ListTemplates(gCtx, true)
		return wrapList("custom templates", err)
	})
	g.Go(func() (err error) {
		snap.PresetTemplates, err = s.repo.ListTemplates(gCtx, false)
		return wrapList("preset templates", err)
	})

	if err := g.Wait(); err != nil {
		metrics.SnapshotDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}

	metrics.SnapshotDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	return &snap, nil
}

func wrapList(what string, err error) error {
	if err != nil {
		return fmt.Errorf("list %s: %w", what, err)
	}
	return nil
}
