// Package service exposes the engine operations over one open case. It owns
// the case graph and its registries; everything else collaborates through
// it.
package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"casefile/internal/casefile/inherit"
	"casefile/internal/casefile/metrics"
	"casefile/internal/casefile/models"
	"casefile/internal/casefile/reconcile"
	"casefile/internal/casefile/registry"
	"casefile/internal/casefile/validate"
	dErrors "casefile/pkg/domain-errors"
	"casefile/pkg/platform/sentinel"
)

// Service serializes access to the single open case. The engine itself is
// synchronous and lock-free; the mutex is the caller-side serialization the
// engine contract requires.
type Service struct {
	mu      sync.Mutex
	log     *slog.Logger
	metrics *metrics.Metrics
	today   func() time.Time
	details reconcile.DetailCatalogs

	kase *models.Case
	regs *registry.Set
	rec  *reconcile.Reconciler
}

// New starts with an empty, unidentified case.
func New(log *slog.Logger, m *metrics.Metrics, today func() time.Time, details reconcile.DetailCatalogs) *Service {
	s := &Service{log: log, metrics: m, today: today, details: details}
	s.reset("")
	return s
}

func (s *Service) reset(id string) {
	s.kase = &models.Case{ID: strings.TrimSpace(id)}
	s.regs = registry.NewSet()
	s.rec = reconcile.New(s.kase, s.regs, s.details)
}

// NewCase discards the current case graph and opens a fresh one under the
// given id.
func (s *Service) NewCase(id string) (*models.Case, error) {
	if msg := validate.CaseID(id); msg != "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, msg)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset(id)
	s.log.Info("case opened", "case_id", s.kase.ID)
	return s.kase.Clone(), nil
}

// Snapshot returns a deep copy of the case graph, detached from later
// mutations so callers can encode it outside the lock.
func (s *Service) Snapshot() *models.Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kase.Clone()
}

// Validate runs the full-case report.
func (s *Service) Validate() validate.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	report := validate.Case(s.kase, s.today())
	s.metrics.ObserveValidateLatency(time.Since(start))
	s.metrics.CountFindings(len(report.Errors), len(report.Warnings))

	s.log.Info("case validated",
		"case_id", s.kase.ID,
		"errors", len(report.Errors),
		"warnings", len(report.Warnings))
	return report
}

// Import reconciles a batch of raw rows into one section.
func (s *Service) Import(section reconcile.Section, rows []map[string]string, strategyName string) (reconcile.BatchResult, error) {
	strategy, known := reconcile.ParseStrategy(strategyName)
	if !known {
		return reconcile.BatchResult{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown merge strategy %q", strategyName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch, err := s.rec.ImportBatch(section, rows, strategy)
	if err != nil {
		return reconcile.BatchResult{}, err
	}

	s.countImport(batch)
	s.log.Info("batch imported",
		"case_id", s.kase.ID,
		"batch_id", batch.BatchID,
		"section", string(batch.Section),
		"created", batch.Created,
		"updated", batch.Updated,
		"duplicates", batch.Duplicates,
		"errors", batch.Errors)
	return batch, nil
}

func (s *Service) countImport(batch reconcile.BatchResult) {
	section := string(batch.Section)
	for i := 0; i < batch.Created; i++ {
		s.metrics.CountImportRow(section, "created")
	}
	for i := 0; i < batch.Updated; i++ {
		s.metrics.CountImportRow(section, "updated")
	}
	for i := 0; i < batch.Duplicates; i++ {
		s.metrics.CountImportRow(section, "duplicate")
	}
	for i := 0; i < batch.Errors; i++ {
		s.metrics.CountImportRow(section, "error")
	}
}

// Inherit copies the vetted case fields into the identified product.
func (s *Service) Inherit(productID string) (inherit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.regs.Products.Lookup(productID)
	if !ok {
		return inherit.Result{}, notFound(reconcile.SectionProducts, productID)
	}

	result := inherit.CopyCaseFields(s.kase)
	inherit.Apply(result, product)
	s.metrics.IncrementInheritRuns()
	return result, nil
}

// Rename changes an entity's identifier through its registry. A collision
// with a different entity reverts the field and returns the duplicate-id
// diagnostic; the graph never holds two entities behind one canonical id.
func (s *Service) Rename(section reconcile.Section, fromID, toID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch section {
	case reconcile.SectionClients:
		entity, ok := s.regs.Clients.Lookup(fromID)
		if !ok {
			return "", notFound(section, fromID)
		}
		return rename(s, section, s.regs.Clients, entity, &entity.ID, toID), nil
	case reconcile.SectionTeam:
		entity, ok := s.regs.Team.Lookup(fromID)
		if !ok {
			return "", notFound(section, fromID)
		}
		return rename(s, section, s.regs.Team, entity, &entity.ID, toID), nil
	case reconcile.SectionProducts:
		entity, ok := s.regs.Products.Lookup(fromID)
		if !ok {
			return "", notFound(section, fromID)
		}
		return rename(s, section, s.regs.Products, entity, &entity.ID, toID), nil
	case reconcile.SectionRisks:
		entity, ok := s.regs.Risks.Lookup(fromID)
		if !ok {
			return "", notFound(section, fromID)
		}
		return rename(s, section, s.regs.Risks, entity, &entity.ID, toID), nil
	case reconcile.SectionNorms:
		entity, ok := s.regs.Norms.Lookup(fromID)
		if !ok {
			return "", notFound(section, fromID)
		}
		return rename(s, section, s.regs.Norms, entity, &entity.ID, toID), nil
	default:
		return "", dErrors.Newf(dErrors.CodeBadRequest, "unknown section %q", section)
	}
}

// rename writes the new id through the registry, reverting the entity's id
// field on a collision.
func rename[T comparable](s *Service, section reconcile.Section, reg *registry.Registry[T], entity T, field *string, toID string) string {
	previous := *field
	*field = strings.TrimSpace(toID)
	res := reg.Upsert(*field, entity)
	if !res.Rejected {
		return ""
	}
	*field = previous
	s.metrics.IncrementIdentityConflict(string(section))
	s.log.Warn("duplicate id rejected", "section", string(section), "id", res.ConflictID)
	return fmt.Sprintf("Id '%s' is already in use; ids must be unique.", res.ConflictID)
}

func notFound(section reconcile.Section, id string) error {
	return dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound,
		fmt.Sprintf("%s entity %q not found", section, strings.TrimSpace(id)))
}
