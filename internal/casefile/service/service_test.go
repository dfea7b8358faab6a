package service

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"casefile/internal/casefile/reconcile"
	dErrors "casefile/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	svc *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	today := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	s.svc = New(slog.New(slog.DiscardHandler), nil, today, reconcile.DetailCatalogs{})
	_, err := s.svc.NewCase("2024-0001")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestNewCaseRejectsBadID() {
	_, err := s.svc.NewCase("bad")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestNewCaseResetsGraph() {
	_, err := s.svc.Import(reconcile.SectionClients, []map[string]string{{"id_cliente": "12345678"}}, "")
	s.Require().NoError(err)
	s.Len(s.svc.Snapshot().Clients, 1)

	_, err = s.svc.NewCase("2024-0002")
	s.Require().NoError(err)
	snapshot := s.svc.Snapshot()
	s.Equal("2024-0002", snapshot.ID)
	s.Empty(snapshot.Clients)
}

func (s *ServiceSuite) TestImportUnknownStrategy() {
	_, err := s.svc.Import(reconcile.SectionClients, nil, "merge-harder")
	s.Error(err)
}

func (s *ServiceSuite) TestImportAndValidate() {
	_, err := s.svc.Import(reconcile.SectionProducts, []map[string]string{{
		"id_producto":       "PRD-1",
		"id_cliente":        "CLI-1",
		"monto_investigado": "100",
		"monto_perdida":     "60",
	}}, "preserve")
	s.Require().NoError(err)

	report := s.svc.Validate()
	s.False(report.OK())
	// The auto-created client and the unbalanced amounts both surface.
	s.NotEmpty(report.Errors)
}

func (s *ServiceSuite) TestRenameConflictRevertsField() {
	_, err := s.svc.Import(reconcile.SectionTeam, []map[string]string{
		{"id_colaborador": "T12345"},
		{"id_colaborador": "T67890"},
	}, "")
	s.Require().NoError(err)

	diag, err := s.svc.Rename(reconcile.SectionTeam, "T67890", "t12345")
	s.Require().NoError(err)
	s.Contains(diag, "already in use")

	snapshot := s.svc.Snapshot()
	s.Equal("T67890", snapshot.Team[1].ID)
}

func (s *ServiceSuite) TestRenameMovesMapping() {
	_, err := s.svc.Import(reconcile.SectionTeam, []map[string]string{{"id_colaborador": "T12345"}}, "")
	s.Require().NoError(err)

	diag, err := s.svc.Rename(reconcile.SectionTeam, "t12345", "T99999")
	s.Require().NoError(err)
	s.Empty(diag)
	s.Equal("T99999", s.svc.Snapshot().Team[0].ID)

	_, err = s.svc.Rename(reconcile.SectionTeam, "T12345", "T11111")
	s.Error(err)
}

func (s *ServiceSuite) TestInherit() {
	s.svc.kase.Category1 = "Riesgo de Fraude"
	s.svc.kase.Category2 = "Fraude Interno"
	s.svc.kase.Modality = "Hurto"
	s.svc.kase.Channel = "Agencias"
	s.svc.kase.Process = "Venta de crédito Pyme"
	s.svc.kase.OccurrenceDate = "2024-01-10"
	s.svc.kase.DiscoveryDate = "2024-02-01"

	_, err := s.svc.Import(reconcile.SectionProducts, []map[string]string{{"id_producto": "PRD-1"}}, "")
	s.Require().NoError(err)

	result, err := s.svc.Inherit("prd-1")
	s.Require().NoError(err)
	s.Empty(result.MissingFields)
	s.Empty(result.InvalidFields)

	product := s.svc.Snapshot().Products[0]
	s.Equal("Hurto", product.Modality)
	s.Equal("Agencias", product.Channel)
	s.Equal("2024-01-10", product.OccurrenceDate)

	_, err = s.svc.Inherit("PRD-404")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSnapshotIsDetached() {
	_, err := s.svc.Import(reconcile.SectionClients, []map[string]string{
		{"id_cliente": "12345678", "telefonos": "+51999999999"},
	}, "")
	s.Require().NoError(err)

	snapshot := s.svc.Snapshot()
	snapshot.Clients[0].Phones = "scribbled"

	_, err = s.svc.Import(reconcile.SectionClients, []map[string]string{
		{"id_cliente": "12345678", "telefonos": "+51888888888"},
	}, "overwrite")
	s.Require().NoError(err)

	// Neither the caller's writes nor the later import leak across.
	s.Equal("+51999999999", snapshot.Clients[0].Phones)
	s.Equal("+51888888888", s.svc.Snapshot().Clients[0].Phones)
}
