package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casefile/internal/casefile/models"
)

var testToday = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func validCase() *models.Case {
	return &models.Case{
		ID:             "2024-0001",
		ReportType:     "Gerencia",
		Category1:      "Riesgo de Fraude",
		Category2:      "Fraude Interno",
		Modality:       "Hurto",
		Channel:        "Agencias",
		Process:        "Venta de crédito Pyme",
		OccurrenceDate: "2024-01-10",
		DiscoveryDate:  "2024-02-01",
		Clients: []*models.Client{{
			ID:        "12345678",
			IDType:    "DNI",
			Flag:      "Afectado",
			Phones:    "+51987654321",
			Emails:    "cliente@example.com",
			Accionado: "Unidad de Fraude",
		}},
		Team: []*models.TeamMember{{
			ID:           "T12345",
			Flag:         "Involucrado",
			Division:     "DIVISION DE RIESGOS",
			Area:         "AREA DE PREVENCION DE FRAUDE",
			Service:      "UNIDAD DE INVESTIGACIONES",
			Role:         "ANALISTA DE FRAUDE",
			FaultType:    "No aplica",
			SanctionType: "No aplica",
		}},
		Products: []*models.Product{{
			ID:             "PROD1234",
			ClientID:       "12345678",
			Type:           "Yape",
			Channel:        "Agencias",
			Process:        "Venta de crédito Pyme",
			Currency:       "Soles",
			OccurrenceDate: "2024-01-10",
			DiscoveryDate:  "2024-02-01",
			Investigated:   "100",
			Loss:           "40",
			Failure:        "30",
			Contingency:    "20",
			Recovered:      "10",
			Paid:           "50",
			Claims: []*models.Claim{{
				ID:           "C12345678",
				AnalyticName: "Analítica de fraude externo",
				AnalyticCode: "4500000001",
			}},
			CollaboratorInvolvements: []*models.Involvement{{
				PartyID: "T12345",
				Amount:  "40",
			}},
		}},
	}
}

func TestCaseValidPassesClean(t *testing.T) {
	report := Case(validCase(), testToday)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.True(t, report.OK())
}

func TestCaseInternoReportType(t *testing.T) {
	t.Run("rejected with monetary impact", func(t *testing.T) {
		c := validCase()
		c.ReportType = "Interno"
		report := Case(c, testToday)
		require.False(t, report.OK())
		assert.Contains(t, report.Errors[0], "Report type 'Interno' is not allowed")
	})

	t.Run("rejected with sanctioned collaborator", func(t *testing.T) {
		c := validCase()
		c.ReportType = "Interno"
		c.Products[0].Loss = ""
		c.Products[0].Failure = ""
		c.Products[0].Contingency = "100"
		c.Team[0].SanctionType = "Despido"
		report := Case(c, testToday)
		assert.Contains(t, report.Errors[0], "Report type 'Interno' is not allowed")
	})

	t.Run("accepted without impact", func(t *testing.T) {
		c := validCase()
		c.ReportType = "Interno"
		p := c.Products[0]
		p.Loss, p.Failure, p.Contingency, p.Recovered, p.Paid = "", "", "", "100", ""
		report := Case(c, testToday)
		for _, e := range report.Errors {
			assert.NotContains(t, e, "Interno")
		}
	})
}

func TestCaseDuplicateIDsReportedWithRows(t *testing.T) {
	c := validCase()
	dup := *c.Clients[0]
	dup.ID = " 12345678 "
	c.Clients = append(c.Clients, &dup)

	report := Case(c, testToday)
	require.False(t, report.OK())
	assert.Contains(t, report.Errors, "Client id '12345678' is duplicated (rows 1 and 2).")
}

func TestCaseClaimRequiredWhenLossPositive(t *testing.T) {
	c := validCase()
	c.Products[0].Claims = nil
	report := Case(c, testToday)
	require.False(t, report.OK())
	assert.Contains(t, report.Errors[0], "A complete claim")
}

func TestCaseClaimBlankRowsIgnored(t *testing.T) {
	c := validCase()
	c.Products[0].Claims = append(c.Products[0].Claims, &models.Claim{})
	report := Case(c, testToday)
	assert.True(t, report.OK())
}

func TestCaseInvolvementUnknownCollaborator(t *testing.T) {
	c := validCase()
	c.Products[0].CollaboratorInvolvements[0].PartyID = "Z99999"
	report := Case(c, testToday)
	require.False(t, report.OK())
	assert.Contains(t, report.Errors[0], "unknown collaborator id 'Z99999'")
}

func TestCaseProductMustMatchTaxonomy(t *testing.T) {
	c := validCase()
	c.Products[0].Category1 = "Riesgo de Fraude"
	c.Products[0].Category2 = "Fraude Externo"
	c.Products[0].Modality = "Estafa"

	report := Case(c, testToday)
	assert.Contains(t, report.Errors,
		"At least one product must match the case's category and modality.")
	// The Fraude Externo classification is advisory, not an error.
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "Fraude Externo")
}

func TestCaseCommercialChannelRequiresAgency(t *testing.T) {
	c := validCase()
	c.Team[0].Division = "GCIA DE DIVISION CANALES DE ATENCION"
	c.Team[0].Area = "AREA COMERCIAL LIMA 1"
	c.Team[0].Service = "AREA LIMA 1 - REGION 62"
	c.Team[0].Role = "EJECUTIVO PYME"

	report := Case(c, testToday)
	assert.Contains(t, report.Errors, "Collaborator 1: Must enter the agency name.")
	assert.Contains(t, report.Errors, "Collaborator 1: Must enter the agency code.")

	c.Team[0].AgencyName = "Agencia Lima Centro"
	c.Team[0].AgencyCode = "123456"
	report = Case(c, testToday)
	assert.True(t, report.OK())
}

func TestCaseTechnicalKeyDuplicatesAreWarnings(t *testing.T) {
	c := validCase()
	clone := *c.Products[0]
	clone.Claims = []*models.Claim{{
		ID:           "C12345678",
		AnalyticName: "Analítica de fraude externo",
		AnalyticCode: "4500000001",
	}}
	clone.CollaboratorInvolvements = []*models.Involvement{{PartyID: "T12345", Amount: "40"}}
	c.Products = append(c.Products, &clone)

	report := Case(c, testToday)
	// The shared product id is an error; the shared technical key a warning.
	assert.Contains(t, report.Errors, "Product id 'PROD1234' is duplicated (rows 1 and 2).")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "share the same technical key")
}

func TestCaseActionPlanUniqueAcrossRisks(t *testing.T) {
	c := validCase()
	c.Risks = []*models.Risk{
		{ID: "RSK-000001", Leader: "J. Perez", Criticality: "Alto", ActionPlanIDs: "AP-1; AP-2"},
		{ID: "RSK-000002", Leader: "M. Diaz", Criticality: "Bajo", ActionPlanIDs: "ap-1"},
	}
	report := Case(c, testToday)
	require.False(t, report.OK())
	assert.Contains(t, report.Errors[0], "Action plan id 'ap-1' is already used by risk 1.")
}

func TestCaseResidualExposureTotal(t *testing.T) {
	c := validCase()
	c.Risks = []*models.Risk{
		{ID: "RSK-000001", Leader: "J. Perez", Criticality: "Alto", ResidualExposure: "100.5"},
		{ID: "RSK-000002", Leader: "M. Diaz", Criticality: "Bajo", ResidualExposure: "24.25"},
		{ID: "RSK-000003", Leader: "L. Rios", Criticality: "Bajo"},
	}
	report := Case(c, testToday)
	assert.True(t, report.OK())
	assert.Equal(t, "124.75", report.ResidualExposure)
	assert.Equal(t, "100.50", c.Risks[0].ResidualExposure)
}

func TestCaseNormChecks(t *testing.T) {
	c := validCase()
	c.Norms = []*models.Norm{{
		ID:            "1234.001.01.01",
		EffectiveDate: "2024-12-31",
		Description:   "Norma de seguridad de agencias",
	}}
	report := Case(c, testToday)
	require.False(t, report.OK())
	assert.Contains(t, report.Errors[0], "cannot be in the future")
}
