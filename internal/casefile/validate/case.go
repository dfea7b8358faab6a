package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"casefile/internal/casefile/models"
	"casefile/internal/casefile/money"
	"casefile/internal/catalog"
	platstrings "casefile/pkg/platform/strings"
)

// Report is the outcome of a full-case validation pass. Errors block a
// submission; warnings are advisory and include the technical-key report.
// ResidualExposure totals the parse-clean risk exposure amounts.
type Report struct {
	Errors           []string `json:"errors"`
	Warnings         []string `json:"warnings"`
	ResidualExposure string   `json:"residual_exposure"`
}

// OK reports whether the case produced no errors.
func (r Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Case runs every rule over the whole case graph and returns the combined
// error and warning lists. today anchors the date checks.
func Case(c *models.Case, today time.Time) Report {
	var report Report

	validateCaseHeader(c, today, &report)
	validateClients(c, &report)
	validateTeam(c, &report)
	validateProducts(c, today, &report)
	validateRisks(c, &report)
	validateNorms(c, today, &report)

	if msg := CaseTotals(c.Products); msg != "" {
		report.Errors = append(report.Errors, msg)
	}
	for _, dup := range FindDuplicateTechnicalKeys(c) {
		report.warnf("Products at rows %s share the same technical key (%s).",
			joinPositions(dup.Positions), dup.Key)
	}
	return report
}

func validateCaseHeader(c *models.Case, today time.Time, report *Report) {
	if msg := CaseID(c.ID); msg != "" {
		report.Errors = append(report.Errors, msg)
	}
	if msg := catalog.Validate(c.ReportType, "the report type", catalog.ReportTypes, false); msg != "" {
		report.Errors = append(report.Errors, msg)
	}
	if strings.TrimSpace(c.ReportType) == "Interno" {
		if reason := internoBlockReason(c); reason != "" {
			report.errorf("Report type 'Interno' is not allowed: %s.", reason)
		}
	}
	report.Errors = append(report.Errors, catalog.ValidateTaxonomy(c.Category1, c.Category2, c.Modality).Messages()...)
	if msg := catalog.Validate(c.Channel, "the channel", catalog.Channels, false); msg != "" {
		report.Errors = append(report.Errors, msg)
	}
	if msg := catalog.Validate(c.Process, "the impacted process", catalog.Processes, false); msg != "" {
		report.Errors = append(report.Errors, msg)
	}
	report.Errors = append(report.Errors, Chronology(c.OccurrenceDate, c.DiscoveryDate, today)...)
}

// internoBlockReason returns why an "Interno" report type is rejected, or ""
// when it is acceptable: internal-only reports cannot carry monetary impact
// or sanctioned collaborators.
func internoBlockReason(c *models.Case) string {
	for _, p := range c.Products {
		if LossComponentsPositive(p) {
			return "the case has products with loss, failure or contingency amounts"
		}
	}
	for _, m := range c.Team {
		sanction := strings.TrimSpace(m.SanctionType)
		if sanction != "" && sanction != "No aplica" {
			return "the case has sanctioned collaborators"
		}
	}
	return ""
}

func validateClients(c *models.Case, report *Report) {
	ids := make([]string, len(c.Clients))
	for i, client := range c.Clients {
		ids[i] = client.ID
		prefix := fmt.Sprintf("Client %d: ", i+1)

		if msg := catalog.Validate(client.IDType, "the id type", catalog.IDTypes, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := ClientID(client.ID, client.IDType); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := catalog.Validate(client.Flag, "the client flag", catalog.ClientFlags, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		for _, msg := range Phones(client.Phones) {
			report.Errors = append(report.Errors, prefix+msg)
		}
		for _, msg := range Emails(client.Emails) {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := catalog.ValidateMultiSelection(client.Accionado, "Accionado", catalog.AccionadoOptions); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
	}
	reportDuplicateIDs("Client", ids, report)
}

func validateTeam(c *models.Case, report *Report) {
	ids := make([]string, len(c.Team))
	for i, m := range c.Team {
		ids[i] = m.ID
		prefix := fmt.Sprintf("Collaborator %d: ", i+1)

		if msg := TeamMemberID(m.ID); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := catalog.Validate(m.Flag, "the collaborator flag", catalog.CollaboratorFlags, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		for _, msg := range catalog.ValidateTeamHierarchy(m.Division, m.Area, m.Service, m.Role).Messages() {
			report.Errors = append(report.Errors, prefix+msg)
		}

		commercial := catalog.IsCommercialChannel(m.Division, m.Area)
		if commercial && strings.TrimSpace(m.AgencyName) == "" {
			report.Errors = append(report.Errors, prefix+"Must enter the agency name.")
		}
		if msg := AgencyCode(m.AgencyCode, commercial); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}

		if msg := catalog.Validate(m.FaultType, "the fault type", catalog.FaultTypes, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := catalog.Validate(m.SanctionType, "the sanction type", catalog.SanctionTypes, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
	}
	reportDuplicateIDs("Collaborator", ids, report)
}

func validateProducts(c *models.Case, today time.Time, report *Report) {
	clientIDs := canonicalSet(len(c.Clients), func(i int) string { return c.Clients[i].ID })
	teamIDs := canonicalSet(len(c.Team), func(i int) string { return c.Team[i].ID })
	caseTriple := catalog.ValidateTaxonomy(c.Category1, c.Category2, c.Modality)

	ids := make([]string, len(c.Products))
	var externalFraud []string
	taxonomyMatched := false

	for i, p := range c.Products {
		ids[i] = p.ID
		prefix := productPrefix(i, p)

		productType := catalog.ResolveProductType(p.Type)
		switch {
		case strings.TrimSpace(p.Type) == "":
			report.Errors = append(report.Errors, prefix+"Must enter the product type.")
		case productType == "":
			report.errorf("%sProduct type '%s' is not in the CM catalog.", prefix, strings.TrimSpace(p.Type))
		default:
			p.Type = productType
		}

		if msg := ProductID(p.ID, catalog.FamilyOf(p.Type)); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}

		clientID := models.CanonicalID(p.ClientID)
		switch {
		case clientID == "":
			report.Errors = append(report.Errors, prefix+"Must enter the owning client id.")
		case !clientIDs[clientID]:
			report.errorf("%sClient id '%s' does not exist in the case.", prefix, strings.TrimSpace(p.ClientID))
		}

		cat1, cat2, modality := productTaxonomy(c, p)
		if hasAny(p.Category1, p.Category2, p.Modality) {
			for _, msg := range catalog.ValidateTaxonomy(p.Category1, p.Category2, p.Modality).Messages() {
				report.Errors = append(report.Errors, prefix+msg)
			}
		}
		if caseTriple.OK() && tripleEqual(cat1, cat2, modality, c.Category1, c.Category2, c.Modality) {
			taxonomyMatched = true
		}
		if strings.TrimSpace(cat2) == "Fraude Externo" {
			externalFraud = append(externalFraud, displayID(i, p))
		}

		if msg := catalog.Validate(p.Channel, "the channel", catalog.Channels, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := catalog.Validate(p.Process, "the impacted process", catalog.Processes, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := catalog.Validate(p.Currency, "the currency", catalog.Currencies, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		for _, msg := range Chronology(p.OccurrenceDate, p.DiscoveryDate, today) {
			report.Errors = append(report.Errors, prefix+msg)
		}
		for _, msg := range ProductMoney(p) {
			report.Errors = append(report.Errors, prefix+msg)
		}

		validateClaims(p, prefix, report)
		validateInvolvements(p, prefix, clientIDs, teamIDs, report)
	}
	reportDuplicateIDs("Product", ids, report)

	if len(c.Products) > 0 && caseTriple.OK() && !taxonomyMatched {
		report.Errors = append(report.Errors,
			"At least one product must match the case's category and modality.")
	}
	if len(externalFraud) > 0 {
		report.warnf("Products %s are classified as 'Fraude Externo'; confirm the external-fraud treatment applies.",
			strings.Join(externalFraud, ", "))
	}
}

func validateClaims(p *models.Product, prefix string, report *Report) {
	complete := false
	for j, claim := range p.Claims {
		claimPrefix := fmt.Sprintf("%sClaim %d: ", prefix, j+1)
		blank := strings.TrimSpace(claim.ID) == "" &&
			strings.TrimSpace(claim.AnalyticName) == "" &&
			strings.TrimSpace(claim.AnalyticCode) == ""
		if blank {
			continue
		}
		if msg := ClaimID(claim.ID); msg != "" {
			report.Errors = append(report.Errors, claimPrefix+msg)
		}
		if msg := AnalyticCode(claim.AnalyticCode); msg != "" {
			report.Errors = append(report.Errors, claimPrefix+msg)
			continue
		}
		if strings.TrimSpace(claim.AnalyticName) == "" {
			report.Errors = append(report.Errors, claimPrefix+"Must enter the analytic name.")
			continue
		}
		if msg := AnalyticPair(claim.AnalyticName, claim.AnalyticCode); msg != "" {
			report.Errors = append(report.Errors, claimPrefix+msg)
			continue
		}
		if ClaimID(claim.ID) == "" {
			complete = true
		}
	}
	if LossComponentsPositive(p) && !complete {
		report.Errors = append(report.Errors,
			prefix+"A complete claim (id, analytic name and code) is required when loss, failure or contingency is greater than zero.")
	}
}

func validateInvolvements(p *models.Product, prefix string, clientIDs, teamIDs map[string]bool, report *Report) {
	check := func(kind string, known map[string]bool, invs []*models.Involvement) {
		for _, inv := range invs {
			id := models.CanonicalID(inv.PartyID)
			if id == "" {
				report.errorf("%sMust enter the %s id on the involvement.", prefix, kind)
				continue
			}
			if !known[id] {
				report.errorf("%sInvolvement references unknown %s id '%s'.", prefix, kind, strings.TrimSpace(inv.PartyID))
			}
			if _, msg := money.Normalize(inv.Amount, "the assigned amount", true); msg != "" {
				report.errorf("%s%s", prefix, msg)
			}
		}
	}
	check("collaborator", teamIDs, p.CollaboratorInvolvements)
	check("client", clientIDs, p.ClientInvolvements)
}

func validateRisks(c *models.Case, report *Report) {
	ids := make([]string, len(c.Risks))
	planOwners := make(map[string]int)
	exposure := decimal.Zero

	for i, risk := range c.Risks {
		ids[i] = risk.ID
		prefix := fmt.Sprintf("Risk %d: ", i+1)

		if msg := RiskID(risk.ID); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := catalog.RequiredText(risk.Leader, "the risk leader"); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if msg := catalog.Validate(risk.Criticality, "the criticality", catalog.Criticalities, false); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		if amount, msg := money.Normalize(risk.ResidualExposure, "the residual exposure", true); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		} else if !amount.Empty {
			risk.ResidualExposure = amount.Text
			exposure = exposure.Add(amount.Value)
		}

		for _, plan := range platstrings.SplitList(risk.ActionPlanIDs) {
			key := models.CanonicalID(plan)
			if owner, taken := planOwners[key]; taken && owner != i {
				report.errorf("%sAction plan id '%s' is already used by risk %d.", prefix, plan, owner+1)
				continue
			}
			planOwners[key] = i
		}
	}
	report.ResidualExposure = exposure.StringFixed(2)
	reportDuplicateIDs("Risk", ids, report)
}

func validateNorms(c *models.Case, today time.Time, report *Report) {
	ids := make([]string, len(c.Norms))
	for i, norm := range c.Norms {
		ids[i] = norm.ID
		prefix := fmt.Sprintf("Norm %d: ", i+1)

		if msg := NormID(norm.ID); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
		effective, msg := Date(norm.EffectiveDate, "the effective date")
		if msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		} else if effective.After(today) {
			report.Errors = append(report.Errors, prefix+"The effective date cannot be in the future.")
		}
		if msg := catalog.RequiredText(norm.Description, "the norm description"); msg != "" {
			report.Errors = append(report.Errors, prefix+msg)
		}
	}
	reportDuplicateIDs("Norm", ids, report)
}

func reportDuplicateIDs(kind string, ids []string, report *Report) {
	positions := make(map[string][]int)
	var order []string
	for i, id := range ids {
		key := models.CanonicalID(id)
		if key == "" {
			continue
		}
		if _, seen := positions[key]; !seen {
			order = append(order, key)
		}
		positions[key] = append(positions[key], i+1)
	}
	for _, key := range order {
		if rows := positions[key]; len(rows) > 1 {
			report.errorf("%s id '%s' is duplicated (rows %s).", kind, key, joinPositions(rows))
		}
	}
}

func productTaxonomy(c *models.Case, p *models.Product) (string, string, string) {
	if hasAny(p.Category1, p.Category2, p.Modality) {
		return p.Category1, p.Category2, p.Modality
	}
	return c.Category1, c.Category2, c.Modality
}

func productPrefix(i int, p *models.Product) string {
	return fmt.Sprintf("Product '%s': ", displayID(i, p))
}

func displayID(i int, p *models.Product) string {
	if id := strings.TrimSpace(p.ID); id != "" {
		return id
	}
	return fmt.Sprintf("#%d", i+1)
}

func canonicalSet(n int, id func(int) string) map[string]bool {
	set := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if key := models.CanonicalID(id(i)); key != "" {
			set[key] = true
		}
	}
	return set
}

func hasAny(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func tripleEqual(a1, a2, a3, b1, b2, b3 string) bool {
	eq := func(a, b string) bool {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	return eq(a1, b1) && eq(a2, b2) && eq(a3, b3)
}

func joinPositions(rows []int) string {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = fmt.Sprintf("%d", row)
	}
	if len(parts) == 2 {
		return parts[0] + " and " + parts[1]
	}
	return strings.Join(parts, ", ")
}
