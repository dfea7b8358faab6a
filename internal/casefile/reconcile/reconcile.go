package reconcile

import (
	"fmt"
	"strings"

	"casefile/internal/casefile/models"
	"casefile/internal/casefile/money"
	"casefile/internal/casefile/registry"
	dErrors "casefile/pkg/domain-errors"
)

// DetailCatalogs are optional id -> field-map lookups used to hydrate
// entities auto-created as cross-references. Keys are canonical ids; field
// maps use canonical row keys (ResolveAliases is applied defensively).
type DetailCatalogs struct {
	Clients  map[string]map[string]string
	Team     map[string]map[string]string
	Products map[string]map[string]string
}

// Outcome reports what one row did to the case graph.
type Outcome struct {
	Section Section `json:"section"`
	// ID is the canonical id of the target entity, "" when the row never
	// resolved to one.
	ID      string `json:"id"`
	Created bool   `json:"created"`
	Changed bool   `json:"changed"`
	// Diagnostics are row-level problems (missing id, malformed packed
	// involvements, bad amounts). The row may still have partially applied.
	Diagnostics []string `json:"diagnostics,omitempty"`
	// MissingDetail lists ids auto-created from a bare cross-reference with
	// no detail-catalog entry to hydrate from.
	MissingDetail []string `json:"missing_detail,omitempty"`
}

func (o *Outcome) diagnosef(format string, args ...any) {
	o.Diagnostics = append(o.Diagnostics, fmt.Sprintf(format, args...))
}

// Reconciler merges rows into one open case through its registries.
type Reconciler struct {
	kase    *models.Case
	regs    *registry.Set
	details DetailCatalogs
	riskSeq int
}

// New builds a reconciler over the case and its registry set.
func New(c *models.Case, regs *registry.Set, details DetailCatalogs) *Reconciler {
	return &Reconciler{kase: c, regs: regs, details: details}
}

// Reconcile applies one raw row to the section's collection: aliases are
// resolved, the target entity is found or created through the registry, and
// fields merge under the given strategy. Re-applying the same row is a
// no-op.
func (r *Reconciler) Reconcile(section Section, row map[string]string, strategy Strategy) (Outcome, error) {
	resolved := ResolveAliases(row)
	switch section {
	case SectionClients:
		return r.reconcileClient(resolved, strategy), nil
	case SectionTeam:
		return r.reconcileTeamMember(resolved, strategy), nil
	case SectionProducts:
		return r.reconcileProduct(resolved, strategy), nil
	case SectionRisks:
		return r.reconcileRisk(resolved, strategy), nil
	case SectionNorms:
		return r.reconcileNorm(resolved, strategy), nil
	default:
		return Outcome{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown import section %q", section)
	}
}

func (r *Reconciler) reconcileClient(row map[string]string, strategy Strategy) Outcome {
	out := Outcome{Section: SectionClients}
	id := rowID(row, "client_id")
	if id == "" {
		out.diagnosef("Row has no client id.")
		return out
	}

	client, created := r.client(id, nil)
	out.ID, out.Created = models.CanonicalID(client.ID), created

	m := merger{strategy: strategy, created: created}
	m.set(&client.IDType, row, "id_type")
	m.set(&client.Flag, row, "flag")
	m.set(&client.Phones, row, "phones")
	m.set(&client.Emails, row, "emails")
	m.set(&client.Addresses, row, "addresses")
	m.set(&client.Accionado, row, "accionado")
	out.Changed = m.changed
	return out
}

func (r *Reconciler) reconcileTeamMember(row map[string]string, strategy Strategy) Outcome {
	out := Outcome{Section: SectionTeam}
	id := rowID(row, "collaborator_id")
	if id == "" {
		out.diagnosef("Row has no collaborator id.")
		return out
	}

	member, created := r.teamMember(id, nil)
	out.ID, out.Created = models.CanonicalID(member.ID), created

	m := merger{strategy: strategy, created: created}
	m.set(&member.Flag, row, "flag")
	m.set(&member.Division, row, "division")
	m.set(&member.Area, row, "area")
	m.set(&member.Service, row, "service")
	m.set(&member.Role, row, "role")
	m.set(&member.AgencyName, row, "agency_name")
	m.set(&member.AgencyCode, row, "agency_code")
	m.set(&member.FaultType, row, "fault_type")
	m.set(&member.SanctionType, row, "sanction_type")
	out.Changed = m.changed
	return out
}

func (r *Reconciler) reconcileProduct(row map[string]string, strategy Strategy) Outcome {
	out := Outcome{Section: SectionProducts}
	id := rowID(row, "product_id")
	if id == "" {
		out.diagnosef("Row has no product id.")
		return out
	}

	product, created := r.product(id, &out)
	out.ID, out.Created = models.CanonicalID(product.ID), created

	m := merger{strategy: strategy, created: created}
	m.set(&product.Type, row, "type")
	m.set(&product.Category1, row, "category1")
	m.set(&product.Category2, row, "category2")
	m.set(&product.Modality, row, "modality")
	m.set(&product.Channel, row, "channel")
	m.set(&product.Process, row, "process")
	m.set(&product.Currency, row, "currency")
	m.set(&product.OccurrenceDate, row, "occurrence_date")
	m.set(&product.DiscoveryDate, row, "discovery_date")
	m.set(&product.Investigated, row, "investigated")
	m.set(&product.Loss, row, "loss")
	m.set(&product.Failure, row, "failure")
	m.set(&product.Contingency, row, "contingency")
	m.set(&product.Recovered, row, "recovered")
	m.set(&product.Paid, row, "paid")

	if clientID, ok := row["client_id"]; ok && strings.TrimSpace(clientID) != "" {
		r.client(clientID, &out)
		m.set(&product.ClientID, row, "client_id")
	}

	if packed, ok := row["involvements"]; ok {
		r.applyPacked(product, packed, &out)
	}
	if amount, ok := row["assigned_amount"]; ok && strings.TrimSpace(amount) != "" {
		r.applyAssigned(product, row["collaborator_id"], amount, &out)
	}

	out.Changed = out.Changed || m.changed
	return out
}

func (r *Reconciler) reconcileRisk(row map[string]string, strategy Strategy) Outcome {
	out := Outcome{Section: SectionRisks}
	id := rowID(row, "risk_id")
	if id == "" {
		id = r.nextRiskID()
	}

	risk, created := r.risk(id)
	out.ID, out.Created = models.CanonicalID(risk.ID), created

	m := merger{strategy: strategy, created: created}
	m.set(&risk.Leader, row, "leader")
	m.set(&risk.Description, row, "description")
	m.set(&risk.Criticality, row, "criticality")
	m.set(&risk.ResidualExposure, row, "residual_exposure")
	m.set(&risk.ActionPlanIDs, row, "action_plan_ids")
	out.Changed = m.changed
	return out
}

func (r *Reconciler) reconcileNorm(row map[string]string, strategy Strategy) Outcome {
	out := Outcome{Section: SectionNorms}
	id := rowID(row, "norm_id")
	if id == "" {
		out.diagnosef("Row has no norm id.")
		return out
	}

	norm, created := r.norm(id)
	out.ID, out.Created = models.CanonicalID(norm.ID), created

	m := merger{strategy: strategy, created: created}
	m.set(&norm.EffectiveDate, row, "effective_date")
	m.set(&norm.Description, row, "description")
	m.set(&norm.Section, row, "section")
	m.set(&norm.Detail, row, "detail")
	out.Changed = m.changed
	return out
}

// applyPacked resolves an "id:amount;id:amount" involvement string against
// the product.
func (r *Reconciler) applyPacked(product *models.Product, packed string, out *Outcome) {
	for _, pair := range strings.Split(packed, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, amount, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(id) == "" {
			out.diagnosef("Involvement entry '%s' must have the form id:amount.", pair)
			continue
		}
		r.applyAssigned(product, id, amount, out)
	}
}

// applyAssigned writes a normalized amount onto the involvement for the
// given collaborator, appending the involvement if missing. A blank
// collaborator id targets the product's first existing involvement.
func (r *Reconciler) applyAssigned(product *models.Product, collaboratorID, rawAmount string, out *Outcome) {
	amount, msg := money.Normalize(rawAmount, "the assigned amount", true)
	if msg != "" {
		out.Diagnostics = append(out.Diagnostics, msg)
		return
	}

	var inv *models.Involvement
	if canonical := models.CanonicalID(collaboratorID); canonical != "" {
		r.teamMember(collaboratorID, out)
		inv = product.FindCollaboratorInvolvement(canonical)
		if inv == nil {
			inv = &models.Involvement{PartyID: strings.TrimSpace(collaboratorID)}
			product.CollaboratorInvolvements = append(product.CollaboratorInvolvements, inv)
			out.Changed = true
		}
	} else {
		if len(product.CollaboratorInvolvements) == 0 {
			out.diagnosef("Assigned amount '%s' has no collaborator involvement to attach to.", strings.TrimSpace(rawAmount))
			return
		}
		inv = product.CollaboratorInvolvements[0]
	}

	if inv.Amount != amount.Text {
		inv.Amount = amount.Text
		out.Changed = true
	}
}

// client finds or creates a client. When created as a cross-reference
// (out != nil), detail-catalog hydration applies and ids without detail are
// reported on the outcome.
func (r *Reconciler) client(id string, out *Outcome) (*models.Client, bool) {
	if existing, ok := r.regs.Clients.Lookup(id); ok {
		return existing, false
	}
	client := &models.Client{ID: strings.TrimSpace(id)}
	r.kase.Clients = append(r.kase.Clients, client)
	r.regs.Clients.Upsert(client.ID, client)

	if out != nil {
		detail, found := r.details.Clients[models.CanonicalID(id)]
		if !found {
			out.MissingDetail = append(out.MissingDetail, models.CanonicalID(id))
		} else {
			fields := ResolveAliases(detail)
			hydrate(&client.IDType, fields, "id_type")
			hydrate(&client.Flag, fields, "flag")
			hydrate(&client.Phones, fields, "phones")
			hydrate(&client.Emails, fields, "emails")
			hydrate(&client.Addresses, fields, "addresses")
			hydrate(&client.Accionado, fields, "accionado")
		}
		out.Changed = true
	}
	return client, true
}

func (r *Reconciler) teamMember(id string, out *Outcome) (*models.TeamMember, bool) {
	if existing, ok := r.regs.Team.Lookup(id); ok {
		return existing, false
	}
	member := &models.TeamMember{ID: strings.TrimSpace(id)}
	r.kase.Team = append(r.kase.Team, member)
	r.regs.Team.Upsert(member.ID, member)

	if out != nil {
		detail, found := r.details.Team[models.CanonicalID(id)]
		if !found {
			out.MissingDetail = append(out.MissingDetail, models.CanonicalID(id))
		} else {
			fields := ResolveAliases(detail)
			hydrate(&member.Flag, fields, "flag")
			hydrate(&member.Division, fields, "division")
			hydrate(&member.Area, fields, "area")
			hydrate(&member.Service, fields, "service")
			hydrate(&member.Role, fields, "role")
			hydrate(&member.AgencyName, fields, "agency_name")
			hydrate(&member.AgencyCode, fields, "agency_code")
		}
		out.Changed = true
	}
	return member, true
}

func (r *Reconciler) product(id string, out *Outcome) (*models.Product, bool) {
	if existing, ok := r.regs.Products.Lookup(id); ok {
		return existing, false
	}
	product := &models.Product{ID: strings.TrimSpace(id)}
	r.kase.Products = append(r.kase.Products, product)
	r.regs.Products.Upsert(product.ID, product)

	if out != nil {
		if detail, found := r.details.Products[models.CanonicalID(id)]; found {
			fields := ResolveAliases(detail)
			hydrate(&product.Type, fields, "type")
			hydrate(&product.Currency, fields, "currency")
			hydrate(&product.Channel, fields, "channel")
			hydrate(&product.Process, fields, "process")
		}
	}
	return product, true
}

func (r *Reconciler) risk(id string) (*models.Risk, bool) {
	if existing, ok := r.regs.Risks.Lookup(id); ok {
		return existing, false
	}
	risk := &models.Risk{ID: strings.TrimSpace(id)}
	r.kase.Risks = append(r.kase.Risks, risk)
	r.regs.Risks.Upsert(risk.ID, risk)
	return risk, true
}

func (r *Reconciler) norm(id string) (*models.Norm, bool) {
	if existing, ok := r.regs.Norms.Lookup(id); ok {
		return existing, false
	}
	norm := &models.Norm{ID: strings.TrimSpace(id)}
	r.kase.Norms = append(r.kase.Norms, norm)
	r.regs.Norms.Upsert(norm.ID, norm)
	return norm, true
}

// nextRiskID generates RSK-NNNNNN identifiers, skipping ids already in use.
func (r *Reconciler) nextRiskID() string {
	for {
		r.riskSeq++
		id := fmt.Sprintf("RSK-%06d", r.riskSeq)
		if _, taken := r.regs.Risks.Lookup(id); !taken {
			return id
		}
	}
}

// merger applies the field-merge policy and tracks whether anything
// actually changed. A freshly created entity always takes row values.
type merger struct {
	strategy Strategy
	created  bool
	changed  bool
}

func (m *merger) set(target *string, row map[string]string, key string) {
	value, present := row[key]
	if !present {
		return
	}
	value = strings.TrimSpace(value)
	if !m.created {
		if m.strategy == CreateOnly {
			return
		}
		if m.strategy == PreserveNonBlank && strings.TrimSpace(*target) != "" {
			return
		}
	}
	if *target != value {
		*target = value
		m.changed = true
	}
}

func hydrate(target *string, fields map[string]string, key string) {
	if strings.TrimSpace(*target) != "" {
		return
	}
	if value, ok := fields[key]; ok {
		*target = strings.TrimSpace(value)
	}
}

// rowID picks the row's identifier: the section-specific key wins over the
// generic "id" header.
func rowID(row map[string]string, key string) string {
	if id := strings.TrimSpace(row[key]); id != "" {
		return id
	}
	return strings.TrimSpace(row["id"])
}
