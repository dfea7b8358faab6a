// Package models defines the in-memory case graph the engine mutates.
//
// All field values are kept as raw strings: rows arrive as string maps and
// diagnostics are produced against the text the user typed. Normalizers write
// canonical text back into these fields.
package models

// Case is the aggregate root. One case is open at a time; the service resets
// it on "new case".
type Case struct {
	ID             string `json:"id"`
	ReportType     string `json:"report_type"`
	Category1      string `json:"category1"`
	Category2      string `json:"category2"`
	Modality       string `json:"modality"`
	Channel        string `json:"channel"`
	Process        string `json:"process"`
	OccurrenceDate string `json:"occurrence_date"`
	DiscoveryDate  string `json:"discovery_date"`
	CostCenters    string `json:"cost_centers"`

	Clients  []*Client     `json:"clients"`
	Team     []*TeamMember `json:"team"`
	Products []*Product    `json:"products"`
	Risks    []*Risk       `json:"risks"`
	Norms    []*Norm       `json:"norms"`
}

// Client is an affected or involved customer.
type Client struct {
	ID        string `json:"id"`
	IDType    string `json:"id_type"`
	Flag      string `json:"flag"`
	Phones    string `json:"phones"`
	Emails    string `json:"emails"`
	Addresses string `json:"addresses"`
	Accionado string `json:"accionado"`
}

// TeamMember is a bank collaborator tied to the case.
type TeamMember struct {
	ID           string `json:"id"`
	Flag         string `json:"flag"`
	Division     string `json:"division"`
	Area         string `json:"area"`
	Service      string `json:"service"`
	Role         string `json:"role"`
	AgencyName   string `json:"agency_name"`
	AgencyCode   string `json:"agency_code"`
	FaultType    string `json:"fault_type"`
	SanctionType string `json:"sanction_type"`
}

// Product carries the six money fields plus its nested claims and
// involvements. Armed flips the first time any money field holds non-blank
// text and never flips back; aggregate checks stay silent until then.
type Product struct {
	ID             string `json:"id"`
	ClientID       string `json:"client_id"`
	Type           string `json:"type"`
	Category1      string `json:"category1"`
	Category2      string `json:"category2"`
	Modality       string `json:"modality"`
	Channel        string `json:"channel"`
	Process        string `json:"process"`
	Currency       string `json:"currency"`
	OccurrenceDate string `json:"occurrence_date"`
	DiscoveryDate  string `json:"discovery_date"`

	Investigated string `json:"investigated"`
	Loss         string `json:"loss"`
	Failure      string `json:"failure"`
	Contingency  string `json:"contingency"`
	Recovered    string `json:"recovered"`
	Paid         string `json:"paid"`

	Armed bool `json:"armed"`

	Claims                   []*Claim       `json:"claims"`
	CollaboratorInvolvements []*Involvement `json:"collaborator_involvements"`
	ClientInvolvements       []*Involvement `json:"client_involvements"`
}

// MoneyFields returns pointers to the six money fields keyed by their
// human-readable label, in validation order.
func (p *Product) MoneyFields() []MoneyField {
	return []MoneyField{
		{Label: "the investigated amount", Value: &p.Investigated},
		{Label: "the loss amount", Value: &p.Loss},
		{Label: "the failure amount", Value: &p.Failure},
		{Label: "the contingency amount", Value: &p.Contingency},
		{Label: "the recovered amount", Value: &p.Recovered},
		{Label: "the paid amount", Value: &p.Paid},
	}
}

// MoneyField pairs a money field's label with a pointer into the product so
// normalizers can write canonical text back.
type MoneyField struct {
	Label string
	Value *string
}

// FindCollaboratorInvolvement returns the involvement row for the given
// collaborator id, matching the registry's canonical (trim+upper) form.
func (p *Product) FindCollaboratorInvolvement(canonicalID string) *Involvement {
	for _, inv := range p.CollaboratorInvolvements {
		if CanonicalID(inv.PartyID) == canonicalID {
			return inv
		}
	}
	return nil
}

// Claim links a product to an analytic catalog entry.
type Claim struct {
	ID           string `json:"id"`
	AnalyticName string `json:"analytic_name"`
	AnalyticCode string `json:"analytic_code"`
}

// Involvement ties a collaborator or client to a product with an assigned
// amount.
type Involvement struct {
	PartyID string `json:"party_id"`
	Amount  string `json:"amount"`
}

// Risk is an operational risk raised from the case.
type Risk struct {
	ID               string `json:"id"`
	Leader           string `json:"leader"`
	Description      string `json:"description"`
	Criticality      string `json:"criticality"`
	ResidualExposure string `json:"residual_exposure"`
	ActionPlanIDs    string `json:"action_plan_ids"`
}

// Norm is a breached internal norm reference.
type Norm struct {
	ID            string `json:"id"`
	EffectiveDate string `json:"effective_date"`
	Description   string `json:"description"`
	Section       string `json:"section"`
	Detail        string `json:"detail"`
}
