// Package reconcile merges externally supplied rows (bulk import, paste)
// into the case graph without clobbering user-entered data.
package reconcile

import (
	"casefile/internal/catalog"
)

// Section names an importable collection of the case graph.
type Section string

const (
	SectionClients  Section = "clients"
	SectionTeam     Section = "team"
	SectionProducts Section = "products"
	SectionRisks    Section = "risks"
	SectionNorms    Section = "norms"
)

// Strategy controls how row values are merged into an existing entity.
type Strategy int

const (
	// Overwrite writes every non-absent row value over the entity.
	Overwrite Strategy = iota
	// PreserveNonBlank only fills fields the user has not typed into yet.
	PreserveNonBlank
	// CreateOnly creates missing entities and leaves existing ones alone.
	CreateOnly
)

// aliases maps legacy and Spanish header names to canonical row keys. Keys
// are matched after accent stripping and lower-casing; unknown headers are
// ignored, never errors.
var aliases = map[string]string{
	"id":              "id",
	"id_caso":         "case_id",
	"case_id":         "case_id",
	"id_cliente":      "client_id",
	"client_id":       "client_id",
	"id_producto":     "product_id",
	"product_id":      "product_id",
	"id_colaborador":  "collaborator_id",
	"collaborator_id": "collaborator_id",
	"id_riesgo":       "risk_id",
	"risk_id":         "risk_id",
	"id_norma":        "norm_id",
	"norm_id":         "norm_id",

	"tipo_documento": "id_type",
	"id_type":        "id_type",
	"indicador":      "flag",
	"flag":           "flag",
	"telefonos":      "phones",
	"phones":         "phones",
	"correos":        "emails",
	"emails":         "emails",
	"direcciones":    "addresses",
	"addresses":      "addresses",
	"accionado":      "accionado",

	"division":       "division",
	"area":           "area",
	"servicio":       "service",
	"service":        "service",
	"puesto":         "role",
	"role":           "role",
	"agencia":        "agency_name",
	"agency_name":    "agency_name",
	"codigo_agencia": "agency_code",
	"agency_code":    "agency_code",
	"tipo_falta":     "fault_type",
	"fault_type":     "fault_type",
	"sancion":        "sanction_type",
	"sanction_type":  "sanction_type",

	"tipo_producto": "type",
	"type":          "type",
	"categoria_1":   "category1",
	"category1":     "category1",
	"categoria_2":   "category2",
	"category2":     "category2",
	"modalidad":     "modality",
	"modality":      "modality",
	"canal":         "channel",
	"channel":       "channel",
	"proceso":       "process",
	"process":       "process",
	"moneda":        "currency",
	"currency":      "currency",

	"fecha_ocurrencia":     "occurrence_date",
	"occurrence_date":      "occurrence_date",
	"fecha_descubrimiento": "discovery_date",
	"discovery_date":       "discovery_date",
	"fecha_vigencia":       "effective_date",
	"effective_date":       "effective_date",

	"monto_investigado": "investigated",
	"investigated":      "investigated",
	"monto_perdida":     "loss",
	"perdida":           "loss",
	"loss":              "loss",
	"monto_falla":       "failure",
	"falla":             "failure",
	"failure":           "failure",
	"contingencia":      "contingency",
	"contingency":       "contingency",
	"recuperado":        "recovered",
	"recovered":         "recovered",
	"pagado":            "paid",
	"paid":              "paid",

	"monto_asignado":  "assigned_amount",
	"assigned_amount": "assigned_amount",
	"involucrados":    "involvements",
	"involvements":    "involvements",

	"lider":               "leader",
	"leader":              "leader",
	"descripcion":         "description",
	"description":         "description",
	"criticidad":          "criticality",
	"criticality":         "criticality",
	"exposicion_residual": "residual_exposure",
	"residual_exposure":   "residual_exposure",
	"planes_accion":       "action_plan_ids",
	"action_plan_ids":     "action_plan_ids",

	"seccion": "section",
	"section": "section",
	"detalle": "detail",
	"detail":  "detail",
}

// ParseStrategy maps the wire names of the merge strategies. Blank defaults
// to PreserveNonBlank, the safe choice for bulk sources.
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "", "preserve", "preserve_non_blank":
		return PreserveNonBlank, true
	case "overwrite":
		return Overwrite, true
	case "create_only":
		return CreateOnly, true
	default:
		return PreserveNonBlank, false
	}
}

// ResolveAliases rewrites a raw row to canonical keys, dropping headers no
// alias covers.
func ResolveAliases(row map[string]string) map[string]string {
	resolved := make(map[string]string, len(row))
	for key, value := range row {
		canonical, known := aliases[catalog.NormalizeKey(key)]
		if !known {
			continue
		}
		resolved[canonical] = value
	}
	return resolved
}
