package catalog

import "fmt"

// TeamHierarchy is the division -> area -> service -> role tree used to
// constrain collaborator org fields. Values keep their upstream CM spelling.
var TeamHierarchy = map[string]map[string]map[string][]string{
	"GCIA DE DIVISION CANALES DE ATENCION": {
		"AREA COMERCIAL LIMA 1": {
			"AREA LIMA 1 - REGION 62": {
				"EJECUTIVO PYME",
				"ASESOR DEL CLIENTE LIMA",
				"ASISTENTE BEX DIGITAL",
				"SUPERVISOR DE ASESOR DE CLIENTE",
				"GERENTE DE AGENCIA",
			},
			"AREA LIMA 2 - REGION 03": {
				"ASESOR DEL CLIENTE LIMA",
				"ASESOR DEL CLIENTE PROV",
				"EJECUTIVO PYME",
				"EJECUTIVO PYME SENIOR",
				"SUPERVISOR DE ASESOR DE CLIENTE",
				"GERENTE DE AGENCIA",
			},
			"GCIA LINEA SERVICIO DIGITALIDAD Y VENTAS": {
				"SUPERVISOR AUTOR Y BLOQUEOS BXT II -LIMA",
			},
		},
		"GERENCIA ZONAL DE VENTAS Y TLMK I": {
			"GERENCIA INBOUND LINEAS SERVICIO Y VENTA": {
				"ASESOR OUTBOUND PYME",
				"ASESOR DEL CLIENTE LIMA",
				"GERENTE DE AGENCIA",
			},
		},
	},
	"GERENCIA DE NEGOCIOS 528": {
		"GERENCIA DE VENTAS TRANSACCIONALES I": {
			"SERVICIO DE VENTAS PYME": {
				"EJECUTIVO DE VENTAS PYME",
				"SUPERVISOR DE VENTAS PYME",
			},
		},
	},
	"DIVISION DE RIESGOS": {
		"AREA DE PREVENCION DE FRAUDE": {
			"UNIDAD DE INVESTIGACIONES": {
				"ANALISTA DE FRAUDE",
				"INVESTIGADOR SENIOR",
				"SUPERVISOR DE INVESTIGACIONES",
			},
			"UNIDAD DE MONITOREO": {
				"ANALISTA DE MONITOREO",
				"SUPERVISOR DE MONITOREO",
			},
		},
	},
}

// HierarchyResult reports each collaborator org level independently, with
// the same cascade semantics as the taxonomy triple.
type HierarchyResult struct {
	Division string
	Area     string
	Service  string
	Role     string
}

// Messages returns the non-empty diagnostics in level order.
func (r HierarchyResult) Messages() []string {
	var msgs []string
	for _, m := range []string{r.Division, r.Area, r.Service, r.Role} {
		if m != "" {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// ValidateTeamHierarchy validates a division/area/service/role path against
// the team hierarchy. All four levels are required.
func ValidateTeamHierarchy(division, area, service, role string) HierarchyResult {
	var result HierarchyResult
	division, area, service, role = trim(division), trim(area), trim(service), trim(role)

	areas, divisionKnown := TeamHierarchy[division]
	switch {
	case division == "":
		result.Division = "Must enter the collaborator's division."
	case !divisionKnown:
		result.Division = fmt.Sprintf("Division '%s' is not in the CM catalog.", division)
	}

	services, areaKnown := areas[area]
	switch {
	case area == "":
		result.Area = "Must enter the collaborator's area."
	case !divisionKnown:
		result.Area = fmt.Sprintf("Area '%s' cannot be validated because the division is invalid.", area)
	case !areaKnown:
		result.Area = fmt.Sprintf("Area '%s' does not belong to division '%s'.", area, division)
	}

	roles, serviceKnown := services[service]
	switch {
	case service == "":
		result.Service = "Must enter the collaborator's service."
	case !divisionKnown || !areaKnown:
		result.Service = fmt.Sprintf("Service '%s' cannot be validated because the parent levels are invalid.", service)
	case !serviceKnown:
		result.Service = fmt.Sprintf("Service '%s' does not belong to area '%s'.", service, area)
	}

	switch {
	case role == "":
		result.Role = "Must enter the collaborator's role."
	case !divisionKnown || !areaKnown || !serviceKnown:
		result.Role = fmt.Sprintf("Role '%s' cannot be validated because the parent levels are invalid.", role)
	default:
		found := false
		for _, r := range roles {
			if r == role {
				found = true
				break
			}
		}
		if !found {
			result.Role = fmt.Sprintf("Role '%s' does not belong to service '%s'.", role, service)
		}
	}
	return result
}
