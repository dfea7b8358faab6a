// Package catalog holds the closed catalogs the engine validates against.
//
// Every table here is a read-only lookup supplied to the engine; nothing in
// this package mutates at runtime. Catalog values keep their upstream CM
// spelling (Spanish), canonical field keys are English.
package catalog

// Taxonomy is the three-level classification tree:
// category1 -> category2 -> modalities.
var Taxonomy = map[string]map[string][]string{
	"Riesgo de Fraude": {
		"Fraude Interno": {
			"Apropiación de fondos",
			"Transferencia ilegal de fondos",
			"Solicitud fraudulenta",
			"Hurto",
			"Fraude de venta de productos/servicios",
		},
		"Fraude Externo": {
			"Apropiación de fondos",
			"Estafa",
			"Extorsión",
			"Fraude en valorados",
			"Solicitud fraudulenta",
		},
	},
	"Riesgo de Ciberseguridad": {
		"Perdida de Confidencialidad": {
			"Robo de información",
			"Revelación de secreto bancario",
		},
		"Perdida de Disponibilidad": {
			"Destrucción de información",
			"Interrupción de servicio",
		},
		"Perdida de Integridad": {
			"Modificación no autorizada de información",
			"Operaciones no autorizadas",
		},
	},
	"Riesgo Legal y Cumplimiento": {
		"Abuso del mercado": {
			"Conflicto de interés",
			"Manipulación de mercado",
		},
		"Conducta de mercado": {
			"Gestión de reclamos",
			"Malas prácticas de negocio",
		},
		"Corrupción": {
			"Cohecho público",
			"Corrupción entre privados",
		},
		"Cumplimiento Normativo": {
			"Implementación de normas",
			"Reportes y requerimientos regulatorios",
		},
	},
}

// Channels lists the accepted case/product channels.
var Channels = []string{
	"A través de funcionario",
	"Agencias",
	"App IO",
	"Agentes BCP",
	"Banca Móvil",
	"Centro de contacto",
	"Homebanking",
	"Kioskos",
	"Mesa de partes",
	"Página Web Mi Negocio",
	"Página Web Yape",
	"Web Ventas Digitales",
	"No aplica",
}

// Processes lists the accepted impacted processes.
var Processes = []string{
	"Activación de Tarjeta de crédito",
	"Actualización de datos de cliente",
	"Afiliación al servicio",
	"Bloqueo de cuentas",
	"Compras de deuda de Tarjeta de Crédito",
	"Venta de crédito Pyme",
	"Venta de crédito hipotecario",
	"Venta de crédito comercial",
	"Venta de crédito vehicular",
	"Venta de Leasing",
	"Venta de descuento de letras",
	"Venta de Efectivo Preferente",
	"Venta de crédito digital",
	"Venta en Banca Móvil",
	"Venta en Homebanking",
}

// ProductTypes is the closed product-type catalog. Membership checks are
// accent- and case-insensitive (see ResolveProductType).
var ProductTypes = []string{
	"Adelanto de sueldo",
	"autodesembolso",
	"Billeteras digitales",
	"Cambios Spot",
	"Carta fianza",
	"Cartas Crédito de Exportación",
	"Cartas de Crédito de Importación",
	"Certificados bancarios",
	"Cheque de gerencia",
	"Cobranza de Exportación",
	"Cobranza de importación",
	"Cobranza de letras",
	"Comercio exterior",
	"Crédito efectivo",
	"Crédito flexible",
	"Crédito hipotecario",
	"Crédito personal",
	"Crédito Pyme",
	"Crédito vehicular",
	"Crédito a la construcción",
	"Crédito comercial",
	"CTS",
	"Cuenta a plazo",
	"Cuenta corriente",
	"Cuenta de ahorro",
	"Débito automático",
	"Depósito a plazo",
	"Depósito estructurado DTV",
	"Descuento de letras",
	"Factoring electrónico",
	"Facturas negociables",
	"Financiamiento electrónico de Compras FEC",
	"Fondos mutuos",
	"Forex Spot",
	"Forwards",
	"Forwards OM",
	"Garantías",
	"Leasing",
	"Letras y Facturas",
	"Mediano Plazo",
	"Opciones tipo de cambio",
	"Pago de haberes",
	"Pago electrónico de tributos y obligaciones",
	"Partidas pendientes",
	"Remesas migratorias",
	"Seguros optativos",
	"Servicios de recaudación",
	"Swaps",
	"Tarjeta de crédito",
	"Tarjeta de crédito digital iO",
	"Tarjeta de débito",
	"Tarjeta Solución Negocio",
	"Telecrédito",
	"Transferencias país",
	"Transferencias al exterior",
	"Transferencias del exterior",
	"Transferencias interbancarias",
	"Transversal a varios productos Banca Personas y Empresas",
	"Yape",
	"Reclamos",
	"No aplica",
}

var (
	ReportTypes       = []string{"Gerencia", "Interno", "Credicorp"}
	IDTypes           = []string{"DNI", "Pasaporte", "RUC", "Carné de extranjería", "No aplica"}
	ClientFlags       = []string{"Involucrado", "Afectado", "No aplica"}
	CollaboratorFlags = []string{"Involucrado", "Relacionado", "No aplica"}
	FaultTypes        = []string{"Inconducta funcional", "Negligencia funcional", "No aplica"}
	SanctionTypes     = []string{
		"Amonestación",
		"Sin sanción - Cesado",
		"Despido",
		"Desvinculación",
		"Exhortación",
		"No aplica",
		"Renuncia",
		"Suspensión 1 día",
		"Suspensión 2 días",
		"Suspensión de 3 días",
		"Suspensión de 4 días",
		"Suspensión de 5 días",
	}
	Currencies    = []string{"Soles", "Dólares", "No aplica"}
	Criticalities = []string{"Bajo", "Moderado", "Relevante", "Alto", "Crítico"}

	// AccionadoOptions is the closed catalog for the client multi-select.
	AccionadoOptions = []string{
		"Tribu Producto Afectado",
		"Tribu Canal Impactado",
		"Centro de Contacto",
		"Canal presencial",
		"Fuerza de Ventas",
		"Mesa de Partes",
		"Unidad de Fraude",
		"No aplica",
	}
)

// AnalyticCatalog maps analytic codes to analytic names. A claim's name and
// code must resolve to the same entry.
var AnalyticCatalog = map[string]string{
	"4300000000": "Analítica crédito preventivo",
	"4300000001": "Analítica catálogo",
	"4300000002": "Analítica contingencia crédito",
	"4300000010": "Auto analítica",
	"4310000001": "Analítica H",
	"4500000001": "Analítica de fraude externo",
	"4500000002": "Analítica I",
	"4600000002": "Analítica contingencia crédito",
}

// FindAnalyticByCode returns the catalog entry for an exact code match.
func FindAnalyticByCode(code string) (string, string, bool) {
	trimmed := trim(code)
	if trimmed == "" {
		return "", "", false
	}
	name, ok := AnalyticCatalog[trimmed]
	if !ok {
		return "", "", false
	}
	return trimmed, name, true
}

// FindAnalyticByName matches an analytic name accent- and case-insensitively.
func FindAnalyticByName(name string) (string, string, bool) {
	normalized := NormalizeKey(name)
	if normalized == "" {
		return "", "", false
	}
	for code, label := range AnalyticCatalog {
		if NormalizeKey(label) == normalized {
			return code, label, true
		}
	}
	return "", "", false
}

var productTypeIndex = func() map[string]string {
	index := make(map[string]string, len(ProductTypes))
	for _, item := range ProductTypes {
		index[NormalizeKey(item)] = item
	}
	return index
}()

// ResolveProductType maps free text to the canonical catalog spelling, or ""
// when the value is not in the catalog.
func ResolveProductType(value string) string {
	return productTypeIndex[NormalizeKey(value)]
}

// ProductFamily is the coarse classification driving id-format and
// contingency rules.
type ProductFamily int

const (
	FamilyOther ProductFamily = iota
	FamilyCard
	FamilyCredit
	FamilyAccount
)

// FamilyOf classifies a product type by accent-stripped keyword match.
func FamilyOf(productType string) ProductFamily {
	normalized := NormalizeKey(productType)
	switch {
	case contains(normalized, "tarjeta"):
		return FamilyCard
	case contains(normalized, "credito"):
		return FamilyCredit
	case contains(normalized, "cuenta"), contains(normalized, "deposito"), contains(normalized, "cts"):
		return FamilyAccount
	default:
		return FamilyOther
	}
}

// RequiresFullContingency reports whether the family forces
// contingency == investigated (credit and card products).
func RequiresFullContingency(productType string) bool {
	f := FamilyOf(productType)
	return f == FamilyCard || f == FamilyCredit
}
