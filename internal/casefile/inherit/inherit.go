// Package inherit copies the vetted subset of case-level fields into a
// newly created product: the taxonomy triple, the channel and process, and
// the occurrence/discovery date pair.
package inherit

import (
	"slices"
	"strings"
	"time"

	"casefile/internal/casefile/models"
	"casefile/internal/catalog"
)

// Canonical keys of the fields the copier can produce.
const (
	FieldCategory1      = "category1"
	FieldCategory2      = "category2"
	FieldModality       = "modality"
	FieldChannel        = "channel"
	FieldProcess        = "process"
	FieldOccurrenceDate = "occurrence_date"
	FieldDiscoveryDate  = "discovery_date"
)

const dateLayout = "2006-01-02"

// Result is a pure snapshot: mutating the source case after the copy does
// not affect it.
type Result struct {
	Values        map[string]string `json:"values"`
	MissingFields []string          `json:"missing_fields"`
	InvalidFields []string          `json:"invalid_fields"`
}

// CopyCaseFields validates and snapshots the inheritable case fields.
//
// The taxonomy triple cascades: an absent or invalid level stops the copy of
// the levels below it. Channel and process are checked against their
// catalogs independently. The two dates are validated individually; only
// when both parse is chronology checked, and a reversed pair invalidates
// both dates even though each parsed on its own.
func CopyCaseFields(c *models.Case) Result {
	result := Result{Values: make(map[string]string)}

	copyTaxonomy(c, &result)
	copyCatalogField(c.Channel, FieldChannel, catalog.Channels, &result)
	copyCatalogField(c.Process, FieldProcess, catalog.Processes, &result)
	copyDates(c, &result)
	return result
}

func copyCatalogField(raw, field string, entries []string, result *Result) {
	text := strings.TrimSpace(raw)
	if text == "" {
		result.MissingFields = append(result.MissingFields, field)
		return
	}
	if !slices.Contains(entries, text) {
		result.InvalidFields = append(result.InvalidFields, field)
		return
	}
	result.Values[field] = text
}

func copyTaxonomy(c *models.Case, result *Result) {
	cat1 := strings.TrimSpace(c.Category1)
	if cat1 == "" {
		result.MissingFields = append(result.MissingFields, FieldCategory1)
		return
	}
	level2, known := catalog.Taxonomy[cat1]
	if !known {
		result.InvalidFields = append(result.InvalidFields, FieldCategory1)
		return
	}
	result.Values[FieldCategory1] = cat1

	cat2 := strings.TrimSpace(c.Category2)
	if cat2 == "" {
		result.MissingFields = append(result.MissingFields, FieldCategory2)
		return
	}
	modalities, known := level2[cat2]
	if !known {
		result.InvalidFields = append(result.InvalidFields, FieldCategory2)
		return
	}
	result.Values[FieldCategory2] = cat2

	modality := strings.TrimSpace(c.Modality)
	if modality == "" {
		result.MissingFields = append(result.MissingFields, FieldModality)
		return
	}
	for _, m := range modalities {
		if m == modality {
			result.Values[FieldModality] = modality
			return
		}
	}
	result.InvalidFields = append(result.InvalidFields, FieldModality)
}

func copyDates(c *models.Case, result *Result) {
	occurrence, occOK := copyDate(c.OccurrenceDate, FieldOccurrenceDate, result)
	discovery, discOK := copyDate(c.DiscoveryDate, FieldDiscoveryDate, result)
	if !occOK || !discOK {
		return
	}
	if !occurrence.Before(discovery) {
		delete(result.Values, FieldOccurrenceDate)
		delete(result.Values, FieldDiscoveryDate)
		result.InvalidFields = append(result.InvalidFields, FieldOccurrenceDate, FieldDiscoveryDate)
	}
}

func copyDate(raw, field string, result *Result) (time.Time, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		result.MissingFields = append(result.MissingFields, field)
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, text)
	if err != nil {
		result.InvalidFields = append(result.InvalidFields, field)
		return time.Time{}, false
	}
	result.Values[field] = text
	return parsed, true
}

// Apply writes the copied values onto a product. Fields absent from the
// snapshot are left untouched.
func Apply(result Result, p *models.Product) {
	if v, ok := result.Values[FieldCategory1]; ok {
		p.Category1 = v
	}
	if v, ok := result.Values[FieldCategory2]; ok {
		p.Category2 = v
	}
	if v, ok := result.Values[FieldModality]; ok {
		p.Modality = v
	}
	if v, ok := result.Values[FieldChannel]; ok {
		p.Channel = v
	}
	if v, ok := result.Values[FieldProcess]; ok {
		p.Process = v
	}
	if v, ok := result.Values[FieldOccurrenceDate]; ok {
		p.OccurrenceDate = v
	}
	if v, ok := result.Values[FieldDiscoveryDate]; ok {
		p.DiscoveryDate = v
	}
}
