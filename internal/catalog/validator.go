package catalog

import (
	"fmt"
	"strings"
)

func trim(value string) string { return strings.TrimSpace(value) }

func contains(haystack, needle string) bool { return strings.Contains(haystack, needle) }

// RequiredText reports "" when the value is non-blank, else the standard
// required-field message for the label.
func RequiredText(value, label string) string {
	if trim(value) == "" {
		return fmt.Sprintf("Must enter %s.", label)
	}
	return ""
}

// Validate checks a value against a closed catalog. Blank values pass when
// allowBlank is set; otherwise the required-field message is returned.
// Membership is exact (catalogs store the canonical spelling).
func Validate(value, label string, entries []string, allowBlank bool) string {
	text := trim(value)
	if text == "" {
		if allowBlank {
			return ""
		}
		return fmt.Sprintf("Must enter %s.", label)
	}
	for _, entry := range entries {
		if entry == text {
			return ""
		}
	}
	return fmt.Sprintf("%s '%s' is not in the CM catalog.", label, text)
}

// ValidateMultiSelection checks that at least one option was picked and that
// every `;`-separated token belongs to the catalog.
func ValidateMultiSelection(value, label string, entries []string) string {
	if trim(value) == "" {
		return fmt.Sprintf("Must select at least one option in %s.", label)
	}
	for _, token := range strings.Split(value, ";") {
		token = trim(token)
		if token == "" {
			continue
		}
		if msg := Validate(token, label, entries, false); msg != "" {
			return msg
		}
	}
	return ""
}

// TaxonomyResult reports each level of the taxonomy triple independently.
// A level is only checked against the tree when its parents validated; an
// orphaned child gets the dedicated "cannot be validated" message.
type TaxonomyResult struct {
	Category1 string
	Category2 string
	Modality  string
}

// OK reports whether all three levels validated.
func (r TaxonomyResult) OK() bool {
	return r.Category1 == "" && r.Category2 == "" && r.Modality == ""
}

// Messages returns the non-empty diagnostics in level order.
func (r TaxonomyResult) Messages() []string {
	var msgs []string
	for _, m := range []string{r.Category1, r.Category2, r.Modality} {
		if m != "" {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// ValidateTaxonomy validates a category1/category2/modality triple against
// the taxonomy tree with cascade semantics.
func ValidateTaxonomy(cat1, cat2, modality string) TaxonomyResult {
	var result TaxonomyResult
	cat1, cat2, modality = trim(cat1), trim(cat2), trim(modality)

	level2, cat1Known := Taxonomy[cat1]
	switch {
	case cat1 == "":
		result.Category1 = "Must enter category level 1."
	case !cat1Known:
		result.Category1 = fmt.Sprintf("Category level 1 '%s' is not in the CM catalog.", cat1)
	}

	modalities, cat2Known := level2[cat2]
	switch {
	case cat2 == "":
		result.Category2 = "Must enter category level 2."
	case !cat1Known:
		result.Category2 = fmt.Sprintf("Category level 2 '%s' cannot be validated because category level 1 is invalid.", cat2)
	case !cat2Known:
		result.Category2 = fmt.Sprintf("Category level 2 '%s' does not belong to category '%s' in the CM catalog.", cat2, cat1)
	}

	switch {
	case modality == "":
		result.Modality = "Must enter the modality."
	case !cat1Known || !cat2Known:
		result.Modality = fmt.Sprintf("Modality '%s' cannot be validated because the registered categories are invalid.", modality)
	default:
		found := false
		for _, m := range modalities {
			if m == modality {
				found = true
				break
			}
		}
		if !found {
			result.Modality = fmt.Sprintf("Modality '%s' does not belong to category '%s'/'%s' in the CM catalog.", modality, cat1, cat2)
		}
	}
	return result
}

// IsCommercialChannel reports whether a collaborator's division/area pair
// falls under the commercial channel predicate, which makes agency name and
// code mandatory. Matching is accent-stripped and case-insensitive.
func IsCommercialChannel(division, area string) bool {
	d := NormalizeKey(division)
	a := NormalizeKey(area)
	divisionMatches := contains(d, "dca") || contains(d, "canales de atencion")
	return divisionMatches && contains(a, "area comercial")
}
