// Package validate implements the cross-field rules of the engine: field
// formats, product and case money consistency, technical-key duplicate
// detection and the full-case report.
//
// Every check returns diagnostics as plain message strings ("" or an empty
// slice means valid); nothing here is a Go error.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"casefile/internal/catalog"
)

const dateLayout = "2006-01-02"

var (
	caseIDPattern       = regexp.MustCompile(`^\d{4}-\d{4}$`)
	dniPattern          = regexp.MustCompile(`^\d{8}$`)
	rucPattern          = regexp.MustCompile(`^\d{11}$`)
	passportPattern     = regexp.MustCompile(`^[A-Za-z0-9]{9,12}$`)
	teamIDPattern       = regexp.MustCompile(`^[A-Za-z]\d{5}$`)
	agencyCodePattern   = regexp.MustCompile(`^\d{6}$`)
	numericPattern      = regexp.MustCompile(`^\d+$`)
	alphanumericPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	claimIDPattern      = regexp.MustCompile(`^C\d{8}$`)
	analyticCodePattern = regexp.MustCompile(`^(43|45|46|56)\d{8}$`)
	riskCatalogPattern  = regexp.MustCompile(`^RSK-\d{6}$`)
	normIDPattern       = regexp.MustCompile(`^\d{4}\.\d{3}\.\d{2}\.\d{2}$`)
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern        = regexp.MustCompile(`^\+?\d{6,15}$`)
)

// CaseID checks the YYYY-NNNN case identifier.
func CaseID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Must enter the case id."
	}
	if !caseIDPattern.MatchString(id) {
		return fmt.Sprintf("Case id '%s' must have the format YYYY-NNNN.", id)
	}
	return ""
}

// ClientID checks a client identifier against the format its id-type
// demands. Unknown id-types only get a minimum-length check.
func ClientID(id, idType string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Must enter the client id."
	}
	switch strings.TrimSpace(idType) {
	case "DNI":
		if !dniPattern.MatchString(id) {
			return fmt.Sprintf("Client id '%s' must be an 8-digit DNI.", id)
		}
	case "RUC":
		if !rucPattern.MatchString(id) {
			return fmt.Sprintf("Client id '%s' must be an 11-digit RUC.", id)
		}
	case "Pasaporte", "Carné de extranjería":
		if !passportPattern.MatchString(id) {
			return fmt.Sprintf("Client id '%s' must be 9 to 12 alphanumeric characters.", id)
		}
	default:
		if len(id) < 4 {
			return fmt.Sprintf("Client id '%s' must be at least 4 characters.", id)
		}
	}
	return ""
}

// TeamMemberID checks the letter-plus-five-digits collaborator id.
func TeamMemberID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Must enter the collaborator id."
	}
	if !teamIDPattern.MatchString(id) {
		return fmt.Sprintf("Collaborator id '%s' must be a letter followed by 5 digits.", id)
	}
	return ""
}

// AgencyCode checks a 6-digit agency code; blank is accepted unless required.
func AgencyCode(code string, required bool) string {
	code = strings.TrimSpace(code)
	if code == "" {
		if required {
			return "Must enter the agency code."
		}
		return ""
	}
	if !agencyCodePattern.MatchString(code) {
		return fmt.Sprintf("Agency code '%s' must be exactly 6 digits.", code)
	}
	return ""
}

// ProductID checks a product identifier against its family's format.
func ProductID(id string, family catalog.ProductFamily) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Must enter the product id."
	}
	switch family {
	case catalog.FamilyCard:
		if !numericPattern.MatchString(id) || len(id) != 16 {
			return fmt.Sprintf("Product id '%s' must be a 16-digit card number.", id)
		}
	case catalog.FamilyCredit:
		if !numericPattern.MatchString(id) || !creditLength(len(id)) {
			return fmt.Sprintf("Product id '%s' must be a 13, 14, 16 or 20-digit credit number.", id)
		}
	case catalog.FamilyAccount:
		if !numericPattern.MatchString(id) || len(id) < 10 || len(id) > 18 {
			return fmt.Sprintf("Product id '%s' must be a 10 to 18-digit account number.", id)
		}
	default:
		if !alphanumericPattern.MatchString(id) || len(id) < 4 || len(id) > 30 {
			return fmt.Sprintf("Product id '%s' must be 4 to 30 alphanumeric characters.", id)
		}
	}
	return ""
}

func creditLength(n int) bool {
	switch n {
	case 13, 14, 16, 20:
		return true
	}
	return false
}

// ClaimID checks the C-plus-eight-digits claim identifier.
func ClaimID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Must enter the claim id."
	}
	if !claimIDPattern.MatchString(id) {
		return fmt.Sprintf("Claim id '%s' must be 'C' followed by 8 digits.", id)
	}
	return ""
}

// AnalyticCode checks the 10-digit analytic code and its allowed prefixes.
func AnalyticCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Must enter the analytic code."
	}
	if !analyticCodePattern.MatchString(code) {
		return fmt.Sprintf("Analytic code '%s' must be 10 digits starting with 43, 45, 46 or 56.", code)
	}
	return ""
}

// AnalyticPair checks that an analytic name and code resolve to the same
// catalog entry. Both must already be non-blank.
func AnalyticPair(name, code string) string {
	codeFromName, _, nameKnown := catalog.FindAnalyticByName(name)
	if !nameKnown {
		return fmt.Sprintf("Analytic name '%s' is not in the CM catalog.", strings.TrimSpace(name))
	}
	if _, _, codeKnown := catalog.FindAnalyticByCode(strings.TrimSpace(code)); !codeKnown {
		return fmt.Sprintf("Analytic code '%s' is not in the CM catalog.", strings.TrimSpace(code))
	}
	if codeFromName != strings.TrimSpace(code) {
		return fmt.Sprintf("Analytic name '%s' and code '%s' do not refer to the same catalog entry.", strings.TrimSpace(name), strings.TrimSpace(code))
	}
	return ""
}

// RiskID accepts either the catalog pattern RSK-NNNNNN or free text of at
// most 60 printable characters.
func RiskID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Must enter the risk id."
	}
	if riskCatalogPattern.MatchString(id) {
		return ""
	}
	if len([]rune(id)) > 60 {
		return fmt.Sprintf("Risk id '%s' must be at most 60 characters.", id)
	}
	for _, r := range id {
		if !unicode.IsPrint(r) {
			return fmt.Sprintf("Risk id '%s' contains non-printable characters.", id)
		}
	}
	return ""
}

// NormID checks the dotted norm identifier (NNNN.NNN.NN.NN).
func NormID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Must enter the norm id."
	}
	if !normIDPattern.MatchString(id) {
		return fmt.Sprintf("Norm id '%s' must have the format NNNN.NNN.NN.NN.", id)
	}
	return ""
}

// Date parses a YYYY-MM-DD date. The zero time is returned alongside any
// diagnostic.
func Date(raw, label string) (time.Time, string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, fmt.Sprintf("Must enter %s.", label)
	}
	parsed, err := time.Parse(dateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Sprintf("%s '%s' must be a valid date (YYYY-MM-DD).", label, text)
	}
	return parsed, ""
}

// Chronology validates an occurrence/discovery date pair: both must parse,
// occurrence strictly precedes discovery, and discovery is not in the
// future. Individual parse failures suppress the pairwise checks.
func Chronology(occurrence, discovery string, today time.Time) []string {
	var msgs []string
	occ, occMsg := Date(occurrence, "the occurrence date")
	if occMsg != "" {
		msgs = append(msgs, occMsg)
	}
	disc, discMsg := Date(discovery, "the discovery date")
	if discMsg != "" {
		msgs = append(msgs, discMsg)
	}
	if occMsg != "" || discMsg != "" {
		return msgs
	}
	if !occ.Before(disc) {
		msgs = append(msgs, "The occurrence date must be before the discovery date.")
	}
	if disc.After(today) {
		msgs = append(msgs, "The discovery date cannot be in the future.")
	}
	return msgs
}

// Emails validates every `;`-separated address in the list. Blank lists are
// accepted.
func Emails(list string) []string {
	return perItem(list, func(item string) string {
		if !emailPattern.MatchString(item) {
			return fmt.Sprintf("Email '%s' is not a valid address.", item)
		}
		return ""
	})
}

// Phones validates every `;`-separated phone in the list. Blank lists are
// accepted.
func Phones(list string) []string {
	return perItem(list, func(item string) string {
		if !phonePattern.MatchString(item) {
			return fmt.Sprintf("Phone '%s' must be 6 to 15 digits with an optional leading '+'.", item)
		}
		return ""
	})
}

func perItem(list string, check func(string) string) []string {
	var msgs []string
	for _, item := range strings.Split(list, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if msg := check(item); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
