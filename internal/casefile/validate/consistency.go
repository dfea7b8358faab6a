package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"casefile/internal/casefile/models"
	"casefile/internal/casefile/money"
	"casefile/internal/catalog"
)

// Arm flips the product's armed flag if any money field holds non-blank
// text. Once armed a product stays armed; a pristine product never reports
// aggregate errors.
func Arm(p *models.Product) {
	if p.Armed {
		return
	}
	for _, f := range p.MoneyFields() {
		if strings.TrimSpace(*f.Value) != "" {
			p.Armed = true
			return
		}
	}
}

// ProductMoney re-normalizes the product's six money fields (writing the
// canonical text back) and, when all parse, checks the aggregate rules:
//
//   - loss + failure + contingency + recovered == investigated
//   - recovered <= investigated and paid <= investigated
//   - credit/card family products additionally need contingency == investigated
//
// An unarmed product is skipped entirely. Any normalization failure
// suppresses the aggregate checks.
func ProductMoney(p *models.Product) []string {
	Arm(p)
	if !p.Armed {
		return nil
	}

	amounts := make(map[string]decimal.Decimal, 6)
	var msgs []string
	for _, f := range p.MoneyFields() {
		amount, msg := money.Normalize(*f.Value, f.Label, true)
		if msg != "" {
			msgs = append(msgs, msg)
			continue
		}
		if !amount.Empty {
			*f.Value = amount.Text
		}
		amounts[f.Label] = amount.Value
	}
	if len(msgs) > 0 {
		return msgs
	}

	investigated := amounts["the investigated amount"]
	components := amounts["the loss amount"].
		Add(amounts["the failure amount"]).
		Add(amounts["the contingency amount"]).
		Add(amounts["the recovered amount"])

	if !components.Equal(investigated) {
		msgs = append(msgs, fmt.Sprintf(
			"The loss, failure, contingency and recovered amounts add up to %s but the investigated amount is %s.",
			components.StringFixed(2), investigated.StringFixed(2)))
	}
	if amounts["the recovered amount"].GreaterThan(investigated) {
		msgs = append(msgs, "The recovered amount cannot exceed the investigated amount.")
	}
	if amounts["the paid amount"].GreaterThan(investigated) {
		msgs = append(msgs, "The paid amount cannot exceed the investigated amount.")
	}
	if catalog.RequiresFullContingency(p.Type) && !amounts["the contingency amount"].Equal(investigated) {
		msgs = append(msgs, "For credit and card products the contingency amount must equal the investigated amount.")
	}
	return msgs
}

// CaseTotals sums the four loss components and the investigated amounts
// across every product whose six fields all parse, and reports a case-wide
// mismatch. Products with pending field errors are left out of both sums so
// one bad field does not double-report.
func CaseTotals(products []*models.Product) string {
	totalComponents := decimal.Zero
	totalInvestigated := decimal.Zero

	for _, p := range products {
		clean := true
		values := make([]decimal.Decimal, 0, 6)
		for _, f := range p.MoneyFields() {
			amount, msg := money.Normalize(*f.Value, f.Label, true)
			if msg != "" {
				clean = false
				break
			}
			values = append(values, amount.Value)
		}
		if !clean {
			continue
		}
		// MoneyFields order: investigated, loss, failure, contingency,
		// recovered, paid.
		totalInvestigated = totalInvestigated.Add(values[0])
		totalComponents = totalComponents.Add(values[1]).Add(values[2]).Add(values[3]).Add(values[4])
	}

	if !totalComponents.Equal(totalInvestigated) {
		return fmt.Sprintf(
			"Across all products the loss, failure, contingency and recovered amounts add up to %s but the total investigated amount is %s.",
			totalComponents.StringFixed(2), totalInvestigated.StringFixed(2))
	}
	return ""
}

// LossComponentsPositive reports whether any of loss, failure or contingency
// parses to a value greater than zero. Drives the claim-required and
// report-type rules.
func LossComponentsPositive(p *models.Product) bool {
	for _, raw := range []string{p.Loss, p.Failure, p.Contingency} {
		if money.ParseOrZero(raw).IsPositive() {
			return true
		}
	}
	return false
}
