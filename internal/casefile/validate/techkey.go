package validate

import (
	"strings"

	"casefile/internal/casefile/models"
)

// Placeholder stands in for any blank technical-key component. Tuples with
// matching placeholders still collide.
const Placeholder = "-"

// TechKeyDuplicate reports one duplicated technical key and every product
// position (1-based) sharing it.
type TechKeyDuplicate struct {
	Key        string
	ProductIDs []string
	Positions  []int
}

// TechnicalKey composes the product's duplicate-detection tuple: case id,
// product id, client id, primary collaborator id, occurrence and discovery
// dates, primary claim id. The primary collaborator is the first involvement
// with a non-blank id; the primary claim is the first claim with a non-blank
// id.
func TechnicalKey(caseID string, p *models.Product) string {
	parts := []string{
		component(models.CanonicalID(caseID)),
		component(models.CanonicalID(p.ID)),
		component(models.CanonicalID(p.ClientID)),
		component(primaryCollaborator(p)),
		component(strings.TrimSpace(p.OccurrenceDate)),
		component(strings.TrimSpace(p.DiscoveryDate)),
		component(primaryClaim(p)),
	}
	return strings.Join(parts, "|")
}

// FindDuplicateTechnicalKeys builds the key multiset over all products and
// returns every key held by more than one product, in first-occurrence
// order. The check is advisory and never skips products with blank
// components.
func FindDuplicateTechnicalKeys(c *models.Case) []TechKeyDuplicate {
	seen := make(map[string]*TechKeyDuplicate)
	var order []string

	for i, p := range c.Products {
		key := TechnicalKey(c.ID, p)
		entry, ok := seen[key]
		if !ok {
			entry = &TechKeyDuplicate{Key: key}
			seen[key] = entry
			order = append(order, key)
		}
		entry.ProductIDs = append(entry.ProductIDs, strings.TrimSpace(p.ID))
		entry.Positions = append(entry.Positions, i+1)
	}

	var dups []TechKeyDuplicate
	for _, key := range order {
		if entry := seen[key]; len(entry.Positions) > 1 {
			dups = append(dups, *entry)
		}
	}
	return dups
}

func primaryCollaborator(p *models.Product) string {
	for _, inv := range p.CollaboratorInvolvements {
		if id := models.CanonicalID(inv.PartyID); id != "" {
			return id
		}
	}
	return ""
}

func primaryClaim(p *models.Product) string {
	for _, claim := range p.Claims {
		if id := models.CanonicalID(claim.ID); id != "" {
			return id
		}
	}
	return ""
}

func component(value string) string {
	if value == "" {
		return Placeholder
	}
	return value
}
