package registry

import "casefile/internal/casefile/models"

// Set bundles the five per-collection registries of one open case. The case
// aggregate owns a Set and hands it to the reconciler explicitly.
type Set struct {
	Clients  *Registry[*models.Client]
	Team     *Registry[*models.TeamMember]
	Products *Registry[*models.Product]
	Risks    *Registry[*models.Risk]
	Norms    *Registry[*models.Norm]
}

// NewSet returns empty registries for a fresh case.
func NewSet() *Set {
	return &Set{
		Clients:  New[*models.Client](),
		Team:     New[*models.TeamMember](),
		Products: New[*models.Product](),
		Risks:    New[*models.Risk](),
		Norms:    New[*models.Norm](),
	}
}

// Rebuild re-indexes every collection from the live case graph, used after
// a structural reload. Collisions keep the first entity per key.
func (s *Set) Rebuild(c *models.Case) {
	s.Clients.Rebuild(func(yield func(string, *models.Client) bool) {
		for _, e := range c.Clients {
			if !yield(e.ID, e) {
				return
			}
		}
	})
	s.Team.Rebuild(func(yield func(string, *models.TeamMember) bool) {
		for _, e := range c.Team {
			if !yield(e.ID, e) {
				return
			}
		}
	})
	s.Products.Rebuild(func(yield func(string, *models.Product) bool) {
		for _, e := range c.Products {
			if !yield(e.ID, e) {
				return
			}
		}
	})
	s.Risks.Rebuild(func(yield func(string, *models.Risk) bool) {
		for _, e := range c.Risks {
			if !yield(e.ID, e) {
				return
			}
		}
	})
	s.Norms.Rebuild(func(yield func(string, *models.Norm) bool) {
		for _, e := range c.Norms {
			if !yield(e.ID, e) {
				return
			}
		}
	})
}
