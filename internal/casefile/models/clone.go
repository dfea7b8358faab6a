package models

// Clone returns a deep copy of the case graph. The service hands clones to
// transports so encoding can proceed outside its lock.
func (c *Case) Clone() *Case {
	out := *c
	out.Clients = cloneSlice(c.Clients)
	out.Team = cloneSlice(c.Team)
	out.Risks = cloneSlice(c.Risks)
	out.Norms = cloneSlice(c.Norms)
	if c.Products != nil {
		out.Products = make([]*Product, len(c.Products))
		for i, p := range c.Products {
			out.Products[i] = p.clone()
		}
	}
	return &out
}

func (p *Product) clone() *Product {
	out := *p
	out.Claims = cloneSlice(p.Claims)
	out.CollaboratorInvolvements = cloneSlice(p.CollaboratorInvolvements)
	out.ClientInvolvements = cloneSlice(p.ClientInvolvements)
	return &out
}

func cloneSlice[T any](in []*T) []*T {
	if in == nil {
		return nil
	}
	out := make([]*T, len(in))
	for i, v := range in {
		copied := *v
		out[i] = &copied
	}
	return out
}
