package reminder

import "github.com/hccpay/approval-reminder/internal/domain"

// GroupByCompany partitions the stale-note set by the owning company.
// Groups come back in first-seen order and each group keeps its notes in
// the input (oldest-first) order, which the digest's top-five detail block
// relies on. Every input note lands in exactly one group.
func GroupByCompany(notes []*domain.Note) []*domain.CompanyGroup {
	byCompany := make(map[string]*domain.CompanyGroup)
	var groups []*domain.CompanyGroup

	for _, n := range notes {
		companyID := n.Payment.CompanyID
		g, ok := byCompany[companyID]
		if !ok {
			g = &domain.CompanyGroup{CompanyID: companyID}
			byCompany[companyID] = g
			groups = append(groups, g)
		}
		g.Notes = append(g.Notes, n)
		g.TotalAmount += n.Payment.Amount
	}
	return groups
}
