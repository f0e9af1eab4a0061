package shop

import "strings"

// Policy chooses which candidate to buy: prefer fast delivery, but take
// anything over nothing, then pick the cheapest.
type Policy struct {
	deliveryKeywords []string
}

func NewPolicy(deliveryKeywords []string) Policy {
	return Policy{deliveryKeywords: deliveryKeywords}
}

// Select filters candidates by delivery keyword and returns the cheapest of
// the filtered set. When no candidate matches a keyword the full set is
// used instead: availability beats strict delivery speed. Ties go to the
// first-encountered candidate. Returns nil for an empty input.
func (p Policy) Select(candidates []Candidate) *Candidate {
	pool := p.filterByDelivery(candidates)
	if len(pool) == 0 {
		pool = candidates
	}
	return cheapest(pool)
}

func (p Policy) filterByDelivery(candidates []Candidate) []Candidate {
	var filtered []Candidate
	for _, c := range candidates {
		for _, keyword := range p.deliveryKeywords {
			if strings.Contains(c.Delivery, keyword) {
				filtered = append(filtered, c)
				break
			}
		}
	}
	return filtered
}

func cheapest(candidates []Candidate) *Candidate {
	if len(candidates) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Price < candidates[best].Price {
			best = i
		}
	}
	return &candidates[best]
}
