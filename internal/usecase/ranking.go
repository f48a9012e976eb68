package usecase

import (
	"sort"

	"github.com/pricefinder/backend/internal/domain"
)

// Ranking pipeline. Zero-price offers ("price unknown") always sort after
// priced ones regardless of the secondary criterion.

// relevanceTieBreak is the score gap under which two offers are considered
// equally relevant and ordered by price instead
const relevanceTieBreak = 0.1

// SortByPrice orders offers ascending by price with zero prices last.
// Used for direct platform browsing and seller comparison.
func SortByPrice(offers []domain.Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := offers[i], offers[j]
		if (a.Price == 0) != (b.Price == 0) {
			return b.Price == 0
		}
		if a.Price == 0 {
			return false
		}
		return a.Price < b.Price
	})
}

// SortByRelevance orders offers by descending relevance score, breaking
// near-ties by ascending price. Zero prices still sort last. Used for the
// free-text re-match path where the query is the only ground truth.
func SortByRelevance(offers []domain.Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := offers[i], offers[j]
		if (a.Price == 0) != (b.Price == 0) {
			return b.Price == 0
		}
		if a.Price == 0 {
			return false
		}
		gap := a.RelevanceScore - b.RelevanceScore
		if gap >= relevanceTieBreak {
			return true
		}
		if gap <= -relevanceTieBreak {
			return false
		}
		return a.Price < b.Price
	})
}

// DedupSellers drops non-positive prices, then keeps only the first
// occurrence of each (seller, price) pair. Input order is preserved and the
// operation is idempotent.
func DedupSellers(offers []domain.Offer) []domain.Offer {
	type sellerPrice struct {
		seller string
		price  int64
	}

	seen := make(map[sellerPrice]bool, len(offers))
	deduped := make([]domain.Offer, 0, len(offers))
	for _, offer := range offers {
		if offer.Price <= 0 {
			continue
		}
		key := sellerPrice{offer.Seller, offer.Price}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, offer)
	}
	return deduped
}

// Truncate caps a ranked list at the platform's page size
func Truncate(offers []domain.Offer, pageCap int) []domain.Offer {
	if len(offers) > pageCap {
		return offers[:pageCap]
	}
	return offers
}
