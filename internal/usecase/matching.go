package usecase

import (
	"strings"

	"github.com/pricefinder/backend/internal/domain"
)

// Title-based product identity: decides whether two listings name the same
// product when a platform does not expose multi-seller data directly.

// TitleSimilarity is the fraction of shared tokens (length > 2) over the
// larger token count, in [0,1].
func TitleSimilarity(a, b string) float64 {
	tokensA := identityTokens(a)
	tokensB := identityTokens(b)

	seen := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		seen[t] = true
	}

	shared := 0
	for _, t := range tokensA {
		if seen[t] {
			shared++
		}
	}

	denominator := len(tokensA)
	if len(tokensB) > denominator {
		denominator = len(tokensB)
	}
	if denominator < 1 {
		denominator = 1
	}

	return float64(shared) / float64(denominator)
}

// identityTokens splits a title into lowercase whitespace-delimited tokens
// longer than two characters
func identityTokens(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		if len([]rune(word)) > 2 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// MatchSameProduct filters search candidates down to offers for the given
// product. A candidate qualifies when its title similarity exceeds the
// threshold or its platform id equals the product's. Exact matches
// (similarity 1 or id equality) are collapsed onto the canonical product id
// while keeping their own URL; merely-similar candidates keep their own
// identity and ride along with lower confidence.
func MatchSameProduct(productTitle, productID string, candidates []domain.Offer, threshold float64) []domain.Offer {
	var matched []domain.Offer
	for _, candidate := range candidates {
		similarity := TitleSimilarity(productTitle, candidate.Title)
		if similarity <= threshold && candidate.ProductID != productID {
			continue
		}
		if similarity == 1 || candidate.ProductID == productID {
			candidate.ProductID = productID
		}
		matched = append(matched, candidate)
	}
	return matched
}
