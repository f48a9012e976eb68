package usecase

import (
	"regexp"
	"strings"

	"github.com/pricefinder/backend/internal/domain"
)

// Relevance scoring blends title-to-query text similarity with a price
// advantage factor. Scores are always within [0,1].

const (
	// referencePrice caps the price influence; anything at or above this
	// many rials gets the full 30% penalty.
	referencePrice = 50_000_000

	// priceInfluence bounds how much a cheap price can lift the score
	priceInfluence = 0.3

	textWeight  = 0.7
	priceWeight = 0.3

	// partialMatchThreshold is the word-similarity floor for counting a
	// query token as a partial match
	partialMatchThreshold = 0.7
)

// nonWordRunRegex collapses anything outside Latin word characters and the
// Persian script block into single separators.
var nonWordRunRegex = regexp.MustCompile(`[^a-z0-9\x{0600}-\x{06FF}]+`)

// RelevanceScore computes how well an offer title answers a query, in [0,1].
// An empty query carries no information and scores 1.
func RelevanceScore(title, query string, price int64) float64 {
	normalizedTitle := normalizeText(title)
	normalizedQuery := normalizeText(query)

	queryTokens := tokenizeWords(normalizedQuery)
	if len(queryTokens) == 0 {
		return 1
	}
	titleTokens := tokenizeWords(normalizedTitle)

	exactMatches := 0
	partialMatches := 0
	for _, queryToken := range queryTokens {
		switch {
		case hasExactMatch(titleTokens, queryToken):
			exactMatches++
		case hasPartialMatch(titleTokens, queryToken):
			partialMatches++
		}
	}

	textSimilarity := float64(2*exactMatches+partialMatches) / float64(len(queryTokens))
	if textSimilarity == 0 && strings.Contains(normalizedTitle, normalizedQuery) {
		// The whole query appears verbatim even though no token qualified;
		// treat as a weak positive signal.
		textSimilarity = 0.5
	}
	if textSimilarity > 1 {
		textSimilarity = 1
	}

	priceFactor := 0.0
	if price > 0 {
		capped := float64(price)
		if capped > referencePrice {
			capped = referencePrice
		}
		priceFactor = 1 - capped/referencePrice*priceInfluence
	}

	score := textWeight*textSimilarity + priceWeight*priceFactor
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ScoreOffers attaches a relevance score against the query to every offer
func ScoreOffers(offers []domain.Offer, query string) {
	for i := range offers {
		offers[i].RelevanceScore = RelevanceScore(offers[i].Title, query, offers[i].Price)
	}
}

// normalizeText lowercases and collapses separator runs into single spaces
func normalizeText(s string) string {
	lowered := strings.ToLower(s)
	collapsed := nonWordRunRegex.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(collapsed)
}

// tokenizeWords splits normalized text into words longer than one character
func tokenizeWords(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(s) {
		if len([]rune(word)) > 1 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func hasExactMatch(titleTokens []string, queryToken string) bool {
	for _, t := range titleTokens {
		if t == queryToken {
			return true
		}
	}
	return false
}

func hasPartialMatch(titleTokens []string, queryToken string) bool {
	for _, t := range titleTokens {
		if strings.Contains(t, queryToken) || strings.Contains(queryToken, t) {
			return true
		}
		if wordSimilarity(t, queryToken) > partialMatchThreshold {
			return true
		}
	}
	return false
}

// wordSimilarity is 1 - editDistance/maxLen. Identical strings score 1,
// any pair involving an empty string scores 0.
func wordSimilarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	lenA := len([]rune(a))
	lenB := len([]rune(b))
	if lenA == 0 || lenB == 0 {
		return 0
	}
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// levenshteinDistance computes the classic unit-cost edit distance over a
// full (|a|+1)x(|b|+1) dynamic-programming table
func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	table := make([][]int, len(ra)+1)
	for i := range table {
		table[i] = make([]int, len(rb)+1)
		table[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		table[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			table[i][j] = min(
				table[i-1][j]+1,      // deletion
				table[i][j-1]+1,      // insertion
				table[i-1][j-1]+cost, // substitution
			)
		}
	}

	return table[len(ra)][len(rb)]
}
