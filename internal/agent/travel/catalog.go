// Package travel holds the static destination catalog and user table, plus
// the budget/vibe matcher behind the search_destinations tool.
package travel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zodiac-travel/server/internal/agent/model"
)

// MaxResults caps how many destinations a single search returns.
const MaxResults = 5

// Catalog is the fixed destination table, loaded once at startup. Order
// matters: score ties keep catalog order.
var Catalog = []model.Destination{
	{City: "Santorini", Price: 450, Tags: "Luxury, Sun, Romantic, Water"},
	{City: "Bali", Price: 850, Tags: "Nature, Spiritual, Sun, Water"},
	{City: "Paris", Price: 300, Tags: "Romantic, Shopping, Art, City"},
	{City: "Tokyo", Price: 900, Tags: "City, Foodie, Tech, Future"},
	{City: "Tulum", Price: 600, Tags: "Party, Sun, Trendy, Water"},
	{City: "Lisbon", Price: 250, Tags: "City, Sun, Foodie, History"},
	{City: "Budapest", Price: 150, Tags: "City, Party, Budget, History"},
	{City: "Kyoto", Price: 950, Tags: "Nature, Culture, Zen, History"},
	{City: "Amalfi", Price: 500, Tags: "Luxury, Sun, Romantic, Foodie"},
	{City: "New York", Price: 500, Tags: "City, Shopping, High-Energy"},
}

// Match pairs a catalog entry with its vibe score for one search.
type Match struct {
	Destination model.Destination
	Score       int
}

// MatchDestinations filters the catalog by budget ceiling, scores entries by
// case-insensitive vibe/tag overlap, and returns at most MaxResults entries
// ordered by descending score (ties keep catalog order). When vibes is empty
// all budget-filtered entries are retained unscored.
func MatchDestinations(vibes []string, maxBudget int) []Match {
	var matches []Match
	for _, d := range Catalog {
		if d.Price > maxBudget {
			continue
		}
		score := 0
		tagsLower := strings.ToLower(d.Tags)
		for _, vibe := range vibes {
			v := strings.ToLower(strings.TrimSpace(vibe))
			if v != "" && strings.Contains(tagsLower, v) {
				score++
			}
		}
		if len(vibes) > 0 && score == 0 {
			continue
		}
		matches = append(matches, Match{Destination: d, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}
	return matches
}

// SearchDestinations runs the matcher and formats the result as the tool
// payload: one "✈️ City ($price): tags" line per match, or an explicit
// no-destinations message. It never fails.
func SearchDestinations(vibes []string, maxBudget int) string {
	matches := MatchDestinations(vibes, maxBudget)
	if len(matches) == 0 {
		return fmt.Sprintf("No destinations found matching %v under $%d. Try increasing budget or different vibes.", vibes, maxBudget)
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("✈️ %s ($%d): %s", m.Destination.City, m.Destination.Price, m.Destination.Tags))
	}
	return strings.Join(lines, "\n")
}
