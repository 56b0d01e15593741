package insights

import (
	"sort"

	"github.com/janmarg/civicreport/internal/models"
)

const (
	duplicateCategoryWeight = 0.3
	duplicateTextWeight     = 0.5
	duplicateLocationWeight = 0.2
	duplicateProximityKm    = 0.5
	duplicateThreshold      = 0.5
	maxDuplicateIDs         = 3
)

// DuplicateResult holds the outcome of duplicate detection for one issue.
type DuplicateResult struct {
	Score        float64
	DuplicateIDs []string
}

// DetectDuplicates scores a candidate issue against the existing corpus.
// Each corpus entry (other than the candidate itself) gets a composite
// score: category match, weighted title/description overlap, and location
// proximity within 500 meters. Entries scoring above the threshold are the
// candidate's likely duplicates; the top three are returned best-first.
// The composite is a heuristic sum, not a calibrated probability.
func DetectDuplicates(candidate models.Issue, corpus []models.Issue) DuplicateResult {
	type match struct {
		id    string
		score float64
	}
	var matches []match

	for _, existing := range corpus {
		if existing.ID == candidate.ID {
			continue
		}

		categoryScore := 0.0
		if existing.Category == candidate.Category {
			categoryScore = duplicateCategoryWeight
		}

		titleSim := TextOverlap(candidate.Title, existing.Title)
		descSim := TextOverlap(candidate.Description, existing.Description)
		textScore := (titleSim*0.6 + descSim*0.4) * duplicateTextWeight

		locationScore := 0.0
		distance := DistanceKm(
			candidate.Location.Lat, candidate.Location.Lng,
			existing.Location.Lat, existing.Location.Lng,
		)
		if distance < duplicateProximityKm {
			locationScore = duplicateLocationWeight
		}

		total := categoryScore + textScore + locationScore
		if total > duplicateThreshold {
			matches = append(matches, match{id: existing.ID, score: total})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > maxDuplicateIDs {
		matches = matches[:maxDuplicateIDs]
	}

	result := DuplicateResult{}
	if len(matches) > 0 {
		result.Score = matches[0].score
		for _, m := range matches {
			result.DuplicateIDs = append(result.DuplicateIDs, m.id)
		}
	}
	return result
}
