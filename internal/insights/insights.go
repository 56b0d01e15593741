// Package insights derives the heuristic score bundle attached to every
// reported issue: duplicate detection, category prediction, urgency and
// severity, impact estimates, cost and duration projections, and risk
// tiering. Everything here is deterministic arithmetic over the issue's
// fields and the current issue corpus; there is no model, no I/O and no
// shared state. Given any well-formed issue, every function returns a
// finite, in-range value.
package insights

import (
	"time"

	"github.com/janmarg/civicreport/internal/models"
)

// Generate computes the full insight bundle for an issue against the
// current corpus. It is the single entry point the submission flow calls,
// exactly once per issue; the corpus is treated as a read-only snapshot and
// may include the issue itself (matching ids are skipped internally).
func Generate(issue models.Issue, corpus []models.Issue, now time.Time) models.Insights {
	duplicates := DetectDuplicates(issue, corpus)

	urgency := UrgencyScore(issue)
	severity := SeverityScore(issue)
	duration := EstimateDuration(issue.Category, severity)

	return models.Insights{
		DuplicateScore:          duplicates.Score,
		DuplicateIssueIDs:       duplicates.DuplicateIDs,
		PredictedCategory:       ClassifyIssue(issue.Title, issue.Description),
		UrgencyScore:            urgency,
		SeverityScore:           severity,
		SuggestedDepartment:     RouteToDepartment(issue.Category),
		AutoGenSummary:          GenerateSummary(issue, urgency),
		EstimatedCost:           EstimateCost(issue.Category, severity),
		EstimatedDuration:       duration,
		SimilarIssuesCount:      SimilarIssuesCount(issue, corpus),
		SentimentScore:          AnalyzeSentiment(issue.Title + " " + issue.Description),
		CommunityImpact:         CommunityImpact(issue),
		EnvironmentalImpact:     EnvironmentalImpact(issue),
		PredictedResolutionDate: PredictResolutionDate(issue.Status, duration, now),
		RiskAssessment:          AssessRisk(urgency, severity),
	}
}
