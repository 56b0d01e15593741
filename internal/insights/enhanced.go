package insights

import (
	"math"
	"strings"
	"time"

	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/pkg/utils"
)

var negativeWords = []string{"bad", "terrible", "awful", "horrible", "worst", "broken", "dangerous", "urgent", "emergency", "critical"}

var positiveWords = []string{"good", "better", "improved", "fixed", "resolved"}

// AnalyzeSentiment scores text tone in [0,100], 50 being neutral. Each
// negative keyword hit subtracts 5, each positive hit adds 5.
func AnalyzeSentiment(text string) int {
	lower := strings.ToLower(text)
	score := 50
	score -= 5 * utils.CountAny(lower, negativeWords)
	score += 5 * utils.CountAny(lower, positiveWords)
	return clampScore(score)
}

// CommunityImpact estimates how widely an issue is felt, in [0,100], from
// upvotes, comment volume and views, each capped so no single signal
// dominates.
func CommunityImpact(issue models.Issue) float64 {
	impact := 40.0
	impact += math.Min(float64(issue.Upvotes)*2, 30)
	impact += math.Min(float64(len(issue.Comments))*1.5, 15)
	impact += math.Min(float64(issue.ViewCount)*0.1, 15)
	return math.Min(impact, 100)
}

var highEnvImpactCategories = map[models.Category]bool{
	models.CategorySanitation: true,
	models.CategoryDrainage:   true,
	models.CategoryWater:      true,
	models.CategoryParks:      true,
}

var mediumEnvImpactCategories = map[models.Category]bool{
	models.CategoryRoads:        true,
	models.CategoryStreetLights: true,
}

var envKeywords = []string{"pollution", "waste", "toxic", "contamination", "environment", "green", "clean"}

// EnvironmentalImpact scores ecological exposure in [0,100] from the issue
// category group plus environmental keyword hits.
func EnvironmentalImpact(issue models.Issue) int {
	impact := 20

	switch {
	case highEnvImpactCategories[issue.Category]:
		impact += 50
	case mediumEnvImpactCategories[issue.Category]:
		impact += 30
	default:
		impact += 10
	}

	text := strings.ToLower(issue.Title + " " + issue.Description)
	impact += 5 * utils.CountAny(text, envKeywords)

	return clampScore(impact)
}

// baseCosts holds per-category repair cost baselines in rupees.
var baseCosts = map[models.Category]int64{
	models.CategoryRoads:           50000,
	models.CategoryWater:           30000,
	models.CategoryElectricity:     25000,
	models.CategorySanitation:      15000,
	models.CategoryStreetLights:    8000,
	models.CategoryDrainage:        40000,
	models.CategoryPublicTransport: 35000,
	models.CategoryParks:           20000,
	models.CategoryHealthcare:      100000,
	models.CategoryEducation:       75000,
	models.CategoryOther:           10000,
}

const defaultBaseCost = 10000

// defaultSeverity substitutes for issues whose insights were never computed.
const defaultSeverity = 50

// EstimateCost projects resolution cost from the category baseline scaled
// by severity, rounded to the nearest thousand. Cost is non-decreasing in
// severity for a fixed category.
func EstimateCost(category models.Category, severity int) int64 {
	base, ok := baseCosts[category]
	if !ok {
		base = defaultBaseCost
	}

	cost := float64(base) * float64(severity) / defaultSeverity
	return int64(math.Round(cost/1000)) * 1000
}

// baseDurations holds per-category resolution baselines in days.
var baseDurations = map[models.Category]int{
	models.CategoryRoads:           14,
	models.CategoryWater:           7,
	models.CategoryElectricity:     5,
	models.CategorySanitation:      3,
	models.CategoryStreetLights:    2,
	models.CategoryDrainage:        10,
	models.CategoryPublicTransport: 20,
	models.CategoryParks:           15,
	models.CategoryHealthcare:      30,
	models.CategoryEducation:       45,
	models.CategoryOther:           7,
}

const defaultBaseDurationDays = 7

// EstimateDuration projects resolution time in days. Severity above 75
// marks the issue for rush handling at 70% of the baseline, rounded up.
func EstimateDuration(category models.Category, severity int) int {
	days, ok := baseDurations[category]
	if !ok {
		days = defaultBaseDurationDays
	}

	duration := float64(days)
	if severity > 75 {
		duration *= 0.7
	}
	return int(math.Ceil(duration))
}

const millisPerDay = 24 * 60 * 60 * 1000

// submissionProcessingDays is the intake allowance added before work starts
// on issues that have not yet been triaged.
const submissionProcessingDays = 2

// PredictResolutionDate projects the epoch-millisecond completion time from
// now given the estimated duration and the issue's current status.
func PredictResolutionDate(status models.IssueStatus, durationDays int, now time.Time) int64 {
	processingDays := 0
	if status == models.StatusSubmitted {
		processingDays = submissionProcessingDays
	}
	totalDays := durationDays + processingDays
	return now.UnixMilli() + int64(totalDays)*millisPerDay
}

// AssessRisk maps combined urgency and severity onto the four risk tiers.
// The boundaries are inclusive: a combined average of exactly 80 is
// critical.
func AssessRisk(urgency, severity int) models.RiskLevel {
	combined := float64(urgency+severity) / 2
	switch {
	case combined >= 80:
		return models.RiskCritical
	case combined >= 60:
		return models.RiskHigh
	case combined >= 40:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// SimilarIssuesCount counts other unresolved issues sharing the candidate's
// category and city.
func SimilarIssuesCount(issue models.Issue, corpus []models.Issue) int {
	count := 0
	for _, other := range corpus {
		if other.ID == issue.ID {
			continue
		}
		if other.Category == issue.Category &&
			other.Location.City == issue.Location.City &&
			other.Open() {
			count++
		}
	}
	return count
}

// CalculatePriority derives a dashboard priority tier from stored insight
// scores, weighting urgency and severity equally and community impact at
// half. Issues without computed insights rank as if all scores were zero.
func CalculatePriority(issue models.Issue) models.RiskLevel {
	urgency, severity, community := 0, 0, 0.0
	if issue.Insights != nil {
		urgency = issue.Insights.UrgencyScore
		severity = issue.Insights.SeverityScore
		community = issue.Insights.CommunityImpact
	}

	score := float64(urgency)*0.4 + float64(severity)*0.4 + community*0.2
	switch {
	case score >= 75:
		return models.RiskCritical
	case score >= 55:
		return models.RiskHigh
	case score >= 35:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// RecommendedBidRange derives the advisory bid band from the issue's cost
// estimate. Issues without computed insights assume the default severity.
func RecommendedBidRange(issue models.Issue) models.BidRange {
	severity := defaultSeverity
	if issue.Insights != nil && issue.Insights.SeverityScore != 0 {
		severity = issue.Insights.SeverityScore
	}

	cost := EstimateCost(issue.Category, severity)
	return models.BidRange{
		Min:         int64(math.Floor(float64(cost) * 0.8)),
		Max:         int64(math.Ceil(float64(cost) * 1.2)),
		Recommended: cost,
	}
}
