package insights

import (
	"fmt"
	"strings"

	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/pkg/utils"
)

var urgentKeywords = []string{"dangerous", "urgent", "emergency", "critical", "hazard", "risk", "immediate"}

var severeKeywords = []string{"burst", "collapse", "accident", "injury", "death", "major", "severe"}

// categoryUrgency is the fixed per-category urgency bonus.
var categoryUrgency = map[models.Category]int{
	models.CategoryElectricity:     20,
	models.CategoryWater:           15,
	models.CategoryDrainage:        15,
	models.CategoryRoads:           10,
	models.CategoryStreetLights:    5,
	models.CategorySanitation:      10,
	models.CategoryPublicTransport: 5,
	models.CategoryParks:           3,
	models.CategoryHealthcare:      25,
	models.CategoryEducation:       8,
	models.CategoryOther:           5,
}

// UrgencyScore rates how quickly an issue needs attention, in [0,100].
// Base 30, plus 15 per urgent keyword, a category bonus, and a single
// engagement bonus: +15 above 10 upvotes, otherwise +10 above 5.
func UrgencyScore(issue models.Issue) int {
	urgency := 30

	text := strings.ToLower(issue.Title + " " + issue.Description)
	urgency += 15 * utils.CountAny(text, urgentKeywords)

	urgency += categoryUrgency[issue.Category]

	if issue.Upvotes > 10 {
		urgency += 15
	} else if issue.Upvotes > 5 {
		urgency += 10
	}

	return clampScore(urgency)
}

// SeverityScore rates how bad the reported condition is, in [0,100].
// Base 40, plus 15 per severe keyword, +10 for a detailed description
// (over 200 characters), +5 when a photo is attached.
func SeverityScore(issue models.Issue) int {
	severity := 40

	text := strings.ToLower(issue.Title + " " + issue.Description)
	severity += 15 * utils.CountAny(text, severeKeywords)

	if len(issue.Description) > 200 {
		severity += 10
	}
	if issue.ImageURL != "" {
		severity += 5
	}

	return clampScore(severity)
}

func clampScore(v int) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

// categoryDepartment routes each category to its municipal department.
var categoryDepartment = map[models.Category]string{
	models.CategoryRoads:           "Public Works Department",
	models.CategoryWater:           "Water Supply Department",
	models.CategoryElectricity:     "Electricity Board",
	models.CategorySanitation:      "Sanitation Department",
	models.CategoryStreetLights:    "Municipal Services",
	models.CategoryDrainage:        "Drainage Department",
	models.CategoryPublicTransport: "Transport Authority",
	models.CategoryParks:           "Parks & Recreation",
	models.CategoryHealthcare:      "Health Department",
	models.CategoryEducation:       "Education Department",
	models.CategoryOther:           "General Administration",
}

// RouteToDepartment returns the department responsible for a category.
// Unknown categories fall back to General Administration.
func RouteToDepartment(category models.Category) string {
	if dept, ok := categoryDepartment[category]; ok {
		return dept
	}
	return categoryDepartment[models.CategoryOther]
}

var categoryLabels = map[models.Category]string{
	models.CategoryRoads:           "road infrastructure",
	models.CategoryWater:           "water supply",
	models.CategoryElectricity:     "electrical infrastructure",
	models.CategorySanitation:      "waste management",
	models.CategoryStreetLights:    "street lighting",
	models.CategoryDrainage:        "drainage system",
	models.CategoryPublicTransport: "public transportation",
	models.CategoryParks:           "parks and recreation",
	models.CategoryHealthcare:      "healthcare services",
	models.CategoryEducation:       "educational facilities",
	models.CategoryOther:           "civic infrastructure",
}

// GenerateSummary builds a one-sentence summary from the already-computed
// urgency score. Urgency is passed in rather than recomputed so the summary
// can never drift from the stored score.
func GenerateSummary(issue models.Issue, urgency int) string {
	label := "Low"
	if urgency > 70 {
		label = "High"
	} else if urgency > 40 {
		label = "Medium"
	}

	categoryLabel, ok := categoryLabels[issue.Category]
	if !ok {
		categoryLabel = categoryLabels[models.CategoryOther]
	}

	return fmt.Sprintf("%s priority %s issue reported in %s. Issue has received %d community upvotes and %d comments.",
		label, categoryLabel, issue.Location.Address, issue.Upvotes, len(issue.Comments))
}
