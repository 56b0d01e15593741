package insights

import (
	"strings"

	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/pkg/utils"
)

// categoryKeywords drives classification by substring containment. The
// lists are matched against lower-cased title+description text, so partial
// words hit too ("light" matches "lighting"). Changing a list changes
// classification outcomes; treat entries as frozen vocabulary.
var categoryKeywords = map[models.Category][]string{
	models.CategoryRoads:           {"road", "pothole", "street", "highway", "pavement", "asphalt", "crack", "damage"},
	models.CategoryWater:           {"water", "leak", "pipe", "supply", "tap", "burst", "shortage"},
	models.CategoryElectricity:     {"power", "electricity", "outage", "electric", "transformer", "wire", "blackout"},
	models.CategorySanitation:      {"garbage", "trash", "waste", "dirty", "cleanup", "sanitation", "dump"},
	models.CategoryStreetLights:    {"light", "lamp", "streetlight", "lighting", "dark", "bulb"},
	models.CategoryDrainage:        {"drain", "sewer", "overflow", "clog", "blockage", "flooding", "stagnant"},
	models.CategoryPublicTransport: {"bus", "transport", "metro", "train", "station", "stop"},
	models.CategoryParks:           {"park", "garden", "playground", "recreation", "green", "space"},
	models.CategoryHealthcare:      {"hospital", "clinic", "health", "medical", "doctor", "ambulance", "emergency"},
	models.CategoryEducation:       {"school", "college", "education", "teacher", "student", "library", "classroom"},
	models.CategoryOther:           {},
}

// ClassifyIssue predicts a category from free text by counting keyword hits
// per category. Ties break toward the earlier category in models.Categories;
// text matching no keywords at all classifies as "other".
func ClassifyIssue(title, description string) models.Category {
	text := strings.ToLower(title + " " + description)

	best := models.CategoryOther
	bestCount := 0
	for _, category := range models.Categories {
		count := utils.CountAny(text, categoryKeywords[category])
		if count > bestCount {
			best = category
			bestCount = count
		}
	}
	return best
}
