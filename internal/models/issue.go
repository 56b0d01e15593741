package models

// IssueStatus tracks an issue through its lifecycle.
type IssueStatus string

const (
	StatusSubmitted  IssueStatus = "submitted"
	StatusBidding    IssueStatus = "bidding"
	StatusAssigned   IssueStatus = "assigned"
	StatusInProgress IssueStatus = "in-progress"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
)

// Category identifies the civic service area an issue belongs to.
type Category string

const (
	CategoryRoads           Category = "roads"
	CategoryWater           Category = "water"
	CategoryElectricity     Category = "electricity"
	CategorySanitation      Category = "sanitation"
	CategoryStreetLights    Category = "street-lights"
	CategoryDrainage        Category = "drainage"
	CategoryPublicTransport Category = "public-transport"
	CategoryParks           Category = "parks"
	CategoryHealthcare      Category = "healthcare"
	CategoryEducation       Category = "education"
	CategoryOther           Category = "other"
)

// Categories lists every category in a fixed order. Code that iterates
// categories must use this slice so results stay deterministic.
var Categories = []Category{
	CategoryRoads,
	CategoryWater,
	CategoryElectricity,
	CategorySanitation,
	CategoryStreetLights,
	CategoryDrainage,
	CategoryPublicTransport,
	CategoryParks,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

// RiskLevel is the four-tier classification derived from urgency and severity.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Location is a structured address with point coordinates.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Pincode string  `json:"pincode"`
}

// Comment is a citizen or official remark attached to an issue.
type Comment struct {
	ID         string `json:"id"`
	IssueID    string `json:"issueId"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	IsOfficial bool   `json:"isOfficial,omitempty"`
}

// TimelineEvent records a state change in an issue's history.
type TimelineEvent struct {
	ID          string `json:"id"`
	IssueID     string `json:"issueId"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
	UserID      string `json:"userId,omitempty"`
	UserName    string `json:"userName,omitempty"`
}

// Timeline event types.
const (
	EventCreated       = "created"
	EventAssigned      = "assigned"
	EventStatusChange  = "status_change"
	EventComment       = "comment"
	EventClosed        = "closed"
	EventBiddingOpened = "bidding_opened"
	EventBidAccepted   = "bid_accepted"
)

// Contractor is the party assigned to resolve an issue.
type Contractor struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Department        string  `json:"department"`
	Phone             string  `json:"phone"`
	Rating            float64 `json:"rating"`
	Company           string  `json:"company"`
	CompletedProjects int     `json:"completedProjects"`
}

// Insights is the bundle of heuristic scores computed once per issue at
// submission time. All bounded score fields are clamped to their documented
// ranges; serialization round-trips without loss.
type Insights struct {
	DuplicateScore          float64   `json:"duplicateScore"`
	DuplicateIssueIDs       []string  `json:"duplicateIssueIds,omitempty"`
	PredictedCategory       Category  `json:"predictedCategory"`
	UrgencyScore            int       `json:"urgencyScore"`
	SeverityScore           int       `json:"severityScore"`
	SuggestedDepartment     string    `json:"suggestedDepartment"`
	AutoGenSummary          string    `json:"autoGenSummary"`
	EstimatedCost           int64     `json:"estimatedCost,omitempty"`
	EstimatedDuration       int       `json:"estimatedDuration,omitempty"`
	SimilarIssuesCount      int       `json:"similarIssuesCount,omitempty"`
	SentimentScore          int       `json:"sentimentScore,omitempty"`
	CommunityImpact         float64   `json:"communityImpact,omitempty"`
	EnvironmentalImpact     int       `json:"environmentalImpact,omitempty"`
	PredictedResolutionDate int64     `json:"predictedResolutionDate,omitempty"`
	RiskAssessment          RiskLevel `json:"riskAssessment,omitempty"`
}

// Issue is a citizen-reported civic problem. It owns its comments, timeline,
// bids and insight bundle; none of those have a lifecycle outside the issue.
type Issue struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           Category        `json:"category"`
	Location           Location        `json:"location"`
	Status             IssueStatus     `json:"status"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	UserID             string          `json:"userId"`
	UserName           string          `json:"userName"`
	IsAnonymous        bool            `json:"isAnonymous"`
	Upvotes            int             `json:"upvotes"`
	Downvotes          int             `json:"downvotes"`
	VotedBy            []string        `json:"votedBy,omitempty"`
	Comments           []Comment       `json:"comments,omitempty"`
	Timeline           []TimelineEvent `json:"timeline,omitempty"`
	Insights           *Insights       `json:"aiInsights,omitempty"`
	AssignedContractor *Contractor     `json:"assignedContractor,omitempty"`
	Bids               []Bid           `json:"bids,omitempty"`
	CreatedAt          int64           `json:"createdAt"`
	UpdatedAt          int64           `json:"updatedAt"`
	Department         string          `json:"department"`
	Priority           RiskLevel       `json:"priority,omitempty"`
	ViewCount          int             `json:"viewCount,omitempty"`
}

// Open reports whether the issue is still being worked.
func (i Issue) Open() bool {
	return i.Status != StatusResolved && i.Status != StatusClosed
}

// IssueQuery represents filter parameters for listing issues.
type IssueQuery struct {
	IDs         []string      `json:"ids"`
	Categories  []Category    `json:"categories"`
	Statuses    []IssueStatus `json:"statuses"`
	Departments []string      `json:"departments"`
	Cities      []string      `json:"cities"`
	States      []string      `json:"states"`
	Since       int64         `json:"since"`
	Until       int64         `json:"until"`
	Limit       int           `json:"limit"`
	Offset      int           `json:"offset"`
}

// Matches checks if an issue satisfies the query criteria.
func (q IssueQuery) Matches(issue Issue) bool {
	if len(q.IDs) > 0 && !contains(q.IDs, issue.ID) {
		return false
	}
	if len(q.Categories) > 0 && !containsCategory(q.Categories, issue.Category) {
		return false
	}
	if len(q.Statuses) > 0 && !containsStatus(q.Statuses, issue.Status) {
		return false
	}
	if len(q.Departments) > 0 && !contains(q.Departments, issue.Department) {
		return false
	}
	if len(q.Cities) > 0 && !contains(q.Cities, issue.Location.City) {
		return false
	}
	if len(q.States) > 0 && !contains(q.States, issue.Location.State) {
		return false
	}
	if q.Since > 0 && issue.CreatedAt < q.Since {
		return false
	}
	if q.Until > 0 && issue.CreatedAt > q.Until {
		return false
	}
	return true
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func containsCategory(slice []Category, item Category) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func containsStatus(slice []IssueStatus, item IssueStatus) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
