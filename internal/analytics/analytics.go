// Package analytics aggregates stored issues into dashboard figures:
// per-department and per-state rollups, geographic hotspots and an overall
// summary. All figures are derived on demand from the issue corpus.
package analytics

import (
	"context"
	"sort"

	"github.com/janmarg/civicreport/internal/insights"
	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/internal/store"
)

// hotspotRadiusKm bounds how far apart two issues can be and still count as
// one cluster.
const hotspotRadiusKm = 0.5

// millisPerDay converts epoch-millisecond spans to whole days.
const millisPerDay = 24 * 60 * 60 * 1000

// Analytics computes aggregate figures over the issue corpus
type Analytics struct {
	store store.Store
}

// New creates a new analytics instance
func New(st store.Store) *Analytics {
	return &Analytics{store: st}
}

// DepartmentStats is the per-department rollup.
type DepartmentStats struct {
	Department           string  `json:"department"`
	Total                int     `json:"total"`
	Resolved             int     `json:"resolved"`
	Pending              int     `json:"pending"`
	AvgResolutionDays    float64 `json:"avgResolutionDays"`
	AvgUrgency           float64 `json:"avgUrgency"`
}

// StateStats is the per-state rollup.
type StateStats struct {
	State    string `json:"state"`
	Total    int    `json:"total"`
	Resolved int    `json:"resolved"`
	Pending  int    `json:"pending"`
}

// Hotspot is a cluster of unresolved issues within a small radius.
type Hotspot struct {
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	City        string   `json:"city"`
	IssueCount  int      `json:"issueCount"`
	MeanSeverity float64 `json:"meanSeverity"`
	IssueIDs    []string `json:"issueIds"`
}

// Summary is the overall dashboard snapshot.
type Summary struct {
	TotalIssues    int                        `json:"totalIssues"`
	ByStatus       map[models.IssueStatus]int `json:"byStatus"`
	ByCategory     map[models.Category]int    `json:"byCategory"`
	AvgUrgency     float64                    `json:"avgUrgency"`
	AvgSeverity    float64                    `json:"avgSeverity"`
	ResolutionRate float64                    `json:"resolutionRate"`
}

// ByDepartment computes per-department figures
func (a *Analytics) ByDepartment(ctx context.Context) ([]DepartmentStats, error) {
	issues, err := a.store.QueryIssues(ctx, models.IssueQuery{})
	if err != nil {
		return nil, err
	}

	type acc struct {
		stats          DepartmentStats
		resolutionSum  int64
		resolvedTimed  int
		urgencySum     int
		scored         int
	}

	byDept := make(map[string]*acc)
	for _, issue := range issues {
		dept := issue.Department
		if dept == "" {
			dept = insights.RouteToDepartment(issue.Category)
		}
		entry, ok := byDept[dept]
		if !ok {
			entry = &acc{stats: DepartmentStats{Department: dept}}
			byDept[dept] = entry
		}

		entry.stats.Total++
		if issue.Status == models.StatusResolved || issue.Status == models.StatusClosed {
			entry.stats.Resolved++
			if issue.UpdatedAt > issue.CreatedAt {
				entry.resolutionSum += issue.UpdatedAt - issue.CreatedAt
				entry.resolvedTimed++
			}
		} else {
			entry.stats.Pending++
		}
		if issue.Insights != nil {
			entry.urgencySum += issue.Insights.UrgencyScore
			entry.scored++
		}
	}

	result := make([]DepartmentStats, 0, len(byDept))
	for _, entry := range byDept {
		if entry.resolvedTimed > 0 {
			entry.stats.AvgResolutionDays = float64(entry.resolutionSum) / float64(entry.resolvedTimed) / millisPerDay
		}
		if entry.scored > 0 {
			entry.stats.AvgUrgency = float64(entry.urgencySum) / float64(entry.scored)
		}
		result = append(result, entry.stats)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Department < result[j].Department
	})

	return result, nil
}

// ByState computes per-state figures
func (a *Analytics) ByState(ctx context.Context) ([]StateStats, error) {
	issues, err := a.store.QueryIssues(ctx, models.IssueQuery{})
	if err != nil {
		return nil, err
	}

	byState := make(map[string]*StateStats)
	for _, issue := range issues {
		state := issue.Location.State
		if state == "" {
			state = "Unknown"
		}
		entry, ok := byState[state]
		if !ok {
			entry = &StateStats{State: state}
			byState[state] = entry
		}
		entry.Total++
		if issue.Status == models.StatusResolved || issue.Status == models.StatusClosed {
			entry.Resolved++
		} else {
			entry.Pending++
		}
	}

	result := make([]StateStats, 0, len(byState))
	for _, entry := range byState {
		result = append(result, *entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].State < result[j].State
	})

	return result, nil
}

// Hotspots clusters open issues that sit within hotspotRadiusKm of each
// other. Greedy single-pass clustering: each issue joins the first cluster
// whose anchor is close enough, so results are deterministic for a given
// corpus order (the store returns newest first).
func (a *Analytics) Hotspots(ctx context.Context, minIssues int) ([]Hotspot, error) {
	if minIssues < 2 {
		minIssues = 2
	}

	issues, err := a.store.QueryIssues(ctx, models.IssueQuery{})
	if err != nil {
		return nil, err
	}

	type cluster struct {
		anchor      models.Issue
		issues      []models.Issue
		severitySum int
	}

	var clusters []*cluster
	for _, issue := range issues {
		if !issue.Open() {
			continue
		}
		if issue.Location.Lat == 0 && issue.Location.Lng == 0 {
			continue
		}

		placed := false
		for _, c := range clusters {
			d := insights.DistanceKm(c.anchor.Location.Lat, c.anchor.Location.Lng, issue.Location.Lat, issue.Location.Lng)
			if d <= hotspotRadiusKm {
				c.issues = append(c.issues, issue)
				if issue.Insights != nil {
					c.severitySum += issue.Insights.SeverityScore
				}
				placed = true
				break
			}
		}
		if !placed {
			c := &cluster{anchor: issue, issues: []models.Issue{issue}}
			if issue.Insights != nil {
				c.severitySum = issue.Insights.SeverityScore
			}
			clusters = append(clusters, c)
		}
	}

	var result []Hotspot
	for _, c := range clusters {
		if len(c.issues) < minIssues {
			continue
		}
		h := Hotspot{
			Lat:        c.anchor.Location.Lat,
			Lng:        c.anchor.Location.Lng,
			City:       c.anchor.Location.City,
			IssueCount: len(c.issues),
		}
		scored := 0
		for _, issue := range c.issues {
			h.IssueIDs = append(h.IssueIDs, issue.ID)
			if issue.Insights != nil {
				scored++
			}
		}
		if scored > 0 {
			h.MeanSeverity = float64(c.severitySum) / float64(scored)
		}
		result = append(result, h)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].IssueCount != result[j].IssueCount {
			return result[i].IssueCount > result[j].IssueCount
		}
		return result[i].MeanSeverity > result[j].MeanSeverity
	})

	return result, nil
}

// Overview computes the overall dashboard summary
func (a *Analytics) Overview(ctx context.Context) (*Summary, error) {
	issues, err := a.store.QueryIssues(ctx, models.IssueQuery{})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalIssues: len(issues),
		ByStatus:    make(map[models.IssueStatus]int),
		ByCategory:  make(map[models.Category]int),
	}

	urgencySum, severitySum, scored, resolved := 0, 0, 0, 0
	for _, issue := range issues {
		summary.ByStatus[issue.Status]++
		summary.ByCategory[issue.Category]++
		if issue.Insights != nil {
			urgencySum += issue.Insights.UrgencyScore
			severitySum += issue.Insights.SeverityScore
			scored++
		}
		if issue.Status == models.StatusResolved || issue.Status == models.StatusClosed {
			resolved++
		}
	}

	if scored > 0 {
		summary.AvgUrgency = float64(urgencySum) / float64(scored)
		summary.AvgSeverity = float64(severitySum) / float64(scored)
	}
	if len(issues) > 0 {
		summary.ResolutionRate = float64(resolved) / float64(len(issues))
	}

	return summary, nil
}
