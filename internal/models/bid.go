package models

// BidStatus tracks a contractor bid through its lifecycle.
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// Bid is a contractor's offer to resolve an issue.
type Bid struct {
	ID                string    `json:"id"`
	IssueID           string    `json:"issueId"`
	CollaboratorID    string    `json:"collaboratorId"`
	CollaboratorName  string    `json:"collaboratorName"`
	Company           string    `json:"company"`
	Amount            int64     `json:"amount"`
	Duration          int       `json:"duration"`
	Proposal          string    `json:"proposal"`
	Timestamp         int64     `json:"timestamp"`
	Status            BidStatus `json:"status"`
	Rating            float64   `json:"rating,omitempty"`
	CompletedProjects int       `json:"completedProjects,omitempty"`
}

// BidRange is the advisory bid band derived from the cost estimate.
type BidRange struct {
	Min         int64 `json:"min"`
	Max         int64 `json:"max"`
	Recommended int64 `json:"recommended"`
}

// BidQuery represents filter parameters for listing bids.
type BidQuery struct {
	IssueID        string      `json:"issueId"`
	CollaboratorID string      `json:"collaboratorId"`
	Statuses       []BidStatus `json:"statuses"`
	Limit          int         `json:"limit"`
	Offset         int         `json:"offset"`
}

// Matches checks if a bid satisfies the query criteria.
func (q BidQuery) Matches(bid Bid) bool {
	if q.IssueID != "" && bid.IssueID != q.IssueID {
		return false
	}
	if q.CollaboratorID != "" && bid.CollaboratorID != q.CollaboratorID {
		return false
	}
	if len(q.Statuses) > 0 {
		found := false
		for _, s := range q.Statuses {
			if s == bid.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
