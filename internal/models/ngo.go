package models

// NGO is a registered non-governmental organization that can request to
// assist with issues and receive simulated donations.
type NGO struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	Contact            string `json:"contact"`
	Email              string `json:"email"`
	Location           string `json:"location"`
	State              string `json:"state"`
	RegistrationNumber string `json:"registrationNumber"`
	TotalDonations     int64  `json:"totalDonations"`
	DonorCount         int    `json:"donorCount"`
}

// DonationStatus for recorded donations. Payments are never processed for
// real; every stored donation carries the demo marker.
const DonationDemoSuccessful = "demo_successful"

// Donation is a simulated contribution to an NGO.
type Donation struct {
	ID        string `json:"id"`
	NGOID     string `json:"ngoId"`
	NGOName   string `json:"ngoName"`
	DonorID   string `json:"donorId"`
	DonorName string `json:"donorName"`
	DonorType string `json:"donorType"`
	Amount    int64  `json:"amount"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"`
}

// NGORequestStatus tracks authority review of an assistance request.
type NGORequestStatus string

const (
	NGORequestPending  NGORequestStatus = "pending"
	NGORequestApproved NGORequestStatus = "approved"
	NGORequestRejected NGORequestStatus = "rejected"
)

// NGORequest is an NGO's offer to assist with a specific issue, reviewed by
// a municipal authority.
type NGORequest struct {
	ID             string           `json:"id"`
	NGOID          string           `json:"ngoId"`
	NGOName        string           `json:"ngoName"`
	IssueID        string           `json:"issueId"`
	IssueTitle     string           `json:"issueTitle"`
	IssueCategory  Category         `json:"issueCategory"`
	RequestMessage string           `json:"requestMessage"`
	Timestamp      int64            `json:"timestamp"`
	Status         NGORequestStatus `json:"status"`
	ReviewedBy     string           `json:"reviewedBy,omitempty"`
	ReviewedAt     int64            `json:"reviewedAt,omitempty"`
	ReviewNotes    string           `json:"reviewNotes,omitempty"`
}

// NGORequestQuery represents filter parameters for listing NGO requests.
type NGORequestQuery struct {
	NGOID    string             `json:"ngoId"`
	IssueID  string             `json:"issueId"`
	Statuses []NGORequestStatus `json:"statuses"`
}

// Matches checks if a request satisfies the query criteria.
func (q NGORequestQuery) Matches(req NGORequest) bool {
	if q.NGOID != "" && req.NGOID != q.NGOID {
		return false
	}
	if q.IssueID != "" && req.IssueID != q.IssueID {
		return false
	}
	if len(q.Statuses) > 0 {
		found := false
		for _, s := range q.Statuses {
			if s == req.Status {
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

// DonationQuery represents filter parameters for listing donations.
type DonationQuery struct {
	NGOID   string `json:"ngoId"`
	DonorID string `json:"donorId"`
}

// Matches checks if a donation satisfies the query criteria.
func (q DonationQuery) Matches(d Donation) bool {
	if q.NGOID != "" && d.NGOID != q.NGOID {
		return false
	}
	if q.DonorID != "" && d.DonorID != q.DonorID {
		return false
	}
	return true
}
