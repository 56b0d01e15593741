// Package service implements the issue lifecycle rules: submission and
// scoring, voting, commenting, contractor bidding, status transitions, NGO
// assistance requests and simulated donations. All storage goes through the
// store interface; all derived scores come from the insights package.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/janmarg/civicreport/internal/errors"
	"github.com/janmarg/civicreport/internal/geocoder"
	"github.com/janmarg/civicreport/internal/insights"
	"github.com/janmarg/civicreport/internal/logger"
	"github.com/janmarg/civicreport/internal/metrics"
	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/internal/store"
)

// Service coordinates issue, bid, NGO and donation operations
type Service struct {
	store store.Store
	geo   *geocoder.Geocoder
	now   func() time.Time
}

// New creates a new service instance
func New(st store.Store, geo *geocoder.Geocoder) *Service {
	return &Service{
		store: st,
		geo:   geo,
		now:   time.Now,
	}
}

func (s *Service) nowMillis() int64 {
	return s.now().UnixMilli()
}

// allowedTransitions maps each issue status to the statuses it may move to.
var allowedTransitions = map[models.IssueStatus][]models.IssueStatus{
	models.StatusSubmitted:  {models.StatusBidding, models.StatusAssigned, models.StatusInProgress, models.StatusClosed},
	models.StatusBidding:    {models.StatusAssigned, models.StatusClosed},
	models.StatusAssigned:   {models.StatusInProgress, models.StatusClosed},
	models.StatusInProgress: {models.StatusResolved, models.StatusClosed},
	models.StatusResolved:   {models.StatusClosed},
	models.StatusClosed:     {},
}

func transitionAllowed(from, to models.IssueStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SubmitIssueInput carries the reporter-supplied fields of a new issue.
type SubmitIssueInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	Location    models.Location `json:"location"`
	ImageURL    string          `json:"imageUrl"`
	UserID      string          `json:"userId"`
	UserName    string          `json:"userName"`
	IsAnonymous bool            `json:"isAnonymous"`
}

// SubmitIssue validates, geocodes, scores and stores a new issue. The insight
// bundle is computed exactly once here; later edits to the issue do not
// recompute it.
func (s *Service) SubmitIssue(ctx context.Context, input SubmitIssueInput) (*models.Issue, error) {
	if input.Title == "" {
		return nil, errors.ValidationError{Field: "title", Message: "title is required"}
	}
	if input.Description == "" {
		return nil, errors.ValidationError{Field: "description", Message: "description is required"}
	}

	if err := s.geo.Geocode(&input.Location); err != nil {
		return nil, fmt.Errorf("geocode location: %w", err)
	}

	now := s.nowMillis()
	issue := models.Issue{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Status:      models.StatusSubmitted,
		ImageURL:    input.ImageURL,
		UserID:      input.UserID,
		UserName:    input.UserName,
		IsAnonymous: input.IsAnonymous,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Reporters may leave the category blank; fall back to the classifier.
	if issue.Category == "" {
		issue.Category = insights.ClassifyIssue(issue.Title, issue.Description)
	}
	issue.Department = insights.RouteToDepartment(issue.Category)

	issue.Timeline = []models.TimelineEvent{{
		ID:          uuid.NewString(),
		IssueID:     issue.ID,
		Type:        models.EventCreated,
		Description: "Issue reported",
		Timestamp:   now,
		UserID:      issue.UserID,
		UserName:    issue.UserName,
	}}

	corpus, err := s.store.QueryIssues(ctx, models.IssueQuery{})
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	start := time.Now()
	bundle := insights.Generate(issue, corpus, s.now())
	issue.Insights = &bundle
	issue.Priority = insights.CalculatePriority(issue)
	metrics.RecordIssueScored(string(issue.Category), time.Since(start))

	if err := s.store.UpsertIssues(ctx, []models.Issue{issue}); err != nil {
		return nil, fmt.Errorf("store issue: %w", err)
	}

	metrics.RecordIssueSubmitted(string(issue.Category))
	logger.Info("Issue submitted",
		"issue_id", issue.ID,
		"category", issue.Category,
		"urgency", bundle.UrgencyScore,
		"duplicate_score", bundle.DuplicateScore,
	)

	return &issue, nil
}

// GetIssue returns a single issue with its bids attached
func (s *Service) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	issue, err := s.store.GetIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, errors.ErrNotFound
	}

	bids, err := s.store.QueryBids(ctx, models.BidQuery{IssueID: id})
	if err != nil {
		return nil, err
	}
	issue.Bids = bids

	return issue, nil
}

// ListIssues returns issues matching the query
func (s *Service) ListIssues(ctx context.Context, q models.IssueQuery) ([]models.Issue, error) {
	return s.store.QueryIssues(ctx, q)
}

// Vote registers an upvote or downvote. Each user votes at most once per
// issue.
func (s *Service) Vote(ctx context.Context, issueID, userID string, upvote bool) (*models.Issue, error) {
	if userID == "" {
		return nil, errors.ValidationError{Field: "userId", Message: "userId is required"}
	}

	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, errors.ErrNotFound
	}

	for _, voter := range issue.VotedBy {
		if voter == userID {
			return nil, fmt.Errorf("user %s already voted: %w", userID, errors.ErrConflict)
		}
	}

	if upvote {
		issue.Upvotes++
	} else {
		issue.Downvotes++
	}
	issue.VotedBy = append(issue.VotedBy, userID)
	issue.UpdatedAt = s.nowMillis()

	if err := s.store.UpsertIssues(ctx, []models.Issue{*issue}); err != nil {
		return nil, err
	}

	return issue, nil
}

// AddComment appends a comment and records it on the timeline
func (s *Service) AddComment(ctx context.Context, issueID, userID, userName, text string, isOfficial bool) (*models.Comment, error) {
	if text == "" {
		return nil, errors.ValidationError{Field: "text", Message: "comment text is required"}
	}

	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, errors.ErrNotFound
	}

	now := s.nowMillis()
	comment := models.Comment{
		ID:         uuid.NewString(),
		IssueID:    issueID,
		UserID:     userID,
		UserName:   userName,
		Text:       text,
		Timestamp:  now,
		IsOfficial: isOfficial,
	}

	issue.Comments = append(issue.Comments, comment)
	issue.Timeline = append(issue.Timeline, models.TimelineEvent{
		ID:          uuid.NewString(),
		IssueID:     issueID,
		Type:        models.EventComment,
		Description: "Comment added",
		Timestamp:   now,
		UserID:      userID,
		UserName:    userName,
	})
	issue.UpdatedAt = now

	if err := s.store.UpsertIssues(ctx, []models.Issue{*issue}); err != nil {
		return nil, err
	}

	return &comment, nil
}

// RecordView increments an issue's view counter
func (s *Service) RecordView(ctx context.Context, issueID string) error {
	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return err
	}
	if issue == nil {
		return errors.ErrNotFound
	}

	issue.ViewCount++

	return s.store.UpsertIssues(ctx, []models.Issue{*issue})
}

// PlaceBidInput carries a contractor's offer on an issue.
type PlaceBidInput struct {
	IssueID           string  `json:"issueId"`
	CollaboratorID    string  `json:"collaboratorId"`
	CollaboratorName  string  `json:"collaboratorName"`
	Company           string  `json:"company"`
	Amount            int64   `json:"amount"`
	Duration          int     `json:"duration"`
	Proposal          string  `json:"proposal"`
	Rating            float64 `json:"rating"`
	CompletedProjects int     `json:"completedProjects"`
}

// PlaceBid records a pending bid. The first bid moves the issue into
// bidding; a collaborator holds at most one pending bid per issue.
func (s *Service) PlaceBid(ctx context.Context, input PlaceBidInput) (*models.Bid, error) {
	if input.CollaboratorID == "" {
		return nil, errors.ValidationError{Field: "collaboratorId", Message: "collaboratorId is required"}
	}
	if input.Amount <= 0 {
		return nil, errors.ValidationError{Field: "amount", Message: "amount must be positive"}
	}

	issue, err := s.store.GetIssue(ctx, input.IssueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, errors.ErrNotFound
	}
	if issue.Status != models.StatusSubmitted && issue.Status != models.StatusBidding {
		return nil, fmt.Errorf("issue %s is not accepting bids: %w", issue.ID, errors.ErrConflict)
	}

	existing, err := s.store.QueryBids(ctx, models.BidQuery{
		IssueID:        input.IssueID,
		CollaboratorID: input.CollaboratorID,
		Statuses:       []models.BidStatus{models.BidPending},
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("collaborator %s already has a pending bid: %w", input.CollaboratorID, errors.ErrConflict)
	}

	now := s.nowMillis()
	bid := models.Bid{
		ID:                uuid.NewString(),
		IssueID:           input.IssueID,
		CollaboratorID:    input.CollaboratorID,
		CollaboratorName:  input.CollaboratorName,
		Company:           input.Company,
		Amount:            input.Amount,
		Duration:          input.Duration,
		Proposal:          input.Proposal,
		Timestamp:         now,
		Status:            models.BidPending,
		Rating:            input.Rating,
		CompletedProjects: input.CompletedProjects,
	}

	if err := s.store.UpsertBids(ctx, []models.Bid{bid}); err != nil {
		return nil, err
	}

	if issue.Status == models.StatusSubmitted {
		issue.Status = models.StatusBidding
		issue.Timeline = append(issue.Timeline, models.TimelineEvent{
			ID:          uuid.NewString(),
			IssueID:     issue.ID,
			Type:        models.EventBiddingOpened,
			Description: "Bidding opened",
			Timestamp:   now,
		})
	}
	issue.UpdatedAt = now

	if err := s.store.UpsertIssues(ctx, []models.Issue{*issue}); err != nil {
		return nil, err
	}

	logger.Info("Bid placed", "issue_id", issue.ID, "bid_id", bid.ID, "amount", bid.Amount)

	return &bid, nil
}

// AcceptBid accepts one bid, rejects all sibling pending bids and assigns
// the winning collaborator as the issue's contractor.
func (s *Service) AcceptBid(ctx context.Context, issueID, bidID string) (*models.Issue, error) {
	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, errors.ErrNotFound
	}

	bid, err := s.store.GetBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid == nil || bid.IssueID != issueID {
		return nil, errors.ErrNotFound
	}
	if bid.Status != models.BidPending {
		return nil, fmt.Errorf("bid %s is not pending: %w", bidID, errors.ErrConflict)
	}
	if !transitionAllowed(issue.Status, models.StatusAssigned) {
		return nil, errors.TransitionError{From: string(issue.Status), To: string(models.StatusAssigned)}
	}

	siblings, err := s.store.QueryBids(ctx, models.BidQuery{
		IssueID:  issueID,
		Statuses: []models.BidStatus{models.BidPending},
	})
	if err != nil {
		return nil, err
	}

	now := s.nowMillis()
	var updated []models.Bid
	for _, sibling := range siblings {
		if sibling.ID == bidID {
			sibling.Status = models.BidAccepted
		} else {
			sibling.Status = models.BidRejected
		}
		updated = append(updated, sibling)
	}

	if err := s.store.UpsertBids(ctx, updated); err != nil {
		return nil, err
	}

	issue.Status = models.StatusAssigned
	issue.AssignedContractor = &models.Contractor{
		ID:                bid.CollaboratorID,
		Name:              bid.CollaboratorName,
		Department:        issue.Department,
		Rating:            bid.Rating,
		Company:           bid.Company,
		CompletedProjects: bid.CompletedProjects,
	}
	issue.Timeline = append(issue.Timeline, models.TimelineEvent{
		ID:          uuid.NewString(),
		IssueID:     issue.ID,
		Type:        models.EventBidAccepted,
		Description: fmt.Sprintf("Bid accepted from %s", bid.CollaboratorName),
		Timestamp:   now,
	})
	issue.UpdatedAt = now

	if err := s.store.UpsertIssues(ctx, []models.Issue{*issue}); err != nil {
		return nil, err
	}

	logger.Info("Bid accepted", "issue_id", issue.ID, "bid_id", bidID, "contractor", bid.CollaboratorName)

	return issue, nil
}

// ListBids returns bids matching the query
func (s *Service) ListBids(ctx context.Context, q models.BidQuery) ([]models.Bid, error) {
	return s.store.QueryBids(ctx, q)
}

// UpdateStatus moves an issue to a new status if the transition is allowed
func (s *Service) UpdateStatus(ctx context.Context, issueID string, to models.IssueStatus, userID, userName string) (*models.Issue, error) {
	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, errors.ErrNotFound
	}

	if !transitionAllowed(issue.Status, to) {
		return nil, errors.TransitionError{From: string(issue.Status), To: string(to)}
	}

	now := s.nowMillis()
	from := issue.Status
	issue.Status = to

	eventType := models.EventStatusChange
	if to == models.StatusClosed {
		eventType = models.EventClosed
	}
	issue.Timeline = append(issue.Timeline, models.TimelineEvent{
		ID:          uuid.NewString(),
		IssueID:     issue.ID,
		Type:        eventType,
		Description: fmt.Sprintf("Status changed from %s to %s", from, to),
		Timestamp:   now,
		UserID:      userID,
		UserName:    userName,
	})
	issue.UpdatedAt = now

	if err := s.store.UpsertIssues(ctx, []models.Issue{*issue}); err != nil {
		return nil, err
	}

	logger.Info("Issue status changed", "issue_id", issue.ID, "from", from, "to", to)

	return issue, nil
}

// PreviewInsights scores an issue against the stored corpus without
// persisting anything.
func (s *Service) PreviewInsights(ctx context.Context, issue models.Issue) (*models.Insights, error) {
	if issue.Title == "" && issue.Description == "" {
		return nil, errors.ValidationError{Field: "title", Message: "title or description is required"}
	}
	if issue.Category == "" {
		issue.Category = insights.ClassifyIssue(issue.Title, issue.Description)
	}

	corpus, err := s.store.QueryIssues(ctx, models.IssueQuery{})
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	bundle := insights.Generate(issue, corpus, s.now())
	return &bundle, nil
}

// RecommendedBidRange returns the advisory bid band for an issue
func (s *Service) RecommendedBidRange(ctx context.Context, issueID string) (*models.BidRange, error) {
	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, errors.ErrNotFound
	}

	r := insights.RecommendedBidRange(*issue)
	return &r, nil
}
