package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/janmarg/civicreport/internal/errors"
	"github.com/janmarg/civicreport/internal/logger"
	"github.com/janmarg/civicreport/internal/models"
)

// RegisterNGOInput carries the fields of a new NGO registration.
type RegisterNGOInput struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	Contact            string `json:"contact"`
	Email              string `json:"email"`
	Location           string `json:"location"`
	State              string `json:"state"`
	RegistrationNumber string `json:"registrationNumber"`
}

// RegisterNGO stores a new NGO
func (s *Service) RegisterNGO(ctx context.Context, input RegisterNGOInput) (*models.NGO, error) {
	if input.Name == "" {
		return nil, errors.ValidationError{Field: "name", Message: "name is required"}
	}

	ngo := models.NGO{
		ID:                 uuid.NewString(),
		Name:               input.Name,
		Description:        input.Description,
		Category:           input.Category,
		Contact:            input.Contact,
		Email:              input.Email,
		Location:           input.Location,
		State:              input.State,
		RegistrationNumber: input.RegistrationNumber,
	}

	if err := s.store.UpsertNGOs(ctx, []models.NGO{ngo}); err != nil {
		return nil, err
	}

	return &ngo, nil
}

// ListNGOs returns all registered NGOs
func (s *Service) ListNGOs(ctx context.Context) ([]models.NGO, error) {
	return s.store.ListNGOs(ctx)
}

// GetNGO returns a single NGO
func (s *Service) GetNGO(ctx context.Context, id string) (*models.NGO, error) {
	ngo, err := s.store.GetNGO(ctx, id)
	if err != nil {
		return nil, err
	}
	if ngo == nil {
		return nil, errors.ErrNotFound
	}
	return ngo, nil
}

// CreateNGORequest records an NGO's offer to assist with an issue
func (s *Service) CreateNGORequest(ctx context.Context, ngoID, issueID, message string) (*models.NGORequest, error) {
	ngo, err := s.store.GetNGO(ctx, ngoID)
	if err != nil {
		return nil, err
	}
	if ngo == nil {
		return nil, fmt.Errorf("ngo %s: %w", ngoID, errors.ErrNotFound)
	}

	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, fmt.Errorf("issue %s: %w", issueID, errors.ErrNotFound)
	}

	pending, err := s.store.QueryNGORequests(ctx, models.NGORequestQuery{
		NGOID:    ngoID,
		IssueID:  issueID,
		Statuses: []models.NGORequestStatus{models.NGORequestPending},
	})
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("ngo %s already has a pending request for issue %s: %w", ngoID, issueID, errors.ErrConflict)
	}

	req := models.NGORequest{
		ID:             uuid.NewString(),
		NGOID:          ngo.ID,
		NGOName:        ngo.Name,
		IssueID:        issue.ID,
		IssueTitle:     issue.Title,
		IssueCategory:  issue.Category,
		RequestMessage: message,
		Timestamp:      s.nowMillis(),
		Status:         models.NGORequestPending,
	}

	if err := s.store.UpsertNGORequests(ctx, []models.NGORequest{req}); err != nil {
		return nil, err
	}

	logger.Info("NGO assistance request created", "request_id", req.ID, "ngo_id", ngoID, "issue_id", issueID)

	return &req, nil
}

// ListNGORequests returns assistance requests matching the query
func (s *Service) ListNGORequests(ctx context.Context, q models.NGORequestQuery) ([]models.NGORequest, error) {
	return s.store.QueryNGORequests(ctx, q)
}

// ReviewNGORequest approves or rejects a pending assistance request
func (s *Service) ReviewNGORequest(ctx context.Context, requestID string, approve bool, reviewer, notes string) (*models.NGORequest, error) {
	req, err := s.store.GetNGORequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errors.ErrNotFound
	}
	if req.Status != models.NGORequestPending {
		return nil, errors.TransitionError{From: string(req.Status), To: "reviewed"}
	}

	if approve {
		req.Status = models.NGORequestApproved
	} else {
		req.Status = models.NGORequestRejected
	}
	req.ReviewedBy = reviewer
	req.ReviewedAt = s.nowMillis()
	req.ReviewNotes = notes

	if err := s.store.UpsertNGORequests(ctx, []models.NGORequest{*req}); err != nil {
		return nil, err
	}

	logger.Info("NGO request reviewed", "request_id", req.ID, "status", req.Status, "reviewer", reviewer)

	return req, nil
}

// DonateInput carries a simulated donation.
type DonateInput struct {
	NGOID     string `json:"ngoId"`
	DonorID   string `json:"donorId"`
	DonorName string `json:"donorName"`
	DonorType string `json:"donorType"`
	Amount    int64  `json:"amount"`
	Message   string `json:"message"`
}

// Donate records a simulated donation and aggregates it onto the NGO. No
// payment provider is involved; every donation succeeds with the demo marker.
func (s *Service) Donate(ctx context.Context, input DonateInput) (*models.Donation, error) {
	if input.Amount <= 0 {
		return nil, errors.ValidationError{Field: "amount", Message: "amount must be positive"}
	}

	ngo, err := s.store.GetNGO(ctx, input.NGOID)
	if err != nil {
		return nil, err
	}
	if ngo == nil {
		return nil, fmt.Errorf("ngo %s: %w", input.NGOID, errors.ErrNotFound)
	}

	prior, err := s.store.QueryDonations(ctx, models.DonationQuery{
		NGOID:   input.NGOID,
		DonorID: input.DonorID,
	})
	if err != nil {
		return nil, err
	}

	donation := models.Donation{
		ID:        uuid.NewString(),
		NGOID:     ngo.ID,
		NGOName:   ngo.Name,
		DonorID:   input.DonorID,
		DonorName: input.DonorName,
		DonorType: input.DonorType,
		Amount:    input.Amount,
		Message:   input.Message,
		Timestamp: s.nowMillis(),
		Status:    models.DonationDemoSuccessful,
	}

	if err := s.store.InsertDonations(ctx, []models.Donation{donation}); err != nil {
		return nil, err
	}

	ngo.TotalDonations += input.Amount
	if len(prior) == 0 {
		ngo.DonorCount++
	}

	if err := s.store.UpsertNGOs(ctx, []models.NGO{*ngo}); err != nil {
		return nil, err
	}

	logger.Info("Donation recorded", "donation_id", donation.ID, "ngo_id", ngo.ID, "amount", donation.Amount)

	return &donation, nil
}

// ListDonations returns donations matching the query
func (s *Service) ListDonations(ctx context.Context, q models.DonationQuery) ([]models.Donation, error) {
	return s.store.QueryDonations(ctx, q)
}
