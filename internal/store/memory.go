package store

import (
	"context"
	"sort"
	"sync"

	"github.com/janmarg/civicreport/internal/models"
)

// InMemoryStore implements Store using in-memory storage
type InMemoryStore struct {
	mu        sync.RWMutex
	issues    map[string]models.Issue
	bids      map[string]models.Bid
	ngos      map[string]models.NGO
	requests  map[string]models.NGORequest
	donations map[string]models.Donation
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		issues:    make(map[string]models.Issue),
		bids:      make(map[string]models.Bid),
		ngos:      make(map[string]models.NGO),
		requests:  make(map[string]models.NGORequest),
		donations: make(map[string]models.Donation),
	}
}

// UpsertIssues stores issues in memory
func (s *InMemoryStore) UpsertIssues(ctx context.Context, issues []models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, issue := range issues {
		s.issues[issue.ID] = issue
	}

	return nil
}

// QueryIssues retrieves issues from memory based on query parameters
func (s *InMemoryStore) QueryIssues(ctx context.Context, q models.IssueQuery) ([]models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Issue
	for _, issue := range s.issues {
		if q.Matches(issue) {
			result = append(result, issue)
		}
	}

	// Sort by CreatedAt descending, ID as tie-break so pages are stable
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt > result[j].CreatedAt
		}
		return result[i].ID < result[j].ID
	})

	// Apply limit and offset
	if q.Offset > 0 && q.Offset < len(result) {
		result = result[q.Offset:]
	} else if q.Offset >= len(result) && q.Offset > 0 {
		result = []models.Issue{}
	}

	if q.Limit > 0 && q.Limit < len(result) {
		result = result[:q.Limit]
	}

	return result, nil
}

// GetIssue retrieves a single issue by ID
func (s *InMemoryStore) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if issue, exists := s.issues[id]; exists {
		return &issue, nil
	}

	return nil, nil
}

// UpsertBids stores bids in memory
func (s *InMemoryStore) UpsertBids(ctx context.Context, bids []models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bid := range bids {
		s.bids[bid.ID] = bid
	}

	return nil
}

// QueryBids retrieves bids matching the query, newest first
func (s *InMemoryStore) QueryBids(ctx context.Context, q models.BidQuery) ([]models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Bid
	for _, bid := range s.bids {
		if q.Matches(bid) {
			result = append(result, bid)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp > result[j].Timestamp
		}
		return result[i].ID < result[j].ID
	})

	if q.Offset > 0 && q.Offset < len(result) {
		result = result[q.Offset:]
	} else if q.Offset >= len(result) && q.Offset > 0 {
		result = []models.Bid{}
	}

	if q.Limit > 0 && q.Limit < len(result) {
		result = result[:q.Limit]
	}

	return result, nil
}

// GetBid retrieves a single bid by ID
func (s *InMemoryStore) GetBid(ctx context.Context, id string) (*models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if bid, exists := s.bids[id]; exists {
		return &bid, nil
	}

	return nil, nil
}

// UpsertNGOs stores NGOs in memory
func (s *InMemoryStore) UpsertNGOs(ctx context.Context, ngos []models.NGO) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ngo := range ngos {
		s.ngos[ngo.ID] = ngo
	}

	return nil
}

// ListNGOs returns all registered NGOs sorted by name
func (s *InMemoryStore) ListNGOs(ctx context.Context) ([]models.NGO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.NGO
	for _, ngo := range s.ngos {
		result = append(result, ngo)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// GetNGO retrieves a single NGO by ID
func (s *InMemoryStore) GetNGO(ctx context.Context, id string) (*models.NGO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ngo, exists := s.ngos[id]; exists {
		return &ngo, nil
	}

	return nil, nil
}

// UpsertNGORequests stores NGO assistance requests in memory
func (s *InMemoryStore) UpsertNGORequests(ctx context.Context, reqs []models.NGORequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, req := range reqs {
		s.requests[req.ID] = req
	}

	return nil
}

// QueryNGORequests retrieves assistance requests matching the query, newest first
func (s *InMemoryStore) QueryNGORequests(ctx context.Context, q models.NGORequestQuery) ([]models.NGORequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.NGORequest
	for _, req := range s.requests {
		if q.Matches(req) {
			result = append(result, req)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp > result[j].Timestamp
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// GetNGORequest retrieves a single assistance request by ID
func (s *InMemoryStore) GetNGORequest(ctx context.Context, id string) (*models.NGORequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if req, exists := s.requests[id]; exists {
		return &req, nil
	}

	return nil, nil
}

// InsertDonations records simulated donations in memory
func (s *InMemoryStore) InsertDonations(ctx context.Context, donations []models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range donations {
		s.donations[d.ID] = d
	}

	return nil
}

// QueryDonations retrieves donations matching the query, newest first
func (s *InMemoryStore) QueryDonations(ctx context.Context, q models.DonationQuery) ([]models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Donation
	for _, d := range s.donations {
		if q.Matches(d) {
			result = append(result, d)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp > result[j].Timestamp
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Health always returns nil for in-memory store
func (s *InMemoryStore) Health(ctx context.Context) error {
	return nil
}
