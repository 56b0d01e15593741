package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/janmarg/civicreport/internal/models"
)

// Store defines the interface for issue, bid, NGO and donation storage
type Store interface {
	UpsertIssues(ctx context.Context, issues []models.Issue) error
	QueryIssues(ctx context.Context, q models.IssueQuery) ([]models.Issue, error)
	GetIssue(ctx context.Context, id string) (*models.Issue, error)

	UpsertBids(ctx context.Context, bids []models.Bid) error
	QueryBids(ctx context.Context, q models.BidQuery) ([]models.Bid, error)
	GetBid(ctx context.Context, id string) (*models.Bid, error)

	UpsertNGOs(ctx context.Context, ngos []models.NGO) error
	ListNGOs(ctx context.Context) ([]models.NGO, error)
	GetNGO(ctx context.Context, id string) (*models.NGO, error)

	UpsertNGORequests(ctx context.Context, reqs []models.NGORequest) error
	QueryNGORequests(ctx context.Context, q models.NGORequestQuery) ([]models.NGORequest, error)
	GetNGORequest(ctx context.Context, id string) (*models.NGORequest, error)

	InsertDonations(ctx context.Context, donations []models.Donation) error
	QueryDonations(ctx context.Context, q models.DonationQuery) ([]models.Donation, error)

	Health(ctx context.Context) error
}

// Database interface for dependency injection
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Health(ctx context.Context) error
	IsConfigured() bool
}

// New creates a new store instance
func New(db Database) Store {
	if db.IsConfigured() {
		return NewPostgresStore(db)
	}
	// Fallback to in-memory store if no database
	return NewInMemoryStore()
}
