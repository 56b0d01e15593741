package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/janmarg/civicreport/internal/models"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db Database
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(db Database) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the tables if they do not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS issues (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			status TEXT NOT NULL,
			department TEXT,
			priority TEXT,
			image_url TEXT,
			user_id TEXT,
			user_name TEXT,
			is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
			upvotes INT NOT NULL DEFAULT 0,
			downvotes INT NOT NULL DEFAULT 0,
			view_count INT NOT NULL DEFAULT 0,
			voted_by TEXT[],
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			address TEXT,
			city TEXT,
			state TEXT,
			pincode TEXT,
			comments JSONB,
			timeline JSONB,
			insights JSONB,
			contractor JSONB,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_category ON issues (category)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_status ON issues (status)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_city ON issues (city)`,
		`CREATE TABLE IF NOT EXISTS bids (
			id TEXT PRIMARY KEY,
			issue_id TEXT NOT NULL,
			collaborator_id TEXT NOT NULL,
			collaborator_name TEXT,
			company TEXT,
			amount BIGINT NOT NULL,
			duration INT NOT NULL,
			proposal TEXT,
			ts BIGINT NOT NULL,
			status TEXT NOT NULL,
			rating DOUBLE PRECISION,
			completed_projects INT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bids_issue ON bids (issue_id)`,
		`CREATE TABLE IF NOT EXISTS ngos (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			contact TEXT,
			email TEXT,
			location TEXT,
			state TEXT,
			registration_number TEXT,
			total_donations BIGINT NOT NULL DEFAULT 0,
			donor_count INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS ngo_requests (
			id TEXT PRIMARY KEY,
			ngo_id TEXT NOT NULL,
			ngo_name TEXT,
			issue_id TEXT NOT NULL,
			issue_title TEXT,
			issue_category TEXT,
			request_message TEXT,
			ts BIGINT NOT NULL,
			status TEXT NOT NULL,
			reviewed_by TEXT,
			reviewed_at BIGINT,
			review_notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS donations (
			id TEXT PRIMARY KEY,
			ngo_id TEXT NOT NULL,
			ngo_name TEXT,
			donor_id TEXT,
			donor_name TEXT,
			donor_type TEXT,
			amount BIGINT NOT NULL,
			message TEXT,
			ts BIGINT NOT NULL,
			status TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

// UpsertIssues inserts or updates issues in the database
func (s *PostgresStore) UpsertIssues(ctx context.Context, issues []models.Issue) error {
	if len(issues) == 0 {
		return nil
	}

	// Use UPSERT (INSERT ... ON CONFLICT DO UPDATE)
	query := `
		INSERT INTO issues (
			id, title, description, category, status, department, priority,
			image_url, user_id, user_name, is_anonymous, upvotes, downvotes,
			view_count, voted_by, lat, lng, address, city, state, pincode,
			comments, timeline, insights, contractor, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			department = EXCLUDED.department,
			priority = EXCLUDED.priority,
			image_url = EXCLUDED.image_url,
			user_id = EXCLUDED.user_id,
			user_name = EXCLUDED.user_name,
			is_anonymous = EXCLUDED.is_anonymous,
			upvotes = EXCLUDED.upvotes,
			downvotes = EXCLUDED.downvotes,
			view_count = EXCLUDED.view_count,
			voted_by = EXCLUDED.voted_by,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			pincode = EXCLUDED.pincode,
			comments = EXCLUDED.comments,
			timeline = EXCLUDED.timeline,
			insights = EXCLUDED.insights,
			contractor = EXCLUDED.contractor,
			updated_at = EXCLUDED.updated_at
	`

	for _, issue := range issues {
		err := s.db.Exec(ctx, query,
			issue.ID, issue.Title, issue.Description, issue.Category, issue.Status,
			issue.Department, issue.Priority, issue.ImageURL, issue.UserID,
			issue.UserName, issue.IsAnonymous, issue.Upvotes, issue.Downvotes,
			issue.ViewCount, issue.VotedBy, issue.Location.Lat, issue.Location.Lng,
			issue.Location.Address, issue.Location.City, issue.Location.State,
			issue.Location.Pincode, issue.Comments, issue.Timeline, issue.Insights,
			issue.AssignedContractor, issue.CreatedAt, issue.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert issue %s: %w", issue.ID, err)
		}
	}

	return nil
}

const issueColumns = `id, title, description, category, status, department, priority,
	image_url, user_id, user_name, is_anonymous, upvotes, downvotes,
	view_count, voted_by, lat, lng, address, city, state, pincode,
	comments, timeline, insights, contractor, created_at, updated_at`

func scanIssue(row pgx.Row) (*models.Issue, error) {
	var issue models.Issue
	err := row.Scan(
		&issue.ID, &issue.Title, &issue.Description, &issue.Category, &issue.Status,
		&issue.Department, &issue.Priority, &issue.ImageURL, &issue.UserID,
		&issue.UserName, &issue.IsAnonymous, &issue.Upvotes, &issue.Downvotes,
		&issue.ViewCount, &issue.VotedBy, &issue.Location.Lat, &issue.Location.Lng,
		&issue.Location.Address, &issue.Location.City, &issue.Location.State,
		&issue.Location.Pincode, &issue.Comments, &issue.Timeline, &issue.Insights,
		&issue.AssignedContractor, &issue.CreatedAt, &issue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// QueryIssues retrieves issues based on query parameters
func (s *PostgresStore) QueryIssues(ctx context.Context, q models.IssueQuery) ([]models.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE 1=1`

	var args []interface{}
	argIndex := 1

	// Build WHERE conditions
	if len(q.IDs) > 0 {
		query += fmt.Sprintf(" AND id = ANY($%d)", argIndex)
		args = append(args, q.IDs)
		argIndex++
	}

	if len(q.Categories) > 0 {
		query += fmt.Sprintf(" AND category = ANY($%d)", argIndex)
		args = append(args, categoryStrings(q.Categories))
		argIndex++
	}

	if len(q.Statuses) > 0 {
		query += fmt.Sprintf(" AND status = ANY($%d)", argIndex)
		args = append(args, statusStrings(q.Statuses))
		argIndex++
	}

	if len(q.Departments) > 0 {
		query += fmt.Sprintf(" AND department = ANY($%d)", argIndex)
		args = append(args, q.Departments)
		argIndex++
	}

	if len(q.Cities) > 0 {
		query += fmt.Sprintf(" AND city = ANY($%d)", argIndex)
		args = append(args, q.Cities)
		argIndex++
	}

	if len(q.States) > 0 {
		query += fmt.Sprintf(" AND state = ANY($%d)", argIndex)
		args = append(args, q.States)
		argIndex++
	}

	if q.Since > 0 {
		query += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, q.Since)
		argIndex++
	}

	if q.Until > 0 {
		query += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, q.Until)
		argIndex++
	}

	// Add ordering
	query += " ORDER BY created_at DESC, id ASC"

	// Add limit and offset
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, q.Limit)
		argIndex++
	}

	if q.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, q.Offset)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, *issue)
	}

	return issues, nil
}

// GetIssue retrieves a single issue by ID
func (s *PostgresStore) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = $1`

	issue, err := scanIssue(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan issue: %w", err)
	}

	return issue, nil
}

// UpsertBids inserts or updates bids in the database
func (s *PostgresStore) UpsertBids(ctx context.Context, bids []models.Bid) error {
	if len(bids) == 0 {
		return nil
	}

	query := `
		INSERT INTO bids (
			id, issue_id, collaborator_id, collaborator_name, company, amount,
			duration, proposal, ts, status, rating, completed_projects
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			duration = EXCLUDED.duration,
			proposal = EXCLUDED.proposal,
			status = EXCLUDED.status,
			rating = EXCLUDED.rating,
			completed_projects = EXCLUDED.completed_projects
	`

	for _, bid := range bids {
		err := s.db.Exec(ctx, query,
			bid.ID, bid.IssueID, bid.CollaboratorID, bid.CollaboratorName,
			bid.Company, bid.Amount, bid.Duration, bid.Proposal, bid.Timestamp,
			bid.Status, bid.Rating, bid.CompletedProjects,
		)
		if err != nil {
			return fmt.Errorf("upsert bid %s: %w", bid.ID, err)
		}
	}

	return nil
}

// QueryBids retrieves bids based on query parameters
func (s *PostgresStore) QueryBids(ctx context.Context, q models.BidQuery) ([]models.Bid, error) {
	query := `
		SELECT id, issue_id, collaborator_id, collaborator_name, company, amount,
			   duration, proposal, ts, status, rating, completed_projects
		FROM bids
		WHERE 1=1
	`

	var args []interface{}
	argIndex := 1

	if q.IssueID != "" {
		query += fmt.Sprintf(" AND issue_id = $%d", argIndex)
		args = append(args, q.IssueID)
		argIndex++
	}

	if q.CollaboratorID != "" {
		query += fmt.Sprintf(" AND collaborator_id = $%d", argIndex)
		args = append(args, q.CollaboratorID)
		argIndex++
	}

	if len(q.Statuses) > 0 {
		query += fmt.Sprintf(" AND status = ANY($%d)", argIndex)
		args = append(args, bidStatusStrings(q.Statuses))
		argIndex++
	}

	query += " ORDER BY ts DESC, id ASC"

	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, q.Limit)
		argIndex++
	}

	if q.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, q.Offset)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var bid models.Bid
		err := rows.Scan(
			&bid.ID, &bid.IssueID, &bid.CollaboratorID, &bid.CollaboratorName,
			&bid.Company, &bid.Amount, &bid.Duration, &bid.Proposal, &bid.Timestamp,
			&bid.Status, &bid.Rating, &bid.CompletedProjects,
		)
		if err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, bid)
	}

	return bids, nil
}

// GetBid retrieves a single bid by ID
func (s *PostgresStore) GetBid(ctx context.Context, id string) (*models.Bid, error) {
	query := `
		SELECT id, issue_id, collaborator_id, collaborator_name, company, amount,
			   duration, proposal, ts, status, rating, completed_projects
		FROM bids
		WHERE id = $1
	`

	var bid models.Bid
	err := s.db.QueryRow(ctx, query, id).Scan(
		&bid.ID, &bid.IssueID, &bid.CollaboratorID, &bid.CollaboratorName,
		&bid.Company, &bid.Amount, &bid.Duration, &bid.Proposal, &bid.Timestamp,
		&bid.Status, &bid.Rating, &bid.CompletedProjects,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan bid: %w", err)
	}

	return &bid, nil
}

// UpsertNGOs inserts or updates NGOs in the database
func (s *PostgresStore) UpsertNGOs(ctx context.Context, ngos []models.NGO) error {
	if len(ngos) == 0 {
		return nil
	}

	query := `
		INSERT INTO ngos (
			id, name, description, category, contact, email, location, state,
			registration_number, total_donations, donor_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			contact = EXCLUDED.contact,
			email = EXCLUDED.email,
			location = EXCLUDED.location,
			state = EXCLUDED.state,
			registration_number = EXCLUDED.registration_number,
			total_donations = EXCLUDED.total_donations,
			donor_count = EXCLUDED.donor_count
	`

	for _, ngo := range ngos {
		err := s.db.Exec(ctx, query,
			ngo.ID, ngo.Name, ngo.Description, ngo.Category, ngo.Contact,
			ngo.Email, ngo.Location, ngo.State, ngo.RegistrationNumber,
			ngo.TotalDonations, ngo.DonorCount,
		)
		if err != nil {
			return fmt.Errorf("upsert ngo %s: %w", ngo.ID, err)
		}
	}

	return nil
}

// ListNGOs returns all registered NGOs sorted by name
func (s *PostgresStore) ListNGOs(ctx context.Context) ([]models.NGO, error) {
	query := `
		SELECT id, name, description, category, contact, email, location, state,
			   registration_number, total_donations, donor_count
		FROM ngos
		ORDER BY name ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ngos: %w", err)
	}
	defer rows.Close()

	var ngos []models.NGO
	for rows.Next() {
		var ngo models.NGO
		err := rows.Scan(
			&ngo.ID, &ngo.Name, &ngo.Description, &ngo.Category, &ngo.Contact,
			&ngo.Email, &ngo.Location, &ngo.State, &ngo.RegistrationNumber,
			&ngo.TotalDonations, &ngo.DonorCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ngo: %w", err)
		}
		ngos = append(ngos, ngo)
	}

	return ngos, nil
}

// GetNGO retrieves a single NGO by ID
func (s *PostgresStore) GetNGO(ctx context.Context, id string) (*models.NGO, error) {
	query := `
		SELECT id, name, description, category, contact, email, location, state,
			   registration_number, total_donations, donor_count
		FROM ngos
		WHERE id = $1
	`

	var ngo models.NGO
	err := s.db.QueryRow(ctx, query, id).Scan(
		&ngo.ID, &ngo.Name, &ngo.Description, &ngo.Category, &ngo.Contact,
		&ngo.Email, &ngo.Location, &ngo.State, &ngo.RegistrationNumber,
		&ngo.TotalDonations, &ngo.DonorCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan ngo: %w", err)
	}

	return &ngo, nil
}

// UpsertNGORequests inserts or updates NGO assistance requests
func (s *PostgresStore) UpsertNGORequests(ctx context.Context, reqs []models.NGORequest) error {
	if len(reqs) == 0 {
		return nil
	}

	query := `
		INSERT INTO ngo_requests (
			id, ngo_id, ngo_name, issue_id, issue_title, issue_category,
			request_message, ts, status, reviewed_by, reviewed_at, review_notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			reviewed_by = EXCLUDED.reviewed_by,
			reviewed_at = EXCLUDED.reviewed_at,
			review_notes = EXCLUDED.review_notes
	`

	for _, req := range reqs {
		err := s.db.Exec(ctx, query,
			req.ID, req.NGOID, req.NGOName, req.IssueID, req.IssueTitle,
			req.IssueCategory, req.RequestMessage, req.Timestamp, req.Status,
			req.ReviewedBy, req.ReviewedAt, req.ReviewNotes,
		)
		if err != nil {
			return fmt.Errorf("upsert ngo request %s: %w", req.ID, err)
		}
	}

	return nil
}

// QueryNGORequests retrieves assistance requests based on query parameters
func (s *PostgresStore) QueryNGORequests(ctx context.Context, q models.NGORequestQuery) ([]models.NGORequest, error) {
	query := `
		SELECT id, ngo_id, ngo_name, issue_id, issue_title, issue_category,
			   request_message, ts, status, reviewed_by, reviewed_at, review_notes
		FROM ngo_requests
		WHERE 1=1
	`

	var args []interface{}
	argIndex := 1

	if q.NGOID != "" {
		query += fmt.Sprintf(" AND ngo_id = $%d", argIndex)
		args = append(args, q.NGOID)
		argIndex++
	}

	if q.IssueID != "" {
		query += fmt.Sprintf(" AND issue_id = $%d", argIndex)
		args = append(args, q.IssueID)
		argIndex++
	}

	if len(q.Statuses) > 0 {
		query += fmt.Sprintf(" AND status = ANY($%d)", argIndex)
		args = append(args, ngoRequestStatusStrings(q.Statuses))
	}

	query += " ORDER BY ts DESC, id ASC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ngo requests: %w", err)
	}
	defer rows.Close()

	var reqs []models.NGORequest
	for rows.Next() {
		var req models.NGORequest
		err := rows.Scan(
			&req.ID, &req.NGOID, &req.NGOName, &req.IssueID, &req.IssueTitle,
			&req.IssueCategory, &req.RequestMessage, &req.Timestamp, &req.Status,
			&req.ReviewedBy, &req.ReviewedAt, &req.ReviewNotes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ngo request: %w", err)
		}
		reqs = append(reqs, req)
	}

	return reqs, nil
}

// GetNGORequest retrieves a single assistance request by ID
func (s *PostgresStore) GetNGORequest(ctx context.Context, id string) (*models.NGORequest, error) {
	query := `
		SELECT id, ngo_id, ngo_name, issue_id, issue_title, issue_category,
			   request_message, ts, status, reviewed_by, reviewed_at, review_notes
		FROM ngo_requests
		WHERE id = $1
	`

	var req models.NGORequest
	err := s.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.NGOID, &req.NGOName, &req.IssueID, &req.IssueTitle,
		&req.IssueCategory, &req.RequestMessage, &req.Timestamp, &req.Status,
		&req.ReviewedBy, &req.ReviewedAt, &req.ReviewNotes,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan ngo request: %w", err)
	}

	return &req, nil
}

// InsertDonations records simulated donations
func (s *PostgresStore) InsertDonations(ctx context.Context, donations []models.Donation) error {
	if len(donations) == 0 {
		return nil
	}

	query := `
		INSERT INTO donations (
			id, ngo_id, ngo_name, donor_id, donor_name, donor_type, amount,
			message, ts, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (id) DO NOTHING
	`

	for _, d := range donations {
		err := s.db.Exec(ctx, query,
			d.ID, d.NGOID, d.NGOName, d.DonorID, d.DonorName, d.DonorType,
			d.Amount, d.Message, d.Timestamp, d.Status,
		)
		if err != nil {
			return fmt.Errorf("insert donation %s: %w", d.ID, err)
		}
	}

	return nil
}

// QueryDonations retrieves donations based on query parameters
func (s *PostgresStore) QueryDonations(ctx context.Context, q models.DonationQuery) ([]models.Donation, error) {
	query := `
		SELECT id, ngo_id, ngo_name, donor_id, donor_name, donor_type, amount,
			   message, ts, status
		FROM donations
		WHERE 1=1
	`

	var args []interface{}
	argIndex := 1

	if q.NGOID != "" {
		query += fmt.Sprintf(" AND ngo_id = $%d", argIndex)
		args = append(args, q.NGOID)
		argIndex++
	}

	if q.DonorID != "" {
		query += fmt.Sprintf(" AND donor_id = $%d", argIndex)
		args = append(args, q.DonorID)
	}

	query += " ORDER BY ts DESC, id ASC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query donations: %w", err)
	}
	defer rows.Close()

	var donations []models.Donation
	for rows.Next() {
		var d models.Donation
		err := rows.Scan(
			&d.ID, &d.NGOID, &d.NGOName, &d.DonorID, &d.DonorName, &d.DonorType,
			&d.Amount, &d.Message, &d.Timestamp, &d.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		donations = append(donations, d)
	}

	return donations, nil
}

// Health checks the database connection
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}

func categoryStrings(cats []models.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}

func statusStrings(statuses []models.IssueStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func bidStatusStrings(statuses []models.BidStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func ngoRequestStatusStrings(statuses []models.NGORequestStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
