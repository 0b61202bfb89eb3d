/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces consumed by the leave core.

PURPOSE:
  Implements leave.BalanceStore, leave.RequestStore and leave.LeaveTypeStore,
  plus user persistence for the identity layer. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  users:           Employee records with role and tenant
  leave_types:     Per-tenant leave type catalogue
  leave_balances:  One row per (tenant, user, leave_type, year)
  leave_requests:  Dated requests with lifecycle status and audit columns

ATOMIC BALANCE MUTATIONS:
  ApplyBalanceDelta is a single UPDATE that increments pending_days
  (floored at zero) and used_days in place. Concurrent lifecycle events on
  the same balance row cannot lose an update.

CONDITIONAL STATUS TRANSITIONS:
  UpdateRequestStatus guards the write with WHERE status = <expected> and
  reports via RowsAffected whether the transition actually happened. A
  racing second approval affects zero rows.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's single-writer
  model. Opened with WAL so readers don't block.

USAGE:
  store, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - leave/store.go: Interface definitions
  - leave/ledger.go, leave/request.go: The consumers of these interfaces
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/calendar"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/identity"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/leave"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Users
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'staff',
		is_active BOOLEAN DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_users_tenant
		ON users(tenant_id);

	-- Leave type catalogue
	CREATE TABLE IF NOT EXISTS leave_types (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		is_paid BOOLEAN DEFAULT TRUE,
		color TEXT,
		requires_approval BOOLEAN DEFAULT TRUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leave_types_tenant
		ON leave_types(tenant_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_leave_types_code
		ON leave_types(tenant_id, code);

	-- Balances: one row per (tenant, user, leave_type, year).
	-- remaining is never stored; it is derived on every read.
	CREATE TABLE IF NOT EXISTS leave_balances (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		leave_type_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		total_days REAL NOT NULL DEFAULT 0,
		used_days REAL NOT NULL DEFAULT 0,
		pending_days REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(tenant_id, user_id, leave_type_id, year)
	);

	CREATE INDEX IF NOT EXISTS idx_balances_user_year
		ON leave_balances(tenant_id, user_id, year);

	-- Requests with per-status audit columns
	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		leave_type_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		days_count INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		reason TEXT,
		notes TEXT,
		approved_by TEXT,
		approved_at TEXT,
		rejected_by TEXT,
		rejected_at TEXT,
		rejection_reason TEXT,
		cancelled_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_tenant_status
		ON leave_requests(tenant_id, status);
	CREATE INDEX IF NOT EXISTS idx_requests_user
		ON leave_requests(user_id);

	-- For overlap queries (conflict checking, month calendar)
	CREATE INDEX IF NOT EXISTS idx_requests_dates
		ON leave_requests(tenant_id, start_date, end_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USER STORE
// =============================================================================

// SaveUser inserts or updates a user record.
func (s *Store) SaveUser(ctx context.Context, u identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO users (id, tenant_id, email, full_name, role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			full_name = excluded.full_name,
			role = excluded.role,
			is_active = excluded.is_active
	`

	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.TenantID, u.Email, u.FullName, string(u.Role), u.IsActive,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryUser(ctx,
		"SELECT id, tenant_id, email, full_name, role, is_active FROM users WHERE id = ?", id)
}

// GetUserByEmail retrieves a user by email. Used by the demo token endpoint.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryUser(ctx,
		"SELECT id, tenant_id, email, full_name, role, is_active FROM users WHERE email = ?", email)
}

func (s *Store) queryUser(ctx context.Context, query string, arg any) (*identity.User, error) {
	var u identity.User
	var role string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.TenantID, &u.Email, &u.FullName, &role, &u.IsActive)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.Role = identity.Role(role)
	return &u, nil
}

// ListUsers returns all users of a tenant ordered by name.
func (s *Store) ListUsers(ctx context.Context, tenantID string) ([]identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tenant_id, email, full_name, role, is_active FROM users WHERE tenant_id = ? ORDER BY full_name",
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []identity.User
	for rows.Next() {
		var u identity.User
		var role string
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Email, &u.FullName, &role, &u.IsActive); err != nil {
			return nil, err
		}
		u.Role = identity.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

// =============================================================================
// LEAVE TYPE STORE (leave.LeaveTypeStore interface)
// =============================================================================

// SaveLeaveType inserts or updates a leave type.
func (s *Store) SaveLeaveType(ctx context.Context, lt leave.LeaveType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leave_types (id, tenant_id, name, code, is_paid, color, requires_approval, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			is_paid = excluded.is_paid,
			color = excluded.color,
			requires_approval = excluded.requires_approval,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		lt.ID, lt.TenantID, lt.Name, lt.Code, lt.IsPaid, lt.Color, lt.RequiresApproval,
		now, now,
	)
	return err
}

// GetLeaveType retrieves a leave type by ID, or nil when absent.
func (s *Store) GetLeaveType(ctx context.Context, id string) (*leave.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lt leave.LeaveType
	var color sql.NullString
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, code, is_paid, color, requires_approval, created_at, updated_at
		 FROM leave_types WHERE id = ?`, id,
	).Scan(&lt.ID, &lt.TenantID, &lt.Name, &lt.Code, &lt.IsPaid, &color, &lt.RequiresApproval,
		&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lt.Color = color.String
	lt.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	lt.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &lt, nil
}

// ListLeaveTypes returns a tenant's leave types ordered by name.
func (s *Store) ListLeaveTypes(ctx context.Context, tenantID string) ([]leave.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, code, is_paid, color, requires_approval, created_at, updated_at
		 FROM leave_types WHERE tenant_id = ? ORDER BY name`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		var color sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&lt.ID, &lt.TenantID, &lt.Name, &lt.Code, &lt.IsPaid, &color,
			&lt.RequiresApproval, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		lt.Color = color.String
		lt.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		lt.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		types = append(types, lt)
	}
	return types, rows.Err()
}

// =============================================================================
// BALANCE STORE (leave.BalanceStore interface)
// =============================================================================

// SaveBalance inserts or updates a balance row. Used by seeding and admin
// tooling; lifecycle mutations go through ApplyBalanceDelta.
func (s *Store) SaveBalance(ctx context.Context, b leave.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leave_balances
		(id, tenant_id, user_id, leave_type_id, year, total_days, used_days, pending_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tenant_id, user_id, leave_type_id, year) DO UPDATE SET
			total_days = excluded.total_days,
			used_days = excluded.used_days,
			pending_days = excluded.pending_days,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.TenantID, b.UserID, b.LeaveTypeID, b.Year,
		b.TotalDays.InexactFloat64(), b.UsedDays.InexactFloat64(), b.PendingDays.InexactFloat64(),
		now, now,
	)
	return err
}

// GetBalance returns the balance row for a key, or nil when absent.
func (s *Store) GetBalance(ctx context.Context, key leave.BalanceKey) (*leave.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b leave.Balance
	var total, used, pending float64
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, user_id, leave_type_id, year, total_days, used_days, pending_days,
		        created_at, updated_at
		 FROM leave_balances
		 WHERE tenant_id = ? AND user_id = ? AND leave_type_id = ? AND year = ?`,
		key.TenantID, key.UserID, key.LeaveTypeID, key.Year,
	).Scan(&b.ID, &b.TenantID, &b.UserID, &b.LeaveTypeID, &b.Year,
		&total, &used, &pending, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	b.TotalDays = decimal.NewFromFloat(total)
	b.UsedDays = decimal.NewFromFloat(used)
	b.PendingDays = decimal.NewFromFloat(pending)
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

// ApplyBalanceDelta atomically increments pending_days (floored at zero)
// and used_days on the balance row identified by key.
func (s *Store) ApplyBalanceDelta(ctx context.Context, key leave.BalanceKey, pendingDelta, usedDelta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE leave_balances
		SET pending_days = MAX(0, pending_days + ?),
		    used_days = used_days + ?,
		    updated_at = ?
		WHERE tenant_id = ? AND user_id = ? AND leave_type_id = ? AND year = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		pendingDelta.InexactFloat64(), usedDelta.InexactFloat64(),
		time.Now().UTC().Format(time.RFC3339),
		key.TenantID, key.UserID, key.LeaveTypeID, key.Year,
	)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// ListBalances returns a user's balances for a year with the joined leave
// type, ordered by leave type name.
func (s *Store) ListBalances(ctx context.Context, tenantID, userID string, year int) ([]leave.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT b.id, b.tenant_id, b.user_id, b.leave_type_id, b.year,
		       b.total_days, b.used_days, b.pending_days, b.created_at, b.updated_at,
		       t.id, t.tenant_id, t.name, t.code, t.is_paid, t.color, t.requires_approval
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.tenant_id = ? AND b.user_id = ? AND b.year = ?
		ORDER BY t.name
	`

	rows, err := s.db.QueryContext(ctx, query, tenantID, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		var lt leave.LeaveType
		var total, used, pending float64
		var color sql.NullString
		var createdAt, updatedAt string

		if err := rows.Scan(&b.ID, &b.TenantID, &b.UserID, &b.LeaveTypeID, &b.Year,
			&total, &used, &pending, &createdAt, &updatedAt,
			&lt.ID, &lt.TenantID, &lt.Name, &lt.Code, &lt.IsPaid, &color, &lt.RequiresApproval,
		); err != nil {
			return nil, err
		}

		b.TotalDays = decimal.NewFromFloat(total)
		b.UsedDays = decimal.NewFromFloat(used)
		b.PendingDays = decimal.NewFromFloat(pending)
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		lt.Color = color.String
		b.LeaveType = &lt

		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// =============================================================================
// REQUEST STORE (leave.RequestStore interface)
// =============================================================================

const requestColumns = `
	r.id, r.tenant_id, r.user_id, r.leave_type_id, r.start_date, r.end_date,
	r.days_count, r.status, r.reason, r.notes,
	r.approved_by, r.approved_at, r.rejected_by, r.rejected_at, r.rejection_reason,
	r.cancelled_at, r.created_at, r.updated_at, u.full_name
`

// CreateRequest inserts a new request.
func (s *Store) CreateRequest(ctx context.Context, r *leave.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leave_requests
		(id, tenant_id, user_id, leave_type_id, start_date, end_date, days_count,
		 status, reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.TenantID, r.UserID, r.LeaveTypeID,
		calendar.FormatDate(r.StartDate), calendar.FormatDate(r.EndDate),
		r.DaysCount, string(r.Status), nullString(r.Reason),
		r.CreatedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// GetRequest retrieves a request by ID, or nil when absent.
func (s *Store) GetRequest(ctx context.Context, id string) (*leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.id = ?
	`

	requests, err := s.queryRequests(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return &requests[0], nil
}

// UpdateRequestStatus transitions a request from the expected status to the
// new one, writing the audit columns for the target status. Returns false
// when the stored status no longer matched.
func (s *Store) UpdateRequestStatus(ctx context.Context, id string, from, to leave.Status, meta leave.StatusMeta) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := meta.At.UTC().Format(time.RFC3339)

	var query string
	var args []any
	switch to {
	case leave.StatusApproved:
		query = `
			UPDATE leave_requests
			SET status = ?, approved_by = ?, approved_at = ?, notes = ?, updated_at = ?
			WHERE id = ? AND status = ?
		`
		args = []any{string(to), meta.ActorID, at, nullString(meta.Notes), at, id, string(from)}
	case leave.StatusRejected:
		query = `
			UPDATE leave_requests
			SET status = ?, rejected_by = ?, rejected_at = ?, rejection_reason = ?, updated_at = ?
			WHERE id = ? AND status = ?
		`
		args = []any{string(to), meta.ActorID, at, nullString(meta.Reason), at, id, string(from)}
	case leave.StatusCancelled:
		query = `
			UPDATE leave_requests
			SET status = ?, cancelled_at = ?, updated_at = ?
			WHERE id = ? AND status = ?
		`
		args = []any{string(to), at, at, id, string(from)}
	default:
		return false, fmt.Errorf("unsupported target status %q", to)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update request status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListRequests returns a tenant's requests, newest first, optionally
// narrowed by user and status.
func (s *Store) ListRequests(ctx context.Context, tenantID string, f leave.RequestFilter) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.tenant_id = ?
	`
	args := []any{tenantID}

	if f.UserID != "" {
		query += " AND r.user_id = ?"
		args = append(args, f.UserID)
	}
	if f.Status != "" {
		query += " AND r.status = ?"
		args = append(args, string(f.Status))
	}
	query += " ORDER BY r.created_at DESC"

	return s.queryRequests(ctx, query, args...)
}

// ListRequestsInRange returns approved and pending requests whose date
// range overlaps [from, to].
func (s *Store) ListRequestsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.tenant_id = ?
		  AND r.status IN ('approved', 'pending')
		  AND r.start_date <= ? AND r.end_date >= ?
		ORDER BY r.start_date ASC
	`

	return s.queryRequests(ctx, query, tenantID,
		calendar.FormatDate(to), calendar.FormatDate(from))
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]leave.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func scanRequest(rows *sql.Rows) (leave.Request, error) {
	var (
		r          leave.Request
		status     string
		startDate  string
		endDate    string
		reason     sql.NullString
		notes      sql.NullString
		approvedBy sql.NullString
		approvedAt sql.NullString
		rejectedBy sql.NullString
		rejectedAt sql.NullString
		rejection  sql.NullString
		cancelled  sql.NullString
		createdAt  string
		updatedAt  string
		userName   sql.NullString
	)

	err := rows.Scan(
		&r.ID, &r.TenantID, &r.UserID, &r.LeaveTypeID, &startDate, &endDate,
		&r.DaysCount, &status, &reason, &notes,
		&approvedBy, &approvedAt, &rejectedBy, &rejectedAt, &rejection,
		&cancelled, &createdAt, &updatedAt, &userName,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan request: %w", err)
	}

	r.Status = leave.Status(status)
	r.StartDate, _ = calendar.ParseDate(startDate)
	r.EndDate, _ = calendar.ParseDate(endDate)
	r.Reason = reason.String
	r.Notes = notes.String
	r.ApprovedBy = approvedBy.String
	r.RejectedBy = rejectedBy.String
	r.RejectionReason = rejection.String
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	r.UserName = userName.String

	if approvedAt.Valid {
		t, _ := time.Parse(time.RFC3339, approvedAt.String)
		r.ApprovedAt = &t
	}
	if rejectedAt.Valid {
		t, _ := time.Parse(time.RFC3339, rejectedAt.String)
		r.RejectedAt = &t
	}
	if cancelled.Valid {
		t, _ := time.Parse(time.RFC3339, cancelled.String)
		r.CancelledAt = &t
	}

	return r, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"leave_requests", "leave_balances", "leave_types", "users"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
