package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadedpez/youvibe/pkg/entities"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite table schemas
const (
	createWalletsTableSQL = `
	CREATE TABLE IF NOT EXISTS wallets (
		owner_id TEXT PRIMARY KEY,
		coin_balance INTEGER NOT NULL DEFAULT 0,
		cash_balance REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createDonationsTableSQL = `
	CREATE TABLE IF NOT EXISTS donations (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		from_user_id TEXT,
		to_user_id TEXT NOT NULL,
		gross_coins INTEGER NOT NULL,
		platform_fee_coins INTEGER NOT NULL,
		net_coins INTEGER NOT NULL,
		source TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		archived INTEGER NOT NULL DEFAULT 0
	)`

	createDonationIndexesSQL = `
	CREATE INDEX IF NOT EXISTS idx_donations_to_user_id ON donations(to_user_id);
	CREATE INDEX IF NOT EXISTS idx_donations_session_id ON donations(session_id);
	CREATE INDEX IF NOT EXISTS idx_donations_timestamp ON donations(timestamp DESC)
	`
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Create tables if they don't exist
	if _, err := db.Exec(createWalletsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating wallets table: %w", err)
	}

	if _, err := db.Exec(createDonationsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating donations table: %w", err)
	}

	if _, err := db.Exec(createDonationIndexesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating donation indexes: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// GetWallet retrieves a wallet by owner ID, defaulting to zero balances
func (r *SQLiteRepository) GetWallet(ctx context.Context, ownerID string) (*entities.Wallet, error) {
	query := `SELECT owner_id, coin_balance, cash_balance, updated_at FROM wallets WHERE owner_id = ?`

	var wallet entities.Wallet
	var updatedAt string

	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&wallet.OwnerID,
		&wallet.CoinBalance,
		&wallet.CashBalance,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entities.Wallet{OwnerID: ownerID}, nil
		}
		return nil, fmt.Errorf("error getting wallet: %w", err)
	}

	wallet.LastUpdated = parseTimestamp(updatedAt)
	return &wallet, nil
}

// CreditCoins atomically adds coins to a wallet, creating it lazily
func (r *SQLiteRepository) CreditCoins(ctx context.Context, ownerID string, coins int64) (int64, error) {
	if coins < 0 {
		return 0, ErrNegativeCoins
	}

	// The upsert is a single statement, so concurrent credits against the
	// same owner cannot lose updates.
	query := `
	INSERT INTO wallets (owner_id, coin_balance, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(owner_id) DO UPDATE SET
		coin_balance = coin_balance + excluded.coin_balance,
		updated_at = CURRENT_TIMESTAMP
	RETURNING coin_balance`

	var balance int64
	if err := r.db.QueryRowContext(ctx, query, ownerID, coins).Scan(&balance); err != nil {
		return 0, fmt.Errorf("error crediting wallet: %w", err)
	}

	return balance, nil
}

// AddDonation records an immutable donation entry
func (r *SQLiteRepository) AddDonation(ctx context.Context, donation *entities.Donation) error {
	if donation.ID == "" {
		donation.ID = uuid.New().String()
	}
	if donation.Timestamp.IsZero() {
		donation.Timestamp = time.Now()
	}

	query := `
	INSERT INTO donations (id, session_id, from_user_id, to_user_id, gross_coins, platform_fee_coins, net_coins, source, timestamp, archived)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`

	_, err := r.db.ExecContext(ctx, query,
		donation.ID,
		donation.SessionID,
		donation.FromUserID,
		donation.ToUserID,
		donation.GrossCoins,
		donation.PlatformFeeCoins,
		donation.NetCoins,
		string(donation.Source),
		donation.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("error inserting donation: %w", err)
	}

	return nil
}

// GetDonations retrieves recent donations credited to a host, newest first
func (r *SQLiteRepository) GetDonations(ctx context.Context, hostID string, limit int) ([]*entities.Donation, error) {
	query := `
	SELECT id, session_id, from_user_id, to_user_id, gross_coins, platform_fee_coins, net_coins, source, timestamp, archived
	FROM donations
	WHERE to_user_id = ?
	ORDER BY timestamp DESC
	LIMIT ?`

	return r.queryDonations(ctx, query, hostID, limit)
}

// ListUnarchived retrieves donation records not yet archived, oldest first
func (r *SQLiteRepository) ListUnarchived(ctx context.Context, limit int) ([]*entities.Donation, error) {
	query := `
	SELECT id, session_id, from_user_id, to_user_id, gross_coins, platform_fee_coins, net_coins, source, timestamp, archived
	FROM donations
	WHERE archived = 0
	ORDER BY timestamp ASC
	LIMIT ?`

	return r.queryDonations(ctx, query, limit)
}

// MarkArchived flags donation records as shipped to the archive
func (r *SQLiteRepository) MarkArchived(ctx context.Context, donationIDs []string) error {
	if len(donationIDs) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(donationIDs)), ",")
	query := fmt.Sprintf(`UPDATE donations SET archived = 1 WHERE id IN (%s)`, placeholders)

	args := make([]interface{}, len(donationIDs))
	for i, id := range donationIDs {
		args[i] = id
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error marking donations archived: %w", err)
	}

	return nil
}

// Close closes the underlying database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryDonations(ctx context.Context, query string, args ...interface{}) ([]*entities.Donation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying donations: %w", err)
	}
	defer rows.Close()

	donations := make([]*entities.Donation, 0)
	for rows.Next() {
		var d entities.Donation
		var fromUserID sql.NullString
		var timestamp string
		var archived int

		if err := rows.Scan(
			&d.ID,
			&d.SessionID,
			&fromUserID,
			&d.ToUserID,
			&d.GrossCoins,
			&d.PlatformFeeCoins,
			&d.NetCoins,
			&d.Source,
			&timestamp,
			&archived,
		); err != nil {
			return nil, fmt.Errorf("error scanning donation: %w", err)
		}

		d.FromUserID = fromUserID.String
		d.Timestamp = parseTimestamp(timestamp)
		d.Archived = archived != 0
		donations = append(donations, &d)
	}

	return donations, rows.Err()
}

// parseTimestamp handles the formats SQLite may hand back for timestamps
func parseTimestamp(value string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-07:00",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
