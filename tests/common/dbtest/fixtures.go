//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DefaultPassword matches the hash every fixture user is created with.
const DefaultPassword = "password123"

const defaultPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) WHERE is_active DO NOTHING",
		userID, email, defaultPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active", email).Scan(&userID)
	}

	return userID
}

func DeactivateUser(t *testing.T, db DBLike, userID uuid.UUID) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE users SET is_active = false, updated_at = now() WHERE id = $1", userID)
	require.NoError(t, err)
}

func CreateTestCar(t *testing.T, db DBLike, carMake, model string, dailyRateCents int64) uuid.UUID {
	t.Helper()

	carID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO cars (id, make, model, year, daily_rate_cents) VALUES ($1, $2, $3, $4, $5)",
		carID, carMake, model, 2024, dailyRateCents)
	require.NoError(t, err)

	return carID
}

// CreateTestReservation inserts a reservation directly, bypassing booking
// rules, so tests can place periods in the past.
func CreateTestReservation(t *testing.T, db DBLike, carID, userID uuid.UUID, start, end time.Time, state string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	var cancelledAt, completedAt *time.Time
	now := time.Now().UTC()
	switch state {
	case "cancelled":
		cancelledAt = &now
	case "completed":
		completedAt = &now
	}

	_, err := db.Exec(context.Background(),
		`INSERT INTO reservations (id, car_id, user_id, start_date, end_date, state, cancelled_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reservationID, carID, userID, start, end, state, cancelledAt, completedAt)
	require.NoError(t, err)

	return reservationID
}

func CountOutbox(t *testing.T, db DBLike, eventType string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM outbox WHERE event_type = $1", eventType).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all application tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('goose_db_version')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
