package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, password_hash, role, is_active, last_login, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (Users, error) {
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.IsActive,
		&i.LastLogin,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createUser = `
INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + userColumns

type CreateUserParams struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    pgtype.Timestamptz
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) (Users, error) {
	row := db.QueryRow(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.PasswordHash,
		arg.Role,
		arg.IsActive,
		arg.CreatedAt,
	)
	return scanUser(row)
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	return scanUser(db.QueryRow(ctx, getUserByID, id))
}

const getActiveUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active`

func (q *Queries) GetActiveUserByEmail(ctx context.Context, db DBTX, email string) (Users, error) {
	return scanUser(db.QueryRow(ctx, getActiveUserByEmail, email))
}

const listUsers = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

func (q *Queries) ListUsers(ctx context.Context, db DBTX) ([]Users, error) {
	rows, err := db.Query(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Users{}
	for rows.Next() {
		i, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateUserLastLogin = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`

func (q *Queries) UpdateUserLastLogin(ctx context.Context, db DBTX, id uuid.UUID, at pgtype.Timestamptz) error {
	_, err := db.Exec(ctx, updateUserLastLogin, id, at)
	return err
}
