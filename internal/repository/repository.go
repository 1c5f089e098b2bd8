package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"user-admin/internal/entity"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("Email already exists")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const selectUser = `SELECT id, name, email, created_at FROM users`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

// ListUsers returns every user, newest first.
func (r *UserRepository) ListUsers(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []entity.User{}
	for rows.Next() {
		var user entity.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	user := &entity.User{}
	err := r.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser inserts the user and reads it back, so the result carries the
// database-assigned id and timestamp.
func (r *UserRepository) CreateUser(ctx context.Context, in entity.Payload) (*entity.User, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO users (name, email) VALUES (?, ?)`, in.Name, in.Email)
	if err != nil {
		return nil, mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetUserByID(ctx, id)
}

func (r *UserRepository) UpdateUser(ctx context.Context, id int64, in entity.Payload) (*entity.User, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, email = ? WHERE id = ?`, in.Name, in.Email, id)
	if err != nil {
		return nil, mapError(err)
	}

	return r.GetUserByID(ctx, id)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func mapError(err error) error {
	if isDuplicate(err) {
		return ErrDuplicateEmail
	}
	return err
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate entry")
}
