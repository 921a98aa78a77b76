package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	q := "SELECT id, name, email, password_hash FROM users WHERE email = ?"
	if err := repo.db.GetContext(ctx, &usr, q, email); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

func (repo *userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := `INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)
	      ON DUPLICATE KEY UPDATE name = VALUES(name), password_hash = VALUES(password_hash)`
	if _, err := repo.db.ExecContext(ctx, q, usr.Name, usr.Email, usr.PasswordHash); err != nil {
		return user.User{}, errors.Wrap(err, "upserting user")
	}
	return repo.GetUserByEmail(ctx, usr.Email)
}
