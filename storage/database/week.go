package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/week"
)

type weekRepository struct {
	db *sqlx.DB
}

var _ week.Repository = (*weekRepository)(nil) // interface compliance check

func NewWeekRepository(db *sqlx.DB) week.Repository {
	return &weekRepository{db: db}
}

const (
	weekColumns    = "id, title, start_date, description, links, created_at, updated_at"
	commentColumns = "id, week_id, author, text, created_at"
)

func (repo *weekRepository) FilterWeeks(ctx context.Context, filter week.QueryFilter) ([]week.Week, error) {
	q := "SELECT " + weekColumns + " FROM weeks"
	var args []interface{}

	if filter.Search != "" {
		q += " WHERE (title LIKE ? OR description LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	q += " ORDER BY " + filter.Ordering().String()

	weeks := make([]week.Week, 0)
	if err := repo.db.SelectContext(ctx, &weeks, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering weeks")
	}
	return weeks, nil
}

func (repo *weekRepository) GetWeekByID(ctx context.Context, id int) (week.Week, error) {
	var wk week.Week
	q := "SELECT " + weekColumns + " FROM weeks WHERE id = ?"
	if err := repo.db.GetContext(ctx, &wk, q, id); err != nil {
		if err == sql.ErrNoRows {
			return week.Week{}, week.ErrNotFound
		}
		return week.Week{}, errors.Wrap(err, "getting week")
	}
	return wk, nil
}

func (repo *weekRepository) CreateWeek(ctx context.Context, wk week.Week) (week.Week, error) {
	q := "INSERT INTO weeks (title, start_date, description, links, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := repo.db.ExecContext(ctx, q, wk.Title, wk.StartDate, wk.Description, wk.Links, wk.CreatedAt, wk.UpdatedAt)
	if err != nil {
		return week.Week{}, errors.Wrap(err, "creating week")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return week.Week{}, errors.Wrap(err, "creating week")
	}
	wk.ID = int(id)
	return wk, nil
}

func (repo *weekRepository) UpdateWeek(ctx context.Context, uw week.UpdateWeek, updatedAt time.Time) (week.Week, error) {
	if _, err := repo.GetWeekByID(ctx, uw.ID); err != nil {
		return week.Week{}, err
	}

	var sets []string
	var args []interface{}
	if uw.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *uw.Title)
	}
	if uw.StartDate != nil {
		startDate, err := core.ParseDate(*uw.StartDate)
		if err != nil {
			return week.Week{}, err
		}
		sets = append(sets, "start_date = ?")
		args = append(args, startDate)
	}
	if uw.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *uw.Description)
	}
	if uw.Links != nil {
		sets = append(sets, "links = ?")
		args = append(args, week.LinkList(*uw.Links))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, updatedAt, uw.ID)

	q := "UPDATE weeks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := repo.db.ExecContext(ctx, q, args...); err != nil {
		return week.Week{}, errors.Wrap(err, "updating week")
	}
	return repo.GetWeekByID(ctx, uw.ID)
}

// DeleteWeek removes the week's comments then the week itself in one
// transaction; the caller never observes a half-deleted week.
func (repo *weekRepository) DeleteWeek(ctx context.Context, id int) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "DELETE FROM comments WHERE week_id = ?", id); err != nil {
		return errors.Wrap(err, "deleting week comments")
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM weeks WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(err, "deleting week")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return week.ErrNotFound
	}
	return errors.Wrap(tx.Commit(), "committing week delete")
}

func (repo *weekRepository) QueryCommentsByWeek(ctx context.Context, weekID int) ([]week.Comment, error) {
	q := "SELECT " + commentColumns + " FROM comments WHERE week_id = ? ORDER BY created_at ASC, id ASC"
	comments := make([]week.Comment, 0)
	if err := repo.db.SelectContext(ctx, &comments, q, weekID); err != nil {
		return nil, errors.Wrap(err, "querying comments")
	}
	return comments, nil
}

func (repo *weekRepository) CreateComment(ctx context.Context, cmt week.Comment) (week.Comment, error) {
	q := "INSERT INTO comments (week_id, author, text, created_at) VALUES (?, ?, ?, ?)"
	res, err := repo.db.ExecContext(ctx, q, cmt.WeekID, cmt.Author, cmt.Text, cmt.CreatedAt)
	if err != nil {
		return week.Comment{}, errors.Wrap(err, "creating comment")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return week.Comment{}, errors.Wrap(err, "creating comment")
	}
	cmt.ID = int(id)
	return cmt, nil
}

func (repo *weekRepository) DeleteComment(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return week.ErrCommentNotFound
	}
	return nil
}
