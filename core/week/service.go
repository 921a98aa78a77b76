package week

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound        = errors.New("week not found")
	ErrCommentNotFound = errors.New("comment not found")

	errNoFieldsToUpdate = errors.New("no fields to update")
)

type (
	Repository interface {
		// FilterWeeks applies QueryFilter: Search does a case-insensitive
		// substring match on Week.Title or Week.Description; Sort/Order are
		// already whitelisted by Clean.
		FilterWeeks(ctx context.Context, filter QueryFilter) ([]Week, error)
		GetWeekByID(ctx context.Context, id int) (Week, error)
		CreateWeek(ctx context.Context, wk Week) (Week, error)
		// UpdateWeek updates the fields present in `uw` and bumps UpdatedAt.
		UpdateWeek(ctx context.Context, uw UpdateWeek, updatedAt time.Time) (Week, error)
		// DeleteWeek removes the week's comments and the week itself in a
		// single transaction.
		DeleteWeek(ctx context.Context, id int) error

		QueryCommentsByWeek(ctx context.Context, weekID int) ([]Comment, error)
		CreateComment(ctx context.Context, cmt Comment) (Comment, error)
		DeleteComment(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Week, error) {
	return svc.repo.FilterWeeks(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Week, error) {
	return svc.repo.GetWeekByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nw NewWeek) (Week, error) {
	startDate, err := core.ParseDate(nw.StartDate)
	if err != nil {
		return Week{}, err
	}
	now := time.Now().UTC()
	wk := Week{
		Title:       nw.Title,
		StartDate:   startDate,
		Description: nw.Description,
		Links:       nw.Links,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateWeek(ctx, wk)
}

func (svc *Service) Update(ctx context.Context, uw UpdateWeek) (Week, error) {
	return svc.repo.UpdateWeek(ctx, uw, time.Now().UTC())
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteWeek(ctx, id)
}

func (svc *Service) QueryComments(ctx context.Context, weekID int) ([]Comment, error) {
	return svc.repo.QueryCommentsByWeek(ctx, weekID)
}

// CreateComment verifies the parent week exists before inserting.
func (svc *Service) CreateComment(ctx context.Context, nc NewComment) (Comment, error) {
	if _, err := svc.repo.GetWeekByID(ctx, nc.WeekID); err != nil {
		return Comment{}, err
	}
	cmt := Comment{
		WeekID:    nc.WeekID,
		Author:    nc.Author,
		Text:      nc.Text,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateComment(ctx, cmt)
}

func (svc *Service) DeleteComment(ctx context.Context, id int) error {
	return svc.repo.DeleteComment(ctx, id)
}
