package dummydb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/week"
)

type weekRepository struct {
	weeks    *weekTable
	comments *commentTable
}

var _ week.Repository = (*weekRepository)(nil) // interface compliance check

func NewWeekRepository(db *DB) week.Repository {
	return &weekRepository{weeks: db.week, comments: db.comment}
}

func (repo *weekRepository) query() []week.Week {
	weeks := make([]week.Week, 0, len(repo.weeks.table))
	for _, wk := range repo.weeks.table {
		weeks = append(weeks, *wk)
	}
	return weeks
}

func (repo *weekRepository) FilterWeeks(_ context.Context, filter week.QueryFilter) ([]week.Week, error) {
	repo.weeks.RLock()
	defer repo.weeks.RUnlock()

	weeks := repo.query()

	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		filtered := make([]week.Week, 0, len(weeks))
		for _, wk := range weeks {
			if strings.Contains(strings.ToLower(wk.Title), search) ||
				strings.Contains(strings.ToLower(wk.Description), search) {
				filtered = append(filtered, wk)
			}
		}
		weeks = filtered
	}

	ord := filter.Ordering()
	sort.Slice(weeks, func(i, j int) bool {
		var less bool
		switch ord.Field {
		case "title":
			less = weeks[i].Title < weeks[j].Title
		case "created_at":
			less = weeks[i].CreatedAt.Before(weeks[j].CreatedAt)
		default:
			less = weeks[i].StartDate.Before(weeks[j].StartDate.Time)
		}
		if ord.Ascending {
			return less
		}
		return !less
	})
	return weeks, nil
}

func (repo *weekRepository) GetWeekByID(_ context.Context, id int) (week.Week, error) {
	repo.weeks.RLock()
	defer repo.weeks.RUnlock()

	if wk, ok := repo.weeks.table[id]; ok {
		return *wk, nil
	}
	return week.Week{}, week.ErrNotFound
}

func (repo *weekRepository) CreateWeek(_ context.Context, wk week.Week) (week.Week, error) {
	repo.weeks.Lock()
	defer repo.weeks.Unlock()

	if wk.Links == nil {
		wk.Links = week.LinkList{}
	}
	repo.weeks.seq++
	wk.ID = repo.weeks.seq
	repo.weeks.table[wk.ID] = &wk
	return wk, nil
}

func (repo *weekRepository) UpdateWeek(_ context.Context, uw week.UpdateWeek, updatedAt time.Time) (week.Week, error) {
	repo.weeks.Lock()
	defer repo.weeks.Unlock()

	wk, ok := repo.weeks.table[uw.ID]
	if !ok {
		return week.Week{}, week.ErrNotFound
	}

	if uw.Title != nil {
		wk.Title = *uw.Title
	}
	if uw.StartDate != nil {
		startDate, err := core.ParseDate(*uw.StartDate)
		if err != nil {
			return week.Week{}, err
		}
		wk.StartDate = startDate
	}
	if uw.Description != nil {
		wk.Description = *uw.Description
	}
	if uw.Links != nil {
		wk.Links = *uw.Links
	}
	wk.UpdatedAt = updatedAt
	return *wk, nil
}

func (repo *weekRepository) DeleteWeek(_ context.Context, id int) error {
	repo.weeks.Lock()
	defer repo.weeks.Unlock()
	repo.comments.Lock()
	defer repo.comments.Unlock()

	if _, ok := repo.weeks.table[id]; !ok {
		return week.ErrNotFound
	}
	for cid, cmt := range repo.comments.table {
		if cmt.WeekID == id {
			delete(repo.comments.table, cid)
		}
	}
	delete(repo.weeks.table, id)
	return nil
}

func (repo *weekRepository) QueryCommentsByWeek(_ context.Context, weekID int) ([]week.Comment, error) {
	repo.comments.RLock()
	defer repo.comments.RUnlock()

	comments := make([]week.Comment, 0)
	for _, cmt := range repo.comments.table {
		if cmt.WeekID == weekID {
			comments = append(comments, *cmt)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (repo *weekRepository) CreateComment(_ context.Context, cmt week.Comment) (week.Comment, error) {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	repo.comments.seq++
	cmt.ID = repo.comments.seq
	repo.comments.table[cmt.ID] = &cmt
	return cmt, nil
}

func (repo *weekRepository) DeleteComment(_ context.Context, id int) error {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	if _, ok := repo.comments.table[id]; !ok {
		return week.ErrCommentNotFound
	}
	delete(repo.comments.table, id)
	return nil
}
