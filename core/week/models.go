package week

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/trezcool/darasa/core"
)

// LinkList is an ordered sequence of URL strings, persisted as JSON text.
// A NULL column scans to an empty list and an empty list marshals to [].
type LinkList []string

func (l LinkList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l LinkList) Value() (driver.Value, error) {
	if l == nil {
		l = LinkList{}
	}
	return json.Marshal([]string(l))
}

func (l *LinkList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = LinkList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LinkList", src)
	}
	if len(data) == 0 {
		*l = LinkList{}
		return nil
	}
	var links []string
	if err := json.Unmarshal(data, &links); err != nil {
		return err
	}
	if links == nil {
		links = []string{}
	}
	*l = links
	return nil
}

type Week struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	StartDate   core.Date `json:"start_date" db:"start_date"`
	Description string    `json:"description" db:"description"`
	Links       LinkList  `json:"links" db:"links"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type Comment struct {
	ID        int       `json:"id" db:"id"`
	WeekID    int       `json:"week_id" db:"week_id"`
	Author    string    `json:"author" db:"author"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewWeek contains information needed to create a new Week.
type NewWeek struct {
	Title       string   `json:"title" validate:"required"`
	StartDate   string   `json:"start_date" validate:"required,coursedate"`
	Description string   `json:"description" validate:"required"`
	Links       []string `json:"links"`
}

func (nw *NewWeek) Validate() error {
	nw.Title = core.SanitizeString(nw.Title)
	nw.Description = core.SanitizeString(nw.Description)
	if nw.Links == nil {
		nw.Links = []string{}
	}
	for i, link := range nw.Links {
		nw.Links[i] = core.CleanString(link)
	}
	return core.Validate.Struct(nw)
}

// UpdateWeek defines what information may be provided to modify an existing
// Week. Nil fields are left untouched; present-but-empty ones are stored.
type UpdateWeek struct {
	ID          int       `json:"id" validate:"required"`
	Title       *string   `json:"title"`
	StartDate   *string   `json:"start_date" validate:"omitempty,coursedate"`
	Description *string   `json:"description"`
	Links       *[]string `json:"links"`
}

func (uw *UpdateWeek) Validate() error {
	if uw.Title != nil {
		*uw.Title = core.SanitizeString(*uw.Title)
	}
	if uw.Description != nil {
		*uw.Description = core.SanitizeString(*uw.Description)
	}
	if uw.Links != nil {
		for i, link := range *uw.Links {
			(*uw.Links)[i] = core.CleanString(link)
		}
	}
	if err := core.Validate.Struct(uw); err != nil {
		return err
	}
	if uw.Title == nil && uw.StartDate == nil && uw.Description == nil && uw.Links == nil {
		return core.NewValidationError(errNoFieldsToUpdate)
	}
	return nil
}

// NewComment contains information needed to create a new Comment.
type NewComment struct {
	WeekID int    `json:"week_id" validate:"required"`
	Author string `json:"author" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

func (nc *NewComment) Validate() error {
	nc.Author = core.SanitizeString(nc.Author)
	nc.Text = core.SanitizeString(nc.Text)
	return core.Validate.Struct(nc)
}

// sortable fields; anything else falls back to start_date
var allowedSortFields = map[string]bool{
	"title":      true,
	"start_date": true,
	"created_at": true,
}

type QueryFilter struct {
	Search string `query:"search"`
	Sort   string `query:"sort"`
	Order  string `query:"order"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Sort = core.CleanString(qf.Sort, true /* lower */)
	qf.Order = core.CleanString(qf.Order, true /* lower */)
	if !allowedSortFields[qf.Sort] {
		qf.Sort = "start_date"
	}
	if qf.Order != "desc" {
		qf.Order = "asc"
	}
}

func (qf QueryFilter) Ordering() core.DBOrdering {
	return core.DBOrdering{Field: qf.Sort, Ascending: qf.Order != "desc"}
}
