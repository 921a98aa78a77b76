package student

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

type Student struct {
	ID           int       `json:"id" db:"id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Only name and email are updatable; absent fields
// are left untouched.
type UpdateStudent struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (us *UpdateStudent) Validate() error {
	us.StudentID = core.CleanString(us.StudentID)
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)

	if err := core.Validate.Struct(us); err != nil {
		return err
	}
	if us.Name == "" && us.Email == "" {
		return core.NewValidationError(errNoFieldsToUpdate)
	}
	return nil
}

type ChangePassword struct {
	StudentID       string `json:"student_id" validate:"required"`
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (cp *ChangePassword) Validate() error {
	cp.StudentID = core.CleanString(cp.StudentID)
	return core.Validate.Struct(cp)
}

// sortable fields; anything else is ignored
var allowedSortFields = map[string]bool{
	"name":       true,
	"student_id": true,
	"email":      true,
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
		qf.Sort = ""
	}
	if qf.Order != "desc" {
		qf.Order = "asc"
	}
}

// Ordering returns the ORDER BY clause for the filter, or ok=false when
// no (valid) sort field was requested.
func (qf QueryFilter) Ordering() (core.DBOrdering, bool) {
	if qf.Sort == "" {
		return core.DBOrdering{}, false
	}
	return core.DBOrdering{Field: qf.Sort, Ascending: qf.Order != "desc"}, true
}
