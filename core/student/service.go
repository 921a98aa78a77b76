package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound        = errors.New("student not found")
	ErrStudentIDExists = errors.New("a student with this student ID already exists")
	ErrEmailExists     = errors.New("a student with this email already exists")
	ErrWrongPassword   = errors.New("current password is incorrect")

	errNoFieldsToUpdate = errors.New("no fields to update")
)

type (
	Repository interface {
		// FilterStudents applies QueryFilter: Search does a case-insensitive
		// substring match on one of Student.Name, Student.StudentID or
		// Student.Email; Sort/Order are already whitelisted by Clean.
		// The password hash is never selected.
		FilterStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
		GetStudentByStudentID(ctx context.Context, studentID string) (Student, error)
		CreateStudent(ctx context.Context, stu Student) (Student, error)
		// UpdateStudent updates name and/or email; empty fields are left untouched.
		UpdateStudent(ctx context.Context, stu Student) (Student, error)
		DeleteStudent(ctx context.Context, studentID string) error
		SetStudentPassword(ctx context.Context, studentID string, hash []byte) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Student, error) {
	return svc.repo.FilterStudents(ctx, filter)
}

func (svc *Service) GetByStudentID(ctx context.Context, studentID string) (Student, error) {
	return svc.repo.GetStudentByStudentID(ctx, core.CleanString(studentID))
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	stu := Student{
		StudentID: ns.StudentID,
		Name:      ns.Name,
		Email:     ns.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := stu.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, stu)
}

func (svc *Service) Update(ctx context.Context, us UpdateStudent) (Student, error) {
	stu := Student{
		StudentID: us.StudentID,
		Name:      us.Name,
		Email:     us.Email,
	}
	return svc.repo.UpdateStudent(ctx, stu)
}

func (svc *Service) Delete(ctx context.Context, studentID string) error {
	return svc.repo.DeleteStudent(ctx, core.CleanString(studentID))
}

// ChangePassword verifies the student's current password before storing a
// hash of the new one. The stored hash is left untouched on any failure.
func (svc *Service) ChangePassword(ctx context.Context, cp ChangePassword) error {
	stu, err := svc.repo.GetStudentByStudentID(ctx, cp.StudentID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			// do not reveal whether the student exists
			return ErrWrongPassword
		}
		return err
	}
	if err = stu.CheckPassword(cp.CurrentPassword); err != nil {
		return ErrWrongPassword
	}
	if err = stu.SetPassword(cp.NewPassword); err != nil {
		return err
	}
	return svc.repo.SetStudentPassword(ctx, cp.StudentID, stu.PasswordHash)
}
