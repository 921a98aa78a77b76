package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/darasa/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, stu := range repo.db.table {
		students = append(students, *stu)
	}
	return students
}

func (repo *studentRepository) FilterStudents(_ context.Context, filter student.QueryFilter) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := repo.query()

	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		filtered := make([]student.Student, 0, len(students))
		for _, stu := range students {
			if strings.Contains(strings.ToLower(stu.Name), search) ||
				strings.Contains(strings.ToLower(stu.StudentID), search) ||
				strings.Contains(strings.ToLower(stu.Email), search) {
				filtered = append(filtered, stu)
			}
		}
		students = filtered
	}

	if ord, ok := filter.Ordering(); ok {
		sort.Slice(students, func(i, j int) bool {
			var a, b string
			switch ord.Field {
			case "student_id":
				a, b = students[i].StudentID, students[j].StudentID
			case "email":
				a, b = students[i].Email, students[j].Email
			default:
				a, b = students[i].Name, students[j].Name
			}
			if ord.Ascending {
				return a < b
			}
			return a > b
		})
	}

	// the password hash never leaves the store
	for i := range students {
		students[i].PasswordHash = nil
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByStudentID(_ context.Context, studentID string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, stu := range repo.db.table {
		if stu.StudentID == studentID {
			return *stu, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) CreateStudent(_ context.Context, stu student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.StudentID == stu.StudentID {
			return student.Student{}, student.ErrStudentIDExists
		}
		if existing.Email == stu.Email {
			return student.Student{}, student.ErrEmailExists
		}
	}

	repo.db.seq++
	stu.ID = repo.db.seq
	repo.db.table[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, stu student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var target *student.Student
	for _, existing := range repo.db.table {
		if existing.StudentID == stu.StudentID {
			target = existing
			break
		}
	}
	if target == nil {
		return student.Student{}, student.ErrNotFound
	}

	if stu.Email != "" {
		for _, existing := range repo.db.table {
			if existing.Email == stu.Email && existing.ID != target.ID {
				return student.Student{}, student.ErrEmailExists
			}
		}
		target.Email = stu.Email
	}
	if stu.Name != "" {
		target.Name = stu.Name
	}
	return *target, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, studentID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for id, stu := range repo.db.table {
		if stu.StudentID == studentID {
			delete(repo.db.table, id)
			return nil
		}
	}
	return student.ErrNotFound
}

func (repo *studentRepository) SetStudentPassword(_ context.Context, studentID string, hash []byte) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, stu := range repo.db.table {
		if stu.StudentID == studentID {
			stu.PasswordHash = hash
			return nil
		}
	}
	return student.ErrNotFound
}
