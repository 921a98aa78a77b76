package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

// studentColumns excludes password_hash; it must never leave the API.
const studentColumns = "id, student_id, name, email, created_at"

func (repo *studentRepository) FilterStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	q := "SELECT " + studentColumns + " FROM students"
	var args []interface{}

	if filter.Search != "" {
		q += " WHERE (name LIKE ? OR student_id LIKE ? OR email LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if ord, ok := filter.Ordering(); ok {
		q += " ORDER BY " + ord.String()
	}

	students := make([]student.Student, 0)
	if err := repo.db.SelectContext(ctx, &students, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering students")
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByStudentID(ctx context.Context, studentID string) (student.Student, error) {
	var stu student.Student
	q := "SELECT " + studentColumns + ", password_hash FROM students WHERE student_id = ?"
	if err := repo.db.GetContext(ctx, &stu, q, studentID); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return stu, nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	q := "INSERT INTO students (student_id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)"
	res, err := repo.db.ExecContext(ctx, q, stu.StudentID, stu.Name, stu.Email, stu.PasswordHash, stu.CreatedAt)
	if err != nil {
		switch {
		case duplicateEntry(err, "uq_students_student_id"):
			return student.Student{}, student.ErrStudentIDExists
		case duplicateEntry(err, "uq_students_email"):
			return student.Student{}, student.ErrEmailExists
		}
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	stu.ID = int(id)
	return stu, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	if _, err := repo.GetStudentByStudentID(ctx, stu.StudentID); err != nil {
		return student.Student{}, err
	}

	var sets []string
	var args []interface{}
	if stu.Name != "" {
		sets = append(sets, "name = ?")
		args = append(args, stu.Name)
	}
	if stu.Email != "" {
		sets = append(sets, "email = ?")
		args = append(args, stu.Email)
	}
	args = append(args, stu.StudentID)

	q := "UPDATE students SET " + strings.Join(sets, ", ") + " WHERE student_id = ?"
	if _, err := repo.db.ExecContext(ctx, q, args...); err != nil {
		if duplicateEntry(err, "uq_students_email") {
			return student.Student{}, student.ErrEmailExists
		}
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	return repo.GetStudentByStudentID(ctx, stu.StudentID)
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, studentID string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM students WHERE student_id = ?", studentID)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo *studentRepository) SetStudentPassword(ctx context.Context, studentID string, hash []byte) error {
	res, err := repo.db.ExecContext(ctx, "UPDATE students SET password_hash = ? WHERE student_id = ?", hash, studentID)
	if err != nil {
		return errors.Wrap(err, "setting student password")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.ErrNotFound
	}
	return nil
}
