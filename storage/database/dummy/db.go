package dummydb

import (
	"sync"

	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
)

type (
	DB struct {
		student *studentTable
		week    *weekTable
		comment *commentTable
		user    *userTable
	}

	studentTable struct {
		sync.RWMutex
		seq   int
		table map[int]*student.Student
	}

	weekTable struct {
		sync.RWMutex
		seq   int
		table map[int]*week.Week
	}

	commentTable struct {
		sync.RWMutex
		seq   int
		table map[int]*week.Comment
	}

	userTable struct {
		sync.RWMutex
		seq   int
		table map[int]*user.User
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[int]*student.Student)},
		week:    &weekTable{table: make(map[int]*week.Week)},
		comment: &commentTable{table: make(map[int]*week.Comment)},
		user:    &userTable{table: make(map[int]*user.User)},
	}
	return db, nil
}
