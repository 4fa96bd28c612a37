package inmemdb

import (
	"sync"

	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/student"
	"github.com/trezcool/alama/core/subject"
)

// DB is an in-memory stand-in for the record store, used in tests.
type DB struct {
	mutex    sync.RWMutex
	students map[string]*student.Student
	subjects map[string]*subject.Subject
	grades   map[string]*grade.Grade
}

func NewDB() *DB {
	return &DB{
		students: make(map[string]*student.Student),
		subjects: make(map[string]*subject.Subject),
		grades:   make(map[string]*grade.Grade),
	}
}
