package grade

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Remarks
const (
	RemarkNotGraded = "Not Graded"
	RemarkPassed    = "Passed"
	RemarkFailed    = "Failed"
)

// Grade is one student's term scores for one subject.
// StudentName is a display cache kept in sync by the Service; the
// authoritative join key is StudentID.
type Grade struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	SubjectID   string    `json:"subject_id,omitempty"` // empty until the record is tied to a subject
	Prelim      float64   `json:"prelim"`
	Midterm     float64   `json:"midterm"`
	Semifinal   float64   `json:"semifinal"`
	Final       float64   `json:"final"`
	Average     float64   `json:"average"`
	Remark      string    `json:"remark"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewBlankGrade returns an ungraded record with zero scores.
func NewBlankGrade(studentID, studentName, subjectID string) Grade {
	now := time.Now().UTC()
	return Grade{
		StudentID:   studentID,
		StudentName: studentName,
		SubjectID:   subjectID,
		Remark:      RemarkNotGraded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// StudentGrades is one row of a subject's grade view: the student's identity,
// scores and remark, with zero-value defaults when no record exists yet.
type StudentGrades struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Prelim      float64 `json:"prelim"`
	Midterm     float64 `json:"midterm"`
	Semifinal   float64 `json:"semifinal"`
	Final       float64 `json:"final"`
	Average     float64 `json:"average"`
	Remark      string  `json:"remark"`
}

// Score is a term score as submitted by a client. It accepts a JSON number or
// a numeric string; an unparsable value counts as 0.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	var val interface{}
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}
	switch v := val.(type) {
	case float64:
		*s = Score(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			f = 0
		}
		*s = Score(f)
	default:
		*s = 0
	}
	return nil
}

// Entry is one student's scores in a bulk save.
type Entry struct {
	StudentID string `json:"student_id" validate:"required"`
	Prelim    Score  `json:"prelim" validate:"min=0,max=5"`
	Midterm   Score  `json:"midterm" validate:"min=0,max=5"`
	Semifinal Score  `json:"semifinal" validate:"min=0,max=5"`
	Final     Score  `json:"final" validate:"min=0,max=5"`
}
