package grade

// Report summarizes a subject's grade view.
type Report struct {
	Total          int      `json:"total"`
	Passed         int      `json:"passed"`
	Failed         int      `json:"failed"`
	OverallAverage float64  `json:"avg_overall"`
	FailedStudents []string `json:"failed_students"`
}

// BuildReport assembles the pass/fail summary for a grade view. Ungraded rows
// count towards the total and the overall average but neither passed nor
// failed. An empty view yields a zero report.
func BuildReport(view []StudentGrades) Report {
	rep := Report{FailedStudents: []string{}}

	var sum float64
	for _, row := range view {
		rep.Total++
		sum += row.Average

		switch row.Remark {
		case RemarkPassed:
			rep.Passed++
		case RemarkFailed:
			rep.Failed++
			rep.FailedStudents = append(rep.FailedStudents, row.StudentName)
		}
	}
	if rep.Total > 0 {
		rep.OverallAverage = Round2(sum / float64(rep.Total))
	}
	return rep
}
