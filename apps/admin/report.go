package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/subject"
)

// report prints the class record and its summary for the subject identified by
// key (ID, code or name; codes and names match case-insensitively).
func (cli *commandLine) report(key string) error {
	ctx := context.Background()

	sub, err := cli.findSubject(ctx, key)
	if err != nil {
		return err
	}

	view, err := cli.grdSvc.GradeView(ctx, sub.ID)
	if err != nil {
		return err
	}
	rpt := grade.BuildReport(view)

	fmt.Printf("\n%s - %s (%s)\n\n", sub.Code, sub.Name, sub.Instructor)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STUDENT\tPRELIM\tMIDTERM\tSEMIFINAL\tFINAL\tAVERAGE\tREMARK")
	for _, row := range view {
		fmt.Fprintf(
			w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.2f\t%s\n",
			row.StudentName, row.Prelim, row.Midterm, row.Semifinal, row.Final, row.Average, row.Remark,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf(
		"\nTotal: %d\tPassed: %d\tFailed: %d\tOverall Average: %.2f\n",
		rpt.Total, rpt.Passed, rpt.Failed, rpt.OverallAverage,
	)
	if len(rpt.FailedStudents) > 0 {
		fmt.Printf("Failed Students: %s\n", strings.Join(rpt.FailedStudents, ", "))
	}
	return nil
}

func (cli *commandLine) findSubject(ctx context.Context, key string) (subject.Subject, error) {
	if sub, err := cli.subSvc.GetByID(ctx, key); err == nil {
		return sub, nil
	} else if err != subject.ErrNotFound {
		return subject.Subject{}, err
	}

	subs, err := cli.subSvc.QueryAll(ctx)
	if err != nil {
		return subject.Subject{}, err
	}
	cleaned := core.CleanString(key, true /* lower */)
	for _, sub := range subs {
		if core.CleanString(sub.Code, true) == cleaned || core.CleanString(sub.Name, true) == cleaned {
			return sub, nil
		}
	}
	return subject.Subject{}, subject.ErrNotFound
}
