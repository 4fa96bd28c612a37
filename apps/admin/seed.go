package main

import (
	"context"
	"fmt"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/subject"
)

var defaultSubjects = []subject.NewSubject{
	{Code: "MATH101", Name: "Mathematics", Instructor: "A. Kalonji"},
	{Code: "SCI101", Name: "Science", Instructor: "B. Mukendi"},
	{Code: "ENG101", Name: "English", Instructor: "C. Ilunga"},
	{Code: "PROG101", Name: "Programming", Instructor: "D. Tshibangu"},
	{Code: "DB101", Name: "Database Systems", Instructor: "E. Kabila"},
}

// seed creates the default subjects, skipping any whose code already exists.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	existing, err := cli.subSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	codes := make(map[string]struct{}, len(existing))
	for _, sub := range existing {
		codes[core.CleanString(sub.Code, true /* lower */)] = struct{}{}
	}

	for _, ns := range defaultSubjects {
		if _, ok := codes[core.CleanString(ns.Code, true /* lower */)]; ok {
			fmt.Printf("%s already exists, skipping\n", ns.Code)
			continue
		}
		if err := ns.Validate(cli.validate); err != nil {
			return err
		}
		sub, err := cli.subSvc.Create(ctx, ns)
		if err != nil {
			return err
		}
		fmt.Printf("created %s - %s (%s)\n", sub.Code, sub.Name, sub.Instructor)
	}
	return nil
}
