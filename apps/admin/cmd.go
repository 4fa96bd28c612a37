package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/subject"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db       *sqlx.DB
	subSvc   *subject.Service
	grdSvc   *grade.Service
	validate *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  seed - create the default subjects")
	fmt.Println("  report -subject SUBJECT - print the class record report for a subject (ID, code or name)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
	reportSubject := reportCmd.String("subject", "", "The subject's ID, code or name.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *reportSubject == "" {
			reportCmd.Usage()
			return errHelp
		}
		return cli.report(*reportSubject)
	default:
		cli.printUsage()
		return errHelp
	}
}
