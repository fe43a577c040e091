package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
	"github.com/k0kubun/pp/v3"
	"gopkg.in/yaml.v3"
)

type stateCmd struct {
	format string
}

func (*stateCmd) Name() string     { return "state" }
func (*stateCmd) Synopsis() string { return "print the whole financial state" }
func (*stateCmd) Usage() string {
	return `fin state [-format json|yaml|pp]

  Prints every collection of the store.
`
}

func (c *stateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "json", "Output format: json, yaml or pp.")
}

func (c *stateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch c.format {
	case "json", "yaml", "pp":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	return run(func(a *app) error {
		st := a.store.State()
		switch c.format {
		case "yaml":
			doc, err := document(st)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(doc)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		case "pp":
			doc, err := document(st)
			if err != nil {
				return err
			}
			_, err = pp.Println(doc)
			return err
		default:
			return printJSON(st)
		}
	})
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression against the state" }
func (*queryCmd) Usage() string {
	return `fin query <jsonpath>

  Evaluates the expression against the document printed by 'fin state', e.g.

    fin query '$.accounts[*].balance'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes exactly one expression")
		return subcommands.ExitUsageError
	}
	return run(func(a *app) error {
		v, err := query(a.store.State(), f.Arg(0))
		if err != nil {
			return err
		}
		return printJSON(v)
	})
}

// query evaluates a JSONPath expression against the JSON form of st.
func query(st fintrack.State, expr string) (any, error) {
	doc, err := document(st)
	if err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", expr, err)
	}
	return v, nil
}

// document returns st decoded as generic JSON values.
func document(st fintrack.State) (any, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
