package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

// entityKinds are the arguments of update.
var entityKinds = []string{"account", "credit-card", "debit-card", "investment", "budget", "expense", "emi"}

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "replace an entity with a JSON document read from stdin" }
func (*updateCmd) Usage() string {
	return `fin update <kind> < entity.json

  Replaces the entity with the same id. Kinds are ` + strings.Join(entityKinds, ", ") + `.
  The document uses the fields printed by 'fin state', e.g.

    fin query '$.accounts[0]' | jq '.name = "Main"' | fin update account
`
}

func (*updateCmd) SetFlags(f *flag.FlagSet) {}

func (*updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: update takes exactly one kind")
		return subcommands.ExitUsageError
	}
	kind := f.Arg(0)
	return run(func(a *app) error {
		found, err := update(a.store, kind, os.Stdin)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s not found", kind)
		}
		fmt.Printf("Updated %s\n", kind)
		return nil
	})
}

// update decodes an entity of the given kind from r and replaces the stored one.
func update(s *fintrack.Store, kind string, r io.Reader) (bool, error) {
	switch kind {
	case "account":
		return decodeAndUpdate(r, s.UpdateAccount)
	case "credit-card":
		return decodeAndUpdate(r, s.UpdateCreditCard)
	case "debit-card":
		return decodeAndUpdate(r, s.UpdateDebitCard)
	case "investment":
		return decodeAndUpdate(r, s.UpdateInvestment)
	case "budget":
		return decodeAndUpdate(r, s.UpdateBudget)
	case "expense":
		return decodeAndUpdate(r, s.UpdateExpense)
	case "emi":
		return decodeAndUpdate(r, s.UpdateEMI)
	default:
		return false, fmt.Errorf("unknown kind %q, want one of %s", kind, strings.Join(entityKinds, ", "))
	}
}

func decodeAndUpdate[T any](r io.Reader, update func(T) (bool, error)) (bool, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return false, fmt.Errorf("invalid json: %w", err)
	}
	return update(v)
}
