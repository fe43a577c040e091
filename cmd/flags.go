package cmd

import (
	"flag"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
)

// moneyVar defines a flag holding an amount like "-1200.50".
func moneyVar(f *flag.FlagSet, m *fintrack.Money, name, usage string) {
	f.Func(name, usage, func(s string) error {
		v, err := fintrack.ParseMoney(s)
		if err != nil {
			return err
		}
		*m = v
		return nil
	})
}

// dateVar defines a flag holding a date like "2023-06-01".
func dateVar(f *flag.FlagSet, d *date.Date, name, usage string) {
	f.Func(name, usage, func(s string) error {
		v, err := date.Parse(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	})
}
