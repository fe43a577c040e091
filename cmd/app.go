// Package cmd implements the fin command-line application.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/config"
	"github.com/etnz/fintrack/kv"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

// Commands lists every fin subcommand, by group.
var Commands = map[string][]subcommands.Command{
	"reports": {
		&stateCmd{}, &queryCmd{}, &dashboardCmd, &accountsCmd, &budgetsCmd, &emisCmd, &expensesCmd, &investmentsCmd,
		&statementCmd{},
	},
	"entities": {
		&addAccountCmd{}, &addCreditCardCmd{}, &addDebitCardCmd{}, &addInvestmentCmd{},
		&addBudgetCmd{}, &addExpenseCmd{}, &addEMICmd{}, &updateCmd{},
	},
	"intents": {
		&txCmd{}, &autopayCmd{}, &setCategoryCmd{}, &refreshCmd{},
	},
	"misc": {
		&serveCmd{}, &topicCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeFlag    = flag.String("store", "", "Store location: dir:<path>, sqlite:<file> or mem:. Overrides the store setting.")
	currencyFlag = flag.String("currency", "", "ISO currency code used to display amounts. Overrides the currency setting.")
	logLevelFlag = flag.String("log-level", "", "Log level: debug, info, warn or error. Overrides the log_level setting.")
)

// loadConfig returns the settings with the global flags applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}
	if *currencyFlag != "" {
		cfg.Currency = *currencyFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	return cfg, cfg.Validate()
}

// app is what a command needs to run: settings, logger and an open store.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	backend kv.Backend
	store   *fintrack.Store
}

// openApp loads the settings and opens the store they point to.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger()
	clock, err := cfg.Clock()
	if err != nil {
		return nil, err
	}
	backend, err := kv.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "store", cfg.Store)
	store := fintrack.Open(backend, fintrack.WithLogger(logger), fintrack.WithClock(clock))
	return &app{cfg: cfg, logger: logger, backend: backend, store: store}, nil
}

// Close releases the store.
func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("could not close store", "store", a.cfg.Store, "err", err)
	}
}

func (a *app) renderOptions() renderer.Options {
	return renderer.Options{Currency: a.cfg.Currency}
}

// run opens the app, calls fn and reports its error.
func run(fn func(a *app) error) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	if err := fn(a); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, or prints it as is when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// printJSON prints v as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
