package cmd

import (
	"flag"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion requests, when the shell sets COMP_LINE,
// and exits. It returns immediately otherwise.
//
// Install it with `COMP_INSTALL=1 fin`.
func Complete(name string) {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictFlag(f.Name) })

	for _, cmds := range Commands {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: map[string]complete.Predictor{}}
			fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictFlag(f.Name) })
			root.Sub[c.Name()] = sub
		}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	root.Sub["update"].Args = predict.Set(entityKinds)
	root.Sub["state"].Flags["format"] = predict.Set{"json", "yaml", "pp"}

	root.Complete(name)
}

// predictFlag predicts values of flags that share a name across commands.
func predictFlag(name string) complete.Predictor {
	switch name {
	case "kind":
		return predict.Set{string(fintrack.TargetAccount), "credit-card", "debit-card"}
	case "month":
		return predict.Set(fintrack.Months)
	case "category":
		return predict.Set(fintrack.TransactionCategories)
	case "type":
		return predict.Set(fintrack.InvestmentTypes)
	case "p":
		var periods predict.Set
		for _, p := range date.Periods {
			periods = append(periods, string(p))
		}
		return periods
	case "o":
		return predict.Files("*.pdf")
	case "store":
		return predict.Or(predict.Set{"mem:", "dir:", "sqlite:"}, predict.Files("*"))
	case "log-level":
		return predict.Set{"debug", "info", "warn", "error"}
	default:
		return predict.Something
	}
}
