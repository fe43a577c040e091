// Package fintrack is the financial state engine of a local-first personal
// finance tracker.
//
// It keeps accounts, credit and debit cards, investments, monthly budgets,
// expenses and installment plans (EMIs) in a single Store:
//   - Intents: every change is a Store method (AddAccount, ApplyTransaction,
//     ToggleEMIAutopay, ...) that validates its input and either applies it
//     completely or returns a *ValidationError and changes nothing.
//   - Cascades: a debit card transaction is recorded on the card and moves the
//     balance of its linked account in the same call.
//   - Derived values: remaining payments and next payment dates of installments,
//     budget utilization, and dashboard totals are pure functions of the state
//     and the current day.
//   - Persistence: after each change the touched collections are written to a
//     kv.Backend. Collections missing or unreadable at startup are replaced by
//     a seed dataset.
//
// Readers get deep copies of the state through Store.State, or subscribe to
// every committed change with Store.Subscribe.
//
// This package is the foundation of the `fin` command-line tool and its HTTP
// server.
package fintrack
