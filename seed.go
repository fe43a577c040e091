package fintrack

import "github.com/etnz/fintrack/date"

// The seed dataset is used for any collection missing from the store, so that a
// first run shows a populated tracker.

func seedAccounts() []Account {
	return []Account{{
		ID:      "1",
		Name:    "Checking Account",
		Balance: M(5000),
		Transactions: []Transaction{
			{ID: "1", Date: date.New(2023, 5, 1), Description: "Salary", Amount: M(3000), Category: "Income"},
			{ID: "2", Date: date.New(2023, 5, 5), Description: "Rent", Amount: M(-1200), Category: "Housing"},
		},
	}}
}

func seedCreditCards() []CreditCard {
	return []CreditCard{{
		ID:      "1",
		Name:    "Rewards Card",
		Number:  "**** **** **** 4321",
		Expiry:  "05/26",
		CVV:     "***",
		Limit:   M(200000),
		Balance: M(2500),
		Transactions: []Transaction{
			{ID: "1", Date: date.New(2023, 5, 10), Description: "Amazon", Amount: M(-150), Category: "Shopping"},
			{ID: "2", Date: date.New(2023, 5, 15), Description: "Restaurant", Amount: M(-85), Category: "Dining"},
		},
	}}
}

func seedDebitCards() []DebitCard {
	return []DebitCard{{
		ID:              "1",
		Name:            "Main Debit Card",
		Number:          "**** **** **** 1234",
		Expiry:          "03/25",
		CVV:             "***",
		LinkedAccountID: "1",
		Transactions: []Transaction{
			{ID: "1", Date: date.New(2023, 5, 12), Description: "Grocery Store", Amount: M(-75), Category: "Groceries"},
			{ID: "2", Date: date.New(2023, 5, 18), Description: "Gas Station", Amount: M(-45), Category: "Transportation"},
		},
	}}
}

func seedInvestments() []Investment {
	return []Investment{
		{ID: "1", Name: "Stock Portfolio", Type: "Stocks", Amount: M(10000), AnnualReturnRate: 8.5, StartDate: date.New(2022, 1, 15)},
		{ID: "2", Name: "Retirement Fund", Type: "401k", Amount: M(25000), AnnualReturnRate: 6.2, StartDate: date.New(2020, 3, 10)},
	}
}

func seedBudgets() []Budget {
	return []Budget{{
		ID:    "1",
		Month: "May",
		Year:  2023,
		Categories: []BudgetCategory{
			{ID: "1", Name: "Housing", Allocated: M(1500), Spent: M(1200)},
			{ID: "2", Name: "Food", Allocated: M(600), Spent: M(450)},
			{ID: "3", Name: "Transportation", Allocated: M(300), Spent: M(250)},
			{ID: "4", Name: "Entertainment", Allocated: M(200), Spent: M(180)},
			{ID: "5", Name: "Utilities", Allocated: M(400), Spent: M(350)},
		},
	}}
}

func seedExpenses() []Expense {
	return []Expense{
		{ID: "1", Category: "Housing", Amount: M(1200), Date: date.New(2023, 5, 1)},
		{ID: "2", Category: "Food", Amount: M(450), Date: date.New(2023, 5, 15)},
		{ID: "3", Category: "Transportation", Amount: M(250), Date: date.New(2023, 5, 10)},
		{ID: "4", Category: "Entertainment", Amount: M(180), Date: date.New(2023, 5, 20)},
		{ID: "5", Category: "Utilities", Amount: M(350), Date: date.New(2023, 5, 5)},
	}
}

func seedEMIs() []Installment {
	return []Installment{
		{
			ID: "1", Name: "Car Loan", Amount: M(350),
			StartDate: date.New(2022, 1, 15), EndDate: date.New(2027, 1, 15),
			TotalPayments: 60, RemainingPayments: 44, NextPaymentDate: date.New(2023, 6, 15),
			AutopayEnabled: true,
		},
		{
			ID: "2", Name: "Home Loan", Amount: M(1200),
			StartDate: date.New(2020, 5, 10), EndDate: date.New(2040, 5, 10),
			TotalPayments: 240, RemainingPayments: 204, NextPaymentDate: date.New(2023, 6, 10),
			AutopayEnabled: true,
		},
	}
}
