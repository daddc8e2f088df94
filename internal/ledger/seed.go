package ledger

import "expensetracker/internal/core"

// SeedExpenses returns the example records a new session starts with,
// most recent first.
func SeedExpenses() []core.Expense {
	return []core.Expense{
		{ID: "1", Title: "Grocery Shopping", Amount: core.MustAmount("85.50"), Category: core.CategoryFood, Date: "2024-01-15", Description: "Weekly groceries from supermarket"},
		{ID: "2", Title: "Gas Station", Amount: core.MustAmount("45.00"), Category: core.CategoryTransport, Date: "2024-01-14", Description: "Fuel for car"},
		{ID: "3", Title: "Netflix Subscription", Amount: core.MustAmount("15.99"), Category: core.CategoryEntertainment, Date: "2024-01-13", Description: "Monthly streaming subscription"},
		{ID: "4", Title: "Coffee Shop", Amount: core.MustAmount("12.50"), Category: core.CategoryFood, Date: "2024-01-12", Description: "Morning coffee and pastry"},
		{ID: "5", Title: "Electricity Bill", Amount: core.MustAmount("120.00"), Category: core.CategoryBills, Date: "2024-01-10", Description: "Monthly electricity bill"},
		{ID: "6", Title: "Lunch at Restaurant", Amount: core.MustAmount("28.75"), Category: core.CategoryFood, Date: "2024-01-09", Description: "Business lunch meeting"},
		{ID: "7", Title: "Uber Ride", Amount: core.MustAmount("18.50"), Category: core.CategoryTransport, Date: "2024-01-08", Description: "Ride to airport"},
		{ID: "8", Title: "Movie Tickets", Amount: core.MustAmount("24.00"), Category: core.CategoryEntertainment, Date: "2024-01-07", Description: "Weekend movie with friends"},
		{ID: "9", Title: "Pharmacy", Amount: core.MustAmount("35.20"), Category: core.CategoryHealthcare, Date: "2024-01-06", Description: "Prescription medication"},
		{ID: "10", Title: "Online Course", Amount: core.MustAmount("99.00"), Category: core.CategoryEducation, Date: "2024-01-05", Description: "Web development course"},
	}
}

// NewSeeded returns a store holding SeedExpenses in their listed order.
func NewSeeded(opts ...Option) *Store {
	s := New(opts...)
	seed := SeedExpenses()
	// Insert prepends, so walk the list backwards.
	for i := len(seed) - 1; i >= 0; i-- {
		s.Insert(seed[i])
	}
	return s
}
