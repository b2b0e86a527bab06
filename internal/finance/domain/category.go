package domain

type Group string

const (
	GroupIncomes  Group = "incomes"
	GroupExpenses Group = "expenses"
)

// ParseGroup validates a category group name coming from a path parameter
// or request body. The two groups are independently namespaced.
func ParseGroup(s string) (Group, bool) {
	switch Group(s) {
	case GroupIncomes:
		return GroupIncomes, true
	case GroupExpenses:
		return GroupExpenses, true
	default:
		return "", false
	}
}

type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type CategoryGroups struct {
	Incomes  []Category `json:"incomes"`
	Expenses []Category `json:"expenses"`
}
