package engine

import "github.com/moneymate/backend/internal/models"

// IncomeList is the list of incomes shown to the user.
type IncomeList struct {
	Incomes []models.Income
}

func (l IncomeList) Total() int64 {
	var sum int64
	for _, i := range l.Incomes {
		sum += i.Amount
	}
	return sum
}

// ExecutedTotal is the sum of all incomes that have been received.
func (l IncomeList) ExecutedTotal() int64 {
	var sum int64
	for _, i := range l.Incomes {
		if i.IsExecuted {
			sum += i.Amount
		}
	}
	return sum
}

func (l IncomeList) IsEmpty() bool {
	return len(l.Incomes) == 0
}
