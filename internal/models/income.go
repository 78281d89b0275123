package models

import (
	"strings"

	"github.com/moneymate/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// swagger:enum IncomeType
type IncomeType string

const (
	IncomeTypeSalary    IncomeType = "SALARY"
	IncomeTypeAllowance IncomeType = "ALLOWANCE"
	IncomeTypeFinancial IncomeType = "FINANCIAL"
	IncomeTypeOther     IncomeType = "OTHER"
)

var IncomeTypes = []IncomeType{
	IncomeTypeSalary,
	IncomeTypeAllowance,
	IncomeTypeFinancial,
	IncomeTypeOther,
}

func (t IncomeType) Valid() bool {
	return slices.Contains(IncomeTypes, t)
}

type Income struct {
	DefaultModel
	Title      string     `json:"title" example:"Salary"`
	Amount     int64      `json:"amount" example:"3000000"` // Minor currency units
	Type       IncomeType `json:"type" example:"SALARY"`
	IncomeDate types.Date `json:"incomeDate" swaggertype:"string" example:"2024-10-25"`
	IsExecuted bool       `json:"isExecuted" example:"false"` // Income has been received
}

func (Income) Self() string {
	return "Income"
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Title = strings.TrimSpace(i.Title)

	if !i.Type.Valid() {
		return ErrIncomeTypeInvalid
	}

	if i.Amount < 0 {
		return ErrAmountNegative
	}

	return nil
}
