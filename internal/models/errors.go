package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Save plan errors
var (
	ErrPlanDayInvalid      = errors.New("the plan day must be between 1 and 31")
	ErrExecuteMonthInvalid = errors.New("the execute month must be between 1 and 12")
	ErrSaveCategoryInvalid = errors.New("the save category is not valid")
	ErrAmountNegative      = errors.New("the amount must not be negative")
)

// Spending plan errors
var (
	ErrSpendingTypeInvalid = errors.New("the spending type is not valid")
)

// Consumption errors
var (
	ErrConsumptionPlanMissing = errors.New("the consumption must reference an existing spending plan")
)

// Income errors
var (
	ErrIncomeTypeInvalid = errors.New("the income type is not valid")
)
