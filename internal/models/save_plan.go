package models

import (
	"strings"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// swagger:enum SaveCategory
type SaveCategory string

const (
	SaveCategoryDeposit            SaveCategory = "DEPOSIT"
	SaveCategoryInstallmentSaving  SaveCategory = "INSTALLMENT_SAVING"
	SaveCategorySubscriptionSaving SaveCategory = "SUBSCRIPTION_SAVING"
	SaveCategoryInvestment         SaveCategory = "INVESTMENT"
	SaveCategoryInsurance          SaveCategory = "INSURANCE"
	SaveCategoryChecking           SaveCategory = "CHECKING"
	SaveCategoryPensionSaving      SaveCategory = "PENSION_SAVING"
	SaveCategoryOther              SaveCategory = "OTHER"
)

// SaveCategories lists all save categories in display order.
var SaveCategories = []SaveCategory{
	SaveCategoryDeposit,
	SaveCategoryInstallmentSaving,
	SaveCategorySubscriptionSaving,
	SaveCategoryInvestment,
	SaveCategoryInsurance,
	SaveCategoryChecking,
	SaveCategoryPensionSaving,
	SaveCategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c SaveCategory) Valid() bool {
	return slices.Contains(SaveCategories, c)
}

// SavePlan is a recurring monthly saving. Executed and ExecuteMonth track
// whether the saving has been made for the month it was last checked in.
type SavePlan struct {
	DefaultModel
	Title        string       `json:"title" example:"Index fund"`
	Amount       int64        `json:"amount" example:"500000"` // Minor currency units
	PlanDay      int          `json:"planDay" example:"25"`    // Day of the month the saving is planned for
	Category     SaveCategory `json:"category" example:"INVESTMENT"`
	ExecuteMonth int          `json:"executeMonth" example:"10"` // Month (1-12) that Executed was last set for
	Executed     bool         `json:"executed" example:"false"`  // Saving has been made for ExecuteMonth
	ExecuteCount int          `json:"executeCount" example:"3"`  // Number of months the saving has been made in
}

func (SavePlan) Self() string {
	return "Save Plan"
}

func (s *SavePlan) BeforeSave(_ *gorm.DB) error {
	s.Title = strings.TrimSpace(s.Title)

	if s.PlanDay < 1 || s.PlanDay > 31 {
		return ErrPlanDayInvalid
	}

	if s.ExecuteMonth < 1 || s.ExecuteMonth > 12 {
		return ErrExecuteMonthInvalid
	}

	if !s.Category.Valid() {
		return ErrSaveCategoryInvalid
	}

	if s.Amount < 0 {
		return ErrAmountNegative
	}

	if s.ExecuteCount < 0 {
		s.ExecuteCount = 0
	}

	return nil
}
