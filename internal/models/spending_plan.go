package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/types"
	"gorm.io/gorm"
)

// swagger:enum SpendingType
type SpendingType string

const (
	SpendingTypeLivingExpense   SpendingType = "LIVING_EXPENSE"
	SpendingTypeConsumptionPlan SpendingType = "CONSUMPTION_PLAN"

	// SpendingTypeAll is only used to filter, it is never stored.
	SpendingTypeAll SpendingType = "ALL"
)

// SpendingTypes lists the spending type tabs in display order.
var SpendingTypes = []SpendingType{
	SpendingTypeAll,
	SpendingTypeLivingExpense,
	SpendingTypeConsumptionPlan,
}

// Stored reports whether t can be persisted on a spending plan.
func (t SpendingType) Stored() bool {
	return t == SpendingTypeLivingExpense || t == SpendingTypeConsumptionPlan
}

// Valid reports whether t is a known spending type, including ALL.
func (t SpendingType) Valid() bool {
	return t.Stored() || t == SpendingTypeAll
}

// SpendingCategory is either not selected or a category identified by its code.
//
// It is stored as a nullable string, NULL meaning not selected.
type SpendingCategory struct {
	code string
}

// NotSelected is the SpendingCategory without a category.
func NotSelected() SpendingCategory {
	return SpendingCategory{}
}

// CategoryType returns the SpendingCategory for a category code.
// A blank code is the same as NotSelected.
func CategoryType(code string) SpendingCategory {
	return SpendingCategory{code: strings.TrimSpace(code)}
}

// Selected reports whether a category is set.
func (c SpendingCategory) Selected() bool {
	return c.code != ""
}

// Code returns the category code. It is empty if no category is selected.
func (c SpendingCategory) Code() string {
	return c.code
}

func (c SpendingCategory) String() string {
	if !c.Selected() {
		return "NotSelected"
	}
	return fmt.Sprintf("CategoryType(%s)", c.code)
}

// MarshalJSON encodes the category as its code or null.
func (c SpendingCategory) MarshalJSON() ([]byte, error) {
	if !c.Selected() {
		return []byte("null"), nil
	}
	return json.Marshal(c.code)
}

// UnmarshalJSON decodes a code or null.
func (c *SpendingCategory) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = NotSelected()
		return nil
	}

	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}

	*c = CategoryType(code)
	return nil
}

// Scan reads the category from the database.
func (c *SpendingCategory) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = NotSelected()
	case string:
		*c = CategoryType(v)
	case []byte:
		*c = CategoryType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into SpendingCategory", value)
	}
	return nil
}

// Value returns the category code or NULL.
func (c SpendingCategory) Value() (driver.Value, error) {
	if !c.Selected() {
		return nil, nil
	}
	return c.code, nil
}

// GormDataType defines the data type used by gorm for the type.
func (SpendingCategory) GormDataType() string {
	return "text"
}

// SpendingPlan is a planned expense. Only plans with IsApply set count
// towards the predicted spending of the current cycle.
type SpendingPlan struct {
	DefaultModel
	Title    string           `json:"title" example:"Groceries"`
	Type     SpendingType     `json:"type" example:"LIVING_EXPENSE"`
	Category SpendingCategory `json:"category" swaggertype:"string" example:"FOOD"`
	Amount   int64            `json:"amount" example:"300000"` // Minor currency units
	PlanDate types.Date       `json:"planDate" swaggertype:"string" example:"2024-10-05"`
	IsApply  bool             `json:"isApply" example:"true"` // Counts towards the predicted spending
}

func (SpendingPlan) Self() string {
	return "Spending Plan"
}

func (s *SpendingPlan) BeforeSave(_ *gorm.DB) error {
	s.Title = strings.TrimSpace(s.Title)

	if !s.Type.Stored() {
		return ErrSpendingTypeInvalid
	}

	if s.Amount < 0 {
		return ErrAmountNegative
	}

	return nil
}

// Consumption is money actually spent against a spending plan.
type Consumption struct {
	DefaultModel
	SpendingPlan   SpendingPlan `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SpendingPlanID uuid.UUID    `json:"spendingPlanId" gorm:"index" example:"3863c8c7-f1e4-4a1b-9b6e-6b0c1f9a8e21"`
	Title          string       `json:"title" example:"Weekly market"`
	Amount         int64        `json:"amount" example:"20000"` // Minor currency units
	Date           types.Date   `json:"date" swaggertype:"string" example:"2024-10-12"`
}

func (Consumption) Self() string {
	return "Consumption"
}

func (c *Consumption) BeforeSave(_ *gorm.DB) error {
	c.Title = strings.TrimSpace(c.Title)

	if c.SpendingPlanID == uuid.Nil {
		return ErrConsumptionPlanMissing
	}

	if c.Amount < 0 {
		return ErrAmountNegative
	}

	return nil
}
