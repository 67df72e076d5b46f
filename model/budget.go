package model

// BudgetItem is one line item in the event budget. Actual is a pointer so
// "not yet recorded" survives the round trip distinct from zero.
type BudgetItem struct {
	ID          string   `json:"id" dynamodbav:"id"`
	Category    string   `json:"category" dynamodbav:"category"`
	Description string   `json:"description" dynamodbav:"description"`
	Estimated   float64  `json:"estimated" dynamodbav:"estimated"`
	Actual      *float64 `json:"actual,omitempty" dynamodbav:"actual,omitempty"`
}

// Budget is embedded in the event root item.
type Budget struct {
	Total float64      `json:"total" dynamodbav:"total"`
	Items []BudgetItem `json:"items" dynamodbav:"items"`
}

// CreateBudgetItemRequest is the creation variant of BudgetItem.
type CreateBudgetItemRequest struct {
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Estimated   float64  `json:"estimated" validate:"min=0"`
	Actual      *float64 `json:"actual,omitempty"`
}

// BudgetItemPatch is the partial-update variant; the item id is immutable.
type BudgetItemPatch struct {
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Estimated   *float64 `json:"estimated,omitempty" validate:"omitempty,min=0"`
	Actual      *float64 `json:"actual,omitempty"`
}

// Apply merges the set fields of the patch into the item.
func (p BudgetItemPatch) Apply(item *BudgetItem) {
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Estimated != nil {
		item.Estimated = *p.Estimated
	}
	if p.Actual != nil {
		item.Actual = p.Actual
	}
}
