package model

// Vendor status values.
const (
	VendorPending   = "pending"
	VendorConfirmed = "confirmed"
	VendorPaid      = "paid"
)

// Vendor lives embedded in the event root item's vendors array.
type Vendor struct {
	ID       string  `json:"id" dynamodbav:"id"`
	Name     string  `json:"name" dynamodbav:"name"`
	Category string  `json:"category" dynamodbav:"category"`
	Contact  string  `json:"contact" dynamodbav:"contact"`
	Cost     float64 `json:"cost" dynamodbav:"cost"`
	Status   string  `json:"status" dynamodbav:"status" validate:"omitempty,oneof=pending confirmed paid"`
	Notes    string  `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
}

// CreateVendorRequest is the creation variant of Vendor.
type CreateVendorRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Contact  string  `json:"contact" validate:"required"`
	Cost     float64 `json:"cost" validate:"min=0"`
	Status   string  `json:"status" validate:"required,oneof=pending confirmed paid"`
	Notes    string  `json:"notes,omitempty"`
}

// VendorPatch is the partial-update variant; the vendor id is immutable.
type VendorPatch struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Contact  *string  `json:"contact,omitempty"`
	Cost     *float64 `json:"cost,omitempty" validate:"omitempty,min=0"`
	Status   *string  `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed paid"`
	Notes    *string  `json:"notes,omitempty"`
}

// Apply merges the set fields of the patch into the vendor.
func (p VendorPatch) Apply(vendor *Vendor) {
	if p.Name != nil {
		vendor.Name = *p.Name
	}
	if p.Category != nil {
		vendor.Category = *p.Category
	}
	if p.Contact != nil {
		vendor.Contact = *p.Contact
	}
	if p.Cost != nil {
		vendor.Cost = *p.Cost
	}
	if p.Status != nil {
		vendor.Status = *p.Status
	}
	if p.Notes != nil {
		vendor.Notes = *p.Notes
	}
}
