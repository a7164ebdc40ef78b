package item

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Payload is the field set supplied by the add/edit item form. Callers are
// expected to run Validate before handing a payload to the store; the store
// trusts its input.
type Payload struct {
	PurchaseStatus   PurchaseStatus
	DeliveryName     string `validate:"required"`
	ProductName      string `validate:"required"`
	Quantity         int    `validate:"required,gt=0"`
	PricePerItem     float64 `validate:"gte=0"`
	OrderNumber      string
	OrderDate        time.Time `validate:"required"`
	Seller           string
	VATRegistered    VATStatus
	Destination      string
	ASINSKU          string
	AcquisitionNotes string
	Flagged          bool
}

var validate = validator.New()

// Validate checks a form payload and returns per-field error messages keyed
// by struct field name. A nil map means the payload is valid. Validation
// failures block form submission; they are never fatal.
func Validate(p Payload) map[string]string {
	p.DeliveryName = strings.TrimSpace(p.DeliveryName)
	p.ProductName = strings.TrimSpace(p.ProductName)

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"Payload": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.StructField()] = messageFor(fe)
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.StructField() {
	case "DeliveryName":
		return "Delivery Name is required."
	case "ProductName":
		return "Product Name is required."
	case "Quantity":
		return "Quantity must be a positive number."
	case "PricePerItem":
		return "Price must be zero or positive."
	case "OrderDate":
		return "Order Date is required."
	}
	return fmt.Sprintf("%s is invalid.", fe.StructField())
}
