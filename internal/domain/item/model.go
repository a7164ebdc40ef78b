package item

import "time"

// Status represents the stored lifecycle stage of a stock item.
// "Late" is not a status: it is derived from the order date at read time.
type Status string

const (
	StatusPending   Status = "Pending Delivery"
	StatusDelivered Status = "Delivered"
	StatusIssue     Status = "Issue"
	StatusArchived  Status = "Archived"
)

// PurchaseStatus describes how a batch was acquired.
type PurchaseStatus string

const (
	PurchasePurchased      PurchaseStatus = "Purchased"
	PurchaseOrdered        PurchaseStatus = "Ordered"
	PurchaseReturnExpected PurchaseStatus = "Return Expected"
)

// VATStatus records whether the seller is VAT registered.
type VATStatus string

const (
	VATYes     VATStatus = "Yes"
	VATNo      VATStatus = "No"
	VATUnknown VATStatus = "Unknown"
)

// Preset destinations offered by the add-item form. Free-text
// destinations are also accepted.
const (
	DestinationFBAPrep          = "FBA Prep"
	DestinationLocalShelfA      = "Local Stock Shelf A"
	DestinationRefurbishPile    = "Refurbish Pile"
	DestinationReturnToSupplier = "Return to Supplier"
)

// StockItem is one trackable batch of incoming stock. Items are never
// deleted: Archived is the terminal status representing removal from
// active workflows.
type StockItem struct {
	ID               string          `json:"id"`
	PurchaseStatus   PurchaseStatus  `json:"purchase_status"`
	DeliveryName     string          `json:"delivery_name"`
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"`
	PricePerItem     float64         `json:"price_per_item"`
	OrderNumber      string          `json:"order_number,omitempty"`
	OrderDate        time.Time       `json:"order_date"`
	Seller           string          `json:"seller,omitempty"`
	VATRegistered    VATStatus       `json:"vat_registered,omitempty"`
	Destination      string          `json:"destination,omitempty"`
	ASINSKU          string          `json:"asin_sku,omitempty"`
	AcquisitionNotes string          `json:"acquisition_notes,omitempty"`
	Status           Status          `json:"status"`
	DateDelivered    *time.Time      `json:"date_delivered,omitempty"`
	ProcessorNotes   string          `json:"processor_notes,omitempty"`
	IssueDescription string          `json:"issue_description,omitempty"`
	Flagged          bool            `json:"flagged"`
	ActivityLog      []ActivityEvent `json:"activity_log"`
}
