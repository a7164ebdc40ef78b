// Package columns holds the table column catalog and the logic for the
// user's visible-column selection: which columns show, in what order, and
// how that choice is persisted.
package columns

import "slices"

// Column describes one table column.
type Column struct {
	ID    string
	Label string
}

// All is the full column catalog in settings-dialog order. The synthetic
// "actions" column renders the per-item action menu rather than a field.
var All = []Column{
	{ID: "order_date", Label: "Order Date"},
	{ID: "quantity", Label: "Qty"},
	{ID: "product_name", Label: "Product Name"},
	{ID: "delivery_name", Label: "Delivery Name"},
	{ID: "price_per_item", Label: "Price/Item"},
	{ID: "seller", Label: "Seller/Source"},
	{ID: "destination", Label: "Destination"},
	{ID: "asin_sku", Label: "ASIN/SKU"},
	{ID: "purchase_status", Label: "Purchase Status"},
	{ID: "order_number", Label: "Order #"},
	{ID: "status", Label: "Status"},
	{ID: "flagged", Label: "Flagged"},
	{ID: "acquisition_notes", Label: "Acquisition Notes"},
	{ID: "issue_description", Label: "Issue Description"},
	{ID: "date_delivered", Label: "Date Delivered"},
	{ID: "actions", Label: "Actions"},
}

// DefaultVisible is the visible-column order used until the user saves a
// selection of their own.
var DefaultVisible = []string{
	"order_date",
	"quantity",
	"product_name",
	"delivery_name",
	"status",
	"actions",
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Column, bool) {
	for _, col := range All {
		if col.ID == id {
			return col, true
		}
	}
	return Column{}, false
}

// Resolve maps an ordered id list onto catalog entries, dropping ids that
// are not (or no longer) in the catalog.
func Resolve(ids []string) []Column {
	out := make([]Column, 0, len(ids))
	for _, id := range ids {
		if col, ok := Lookup(id); ok {
			out = append(out, col)
		}
	}
	return out
}

// ApplySelection merges a settings-dialog selection into the current
// visible order: ids still selected keep their current relative order, and
// newly selected ids are appended in the order given.
func ApplySelection(current, selected []string) []string {
	sel := make(map[string]bool, len(selected))
	for _, id := range selected {
		sel[id] = true
	}

	cur := make(map[string]bool, len(current))
	out := make([]string, 0, len(selected))
	for _, id := range current {
		cur[id] = true
		if sel[id] {
			out = append(out, id)
		}
	}
	for _, id := range selected {
		if !cur[id] {
			out = append(out, id)
		}
	}
	return out
}

// Reorder moves the active column to the over column's position, matching
// drag-and-drop semantics: visibility membership is preserved, only order
// changes. If either id is missing the order is returned unchanged.
func Reorder(ids []string, active, over string) []string {
	from := slices.Index(ids, active)
	to := slices.Index(ids, over)
	if from < 0 || to < 0 || from == to {
		return ids
	}

	out := slices.Clone(ids)
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, active)
}
