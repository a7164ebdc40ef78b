package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/telffer/stockroom/internal/columns"
	"github.com/telffer/stockroom/internal/domain/item"
)

// RenderTable writes items as a text table honoring the given column order.
// Rows are numbered so commands can address items by their position in the
// current view.
func RenderTable(w io.Writer, items []item.StockItem, cols []columns.Column, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, "#")
	for _, c := range cols {
		headers = append(headers, c.Label)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for i, it := range items {
		row := make([]string, 0, len(cols)+1)
		row = append(row, strconv.Itoa(i+1))
		for _, c := range cols {
			row = append(row, cellValue(it, c.ID, now))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if len(items) == 0 {
		fmt.Fprintln(tw, "no items match the current filter")
	}
	tw.Flush()
}

func cellValue(it item.StockItem, columnID string, now time.Time) string {
	switch columnID {
	case "order_date":
		return it.OrderDate.Format("2006-01-02")
	case "quantity":
		return strconv.Itoa(it.Quantity)
	case "product_name":
		return it.ProductName
	case "delivery_name":
		return it.DeliveryName
	case "price_per_item":
		return strconv.FormatFloat(it.PricePerItem, 'f', 2, 64)
	case "seller":
		return dash(it.Seller)
	case "destination":
		return dash(it.Destination)
	case "asin_sku":
		return dash(it.ASINSKU)
	case "purchase_status":
		return string(it.PurchaseStatus)
	case "order_number":
		return dash(it.OrderNumber)
	case "status":
		if item.IsLate(it, now) {
			return string(it.Status) + " (late)"
		}
		return string(it.Status)
	case "flagged":
		if it.Flagged {
			return "yes"
		}
		return ""
	case "acquisition_notes":
		return dash(it.AcquisitionNotes)
	case "issue_description":
		return dash(it.IssueDescription)
	case "date_delivered":
		if it.DateDelivered == nil {
			return "-"
		}
		return it.DateDelivered.Format("2006-01-02")
	case "actions":
		// Archived items have no action menu.
		if it.Status == item.StatusArchived {
			return ""
		}
		return "..."
	}
	return "?"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// FormatEvent renders one activity log entry for the detail view.
func FormatEvent(ev item.ActivityEvent) string {
	ts := ev.Timestamp.Format(time.RFC3339)
	switch d := ev.Details.(type) {
	case item.StatusChanged:
		return fmt.Sprintf("%s  status changed: %s -> %s", ts, d.Previous, d.New)
	case item.FlagToggled:
		if d.Flagged {
			return fmt.Sprintf("%s  item flagged", ts)
		}
		return fmt.Sprintf("%s  item unflagged", ts)
	case item.IssueReported:
		return fmt.Sprintf("%s  issue reported: %s", ts, d.Description)
	case item.IssueResolved:
		if d.Note != "" {
			return fmt.Sprintf("%s  issue resolved (%s): %s", ts, d.Outcome, d.Note)
		}
		return fmt.Sprintf("%s  issue resolved (%s)", ts, d.Outcome)
	case item.Note:
		if ev.Type == item.EventIssueUpdateAdded {
			return fmt.Sprintf("%s  issue update: %s", ts, d.Note)
		}
		return fmt.Sprintf("%s  note: %s", ts, d.Note)
	case item.Edited:
		if len(d.ChangedFields) == 0 {
			return fmt.Sprintf("%s  item edited", ts)
		}
		return fmt.Sprintf("%s  item edited (%s)", ts, strings.Join(d.ChangedFields, ", "))
	}
	if ev.Type == item.EventCreated {
		return fmt.Sprintf("%s  item created", ts)
	}
	return fmt.Sprintf("%s  %s", ts, ev.Type)
}
