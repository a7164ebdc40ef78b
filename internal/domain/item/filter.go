package item

import (
	"strings"
	"time"
)

// Tab is one of the list view's filter tabs. Late is a synthetic tab backed
// by the lateness predicate rather than a stored status.
type Tab string

const (
	TabAll       Tab = "All"
	TabPending   Tab = "Pending Delivery"
	TabDelivered Tab = "Delivered"
	TabIssue     Tab = "Issue"
	TabLate      Tab = "Late"
	TabArchived  Tab = "Archived"
)

// Tabs lists the filter tabs in display order.
var Tabs = []Tab{TabAll, TabPending, TabDelivered, TabIssue, TabLate, TabArchived}

// Filter selects items for the list view. The zero value matches everything.
type Filter struct {
	Tab         Tab
	Search      string
	FlaggedOnly bool
}

// Match reports whether the item passes the filter at the given time.
// Search matches case-insensitively against delivery and product names.
// Late pending items still match the Pending Delivery tab.
func (f Filter) Match(it StockItem, now time.Time) bool {
	switch f.Tab {
	case "", TabAll:
	case TabLate:
		if !IsLate(it, now) {
			return false
		}
	default:
		if it.Status != Status(f.Tab) {
			return false
		}
	}

	if f.FlaggedOnly && !it.Flagged {
		return false
	}

	if q := strings.TrimSpace(f.Search); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(it.DeliveryName), q) &&
			!strings.Contains(strings.ToLower(it.ProductName), q) {
			return false
		}
	}
	return true
}

// Apply returns the items passing the filter, preserving order.
func (f Filter) Apply(items []StockItem, now time.Time) []StockItem {
	var out []StockItem
	for _, it := range items {
		if f.Match(it, now) {
			out = append(out, it)
		}
	}
	return out
}
