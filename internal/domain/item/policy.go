package item

import "time"

// Action names surfaced by the per-item action menu.
const (
	ActionFlag          = "Flag Item"
	ActionUnflag        = "Unflag Item"
	ActionMarkDelivered = "Mark as Delivered"
	ActionReportIssue   = "Report Issue"
	ActionViewDetails   = "View Details"
	ActionEdit          = "Edit Item"
	ActionArchive       = "Archive"
	ActionResolveIssue  = "Resolve Issue"
	ActionAddUpdate     = "Add Issue Update"
)

// AvailableActions maps an item's stored status and flag state to the
// ordered list of actions the user may take. Archived items only allow
// viewing; every other status is prefixed with the flag toggle.
func AvailableActions(status Status, flagged bool) []string {
	var actions []string
	switch status {
	case StatusPending:
		actions = []string{ActionMarkDelivered, ActionReportIssue, ActionViewDetails, ActionEdit}
	case StatusDelivered:
		actions = []string{ActionArchive, ActionReportIssue, ActionViewDetails, ActionEdit}
	case StatusIssue:
		actions = []string{ActionResolveIssue, ActionAddUpdate, ActionArchive, ActionViewDetails, ActionEdit}
	case StatusArchived:
		return []string{ActionViewDetails}
	default:
		actions = []string{ActionViewDetails}
	}

	prefix := ActionFlag
	if flagged {
		prefix = ActionUnflag
	}
	return append([]string{prefix}, actions...)
}

// latenessWindow is how long a pending delivery may remain outstanding
// before it counts as late.
const latenessWindow = 7 * 24 * time.Hour

// IsLate reports whether a pending item's order date is more than seven
// days in the past. Lateness is derived on read and never stored.
func IsLate(it StockItem, now time.Time) bool {
	if it.Status != StatusPending {
		return false
	}
	return it.OrderDate.Before(now.Add(-latenessWindow))
}

// Resolution outcomes offered by the resolve-issue dialog.
const (
	OutcomeAccepted      = "Item Accepted / Kept As Is"
	OutcomeRepaired      = "Item Repaired / Refurbished"
	OutcomePartialRefund = "Partial Refund Received"
	OutcomeReturned      = "Returned to Supplier"
	OutcomeDisposed      = "Disposed Of"
	OutcomeOther         = "Other"
)

// ResolutionOutcomes lists the outcomes in dialog order.
var ResolutionOutcomes = []string{
	OutcomeAccepted,
	OutcomeRepaired,
	OutcomePartialRefund,
	OutcomeReturned,
	OutcomeDisposed,
	OutcomeOther,
}

// StatusForOutcome maps a resolution outcome to the item's next status.
// Outcomes that remove the stock from circulation archive the item;
// everything else returns it to Delivered.
func StatusForOutcome(outcome string) Status {
	switch outcome {
	case OutcomeReturned, OutcomeDisposed:
		return StatusArchived
	default:
		return StatusDelivered
	}
}
