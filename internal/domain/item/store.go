package item

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns the canonical in-memory collection of stock items and is the
// only component permitted to mutate them. Mutations are copy-on-write: the
// affected item is replaced wholesale with a new value carrying the field
// changes and the appended activity events, so previously handed-out
// snapshots and unrelated items are never touched. Stored activity log
// slices are never appended to in place.
type Store struct {
	mu     sync.Mutex
	items  []StockItem
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides item id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates an empty item store.
func NewStore(logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) event(t EventType, d EventDetails) ActivityEvent {
	return ActivityEvent{Timestamp: s.now(), Type: t, Details: d}
}

// Create adds a new item from a validated form payload. The item starts in
// Pending Delivery with its log seeded by a single CREATED event, and is
// prepended so the newest item lists first.
func (s *Store) Create(p Payload) StockItem {
	it := StockItem{
		ID:               s.newID(),
		PurchaseStatus:   p.PurchaseStatus,
		DeliveryName:     p.DeliveryName,
		ProductName:      p.ProductName,
		Quantity:         p.Quantity,
		PricePerItem:     p.PricePerItem,
		OrderNumber:      p.OrderNumber,
		OrderDate:        p.OrderDate,
		Seller:           p.Seller,
		VATRegistered:    normalizeVAT(p.VATRegistered),
		Destination:      p.Destination,
		ASINSKU:          p.ASINSKU,
		AcquisitionNotes: p.AcquisitionNotes,
		Status:           StatusPending,
		Flagged:          p.Flagged,
		ActivityLog:      []ActivityEvent{s.event(EventCreated, nil)},
	}

	s.mu.Lock()
	s.items = append([]StockItem{it}, s.items...)
	s.mu.Unlock()

	s.logger.Debug("item created", "id", it.ID, "product", it.ProductName)
	return it
}

// apply is the single choke point through which every mutation flows. It
// replaces the stored item with a copy carrying the mutation and the
// appended events. An unknown id is a silent no-op, not an error.
func (s *Store) apply(id string, mutate func(*StockItem), events ...ActivityEvent) (StockItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.ID != id {
			continue
		}
		updated := it
		if mutate != nil {
			mutate(&updated)
		}
		log := make([]ActivityEvent, len(it.ActivityLog), len(it.ActivityLog)+len(events))
		copy(log, it.ActivityLog)
		updated.ActivityLog = append(log, events...)
		s.items[i] = updated
		return updated, true
	}

	s.logger.Debug("ignoring mutation for unknown item", "id", id)
	return StockItem{}, false
}

// Edit merges a full form payload into an existing item and logs one EDITED
// event listing the fields whose values changed.
func (s *Store) Edit(id string, p Payload) (StockItem, bool) {
	current, ok := s.Get(id)
	if !ok {
		s.logger.Debug("ignoring edit for unknown item", "id", id)
		return StockItem{}, false
	}

	ev := s.event(EventEdited, Edited{ChangedFields: changedFields(current, p)})
	return s.apply(id, func(it *StockItem) { applyPayload(it, p) }, ev)
}

// MarkDelivered transitions a pending item to Delivered and stamps the
// delivery time. Items already delivered are left untouched, so repeating
// the action neither changes state nor grows the log.
func (s *Store) MarkDelivered(id string) (StockItem, bool) {
	current, ok := s.Get(id)
	if !ok {
		s.logger.Debug("ignoring mark-delivered for unknown item", "id", id)
		return StockItem{}, false
	}
	if current.Status == StatusDelivered {
		return current, true
	}

	when := s.now()
	ev := s.event(EventStatusChanged, StatusChanged{Previous: current.Status, New: StatusDelivered})
	return s.apply(id, func(it *StockItem) {
		it.Status = StatusDelivered
		it.DateDelivered = &when
	}, ev)
}

// Archive moves an item to the terminal Archived status. Archiving an
// archived item is a no-op.
func (s *Store) Archive(id string) (StockItem, bool) {
	current, ok := s.Get(id)
	if !ok {
		s.logger.Debug("ignoring archive for unknown item", "id", id)
		return StockItem{}, false
	}
	if current.Status == StatusArchived {
		return current, true
	}

	ev := s.event(EventStatusChanged, StatusChanged{Previous: current.Status, New: StatusArchived})
	return s.apply(id, func(it *StockItem) { it.Status = StatusArchived }, ev)
}

// ReportIssue puts the item into the Issue status with the given
// description, logging ISSUE_REPORTED followed by STATUS_CHANGED. The prior
// status may itself be Issue; the transition is recorded regardless.
func (s *Store) ReportIssue(id, description string) (StockItem, bool) {
	current, ok := s.Get(id)
	if !ok {
		s.logger.Debug("ignoring issue report for unknown item", "id", id)
		return StockItem{}, false
	}

	reported := s.event(EventIssueReported, IssueReported{Description: description})
	changed := s.event(EventStatusChanged, StatusChanged{Previous: current.Status, New: StatusIssue})
	return s.apply(id, func(it *StockItem) {
		it.Status = StatusIssue
		it.IssueDescription = description
	}, reported, changed)
}

// AddIssueUpdate appends a progress note to an open issue. No item fields
// change.
func (s *Store) AddIssueUpdate(id, note string) (StockItem, bool) {
	return s.apply(id, nil, s.event(EventIssueUpdateAdded, Note{Note: note}))
}

// ResolveIssue closes an issue with one of the fixed outcomes, moving the
// item to the status the outcome implies and logging ISSUE_RESOLVED followed
// by STATUS_CHANGED. The issue description is deliberately retained for
// later reference.
func (s *Store) ResolveIssue(id, outcome, note string) (StockItem, bool) {
	current, ok := s.Get(id)
	if !ok {
		s.logger.Debug("ignoring issue resolution for unknown item", "id", id)
		return StockItem{}, false
	}

	next := StatusForOutcome(outcome)
	resolved := s.event(EventIssueResolved, IssueResolved{Outcome: outcome, Note: note})
	changed := s.event(EventStatusChanged, StatusChanged{Previous: current.Status, New: next})
	return s.apply(id, func(it *StockItem) { it.Status = next }, resolved, changed)
}

// ToggleFlag flips the item's follow-up flag and logs the new value. The
// flag is orthogonal to status and never drives a transition.
func (s *Store) ToggleFlag(id string) (StockItem, bool) {
	current, ok := s.Get(id)
	if !ok {
		s.logger.Debug("ignoring flag toggle for unknown item", "id", id)
		return StockItem{}, false
	}

	next := !current.Flagged
	ev := s.event(EventFlagToggled, FlagToggled{Flagged: next})
	return s.apply(id, func(it *StockItem) { it.Flagged = next }, ev)
}

// AddNote records a general processing note.
func (s *Store) AddNote(id, note string) (StockItem, bool) {
	ev := s.event(EventNoteAdded, Note{Note: note})
	return s.apply(id, func(it *StockItem) { it.ProcessorNotes = note }, ev)
}

// Get returns a snapshot of the item with the given id.
func (s *Store) Get(id string) (StockItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return StockItem{}, false
}

// List returns a snapshot of all items, newest first.
func (s *Store) List() []StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]StockItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of items in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func normalizeVAT(v VATStatus) VATStatus {
	if v == "" {
		return VATUnknown
	}
	return v
}

func applyPayload(it *StockItem, p Payload) {
	it.PurchaseStatus = p.PurchaseStatus
	it.DeliveryName = p.DeliveryName
	it.ProductName = p.ProductName
	it.Quantity = p.Quantity
	it.PricePerItem = p.PricePerItem
	it.OrderNumber = p.OrderNumber
	it.OrderDate = p.OrderDate
	it.Seller = p.Seller
	it.VATRegistered = normalizeVAT(p.VATRegistered)
	it.Destination = p.Destination
	it.ASINSKU = p.ASINSKU
	it.AcquisitionNotes = p.AcquisitionNotes
	it.Flagged = p.Flagged
}

// changedFields shallow-compares a payload against the item's current
// values, returning the names of fields that differ. Nil when nothing
// changed, so the EDITED event omits the list entirely.
func changedFields(it StockItem, p Payload) []string {
	var changed []string
	add := func(name string, differs bool) {
		if differs {
			changed = append(changed, name)
		}
	}

	add("purchase_status", it.PurchaseStatus != p.PurchaseStatus)
	add("delivery_name", it.DeliveryName != p.DeliveryName)
	add("product_name", it.ProductName != p.ProductName)
	add("quantity", it.Quantity != p.Quantity)
	add("price_per_item", it.PricePerItem != p.PricePerItem)
	add("order_number", it.OrderNumber != p.OrderNumber)
	add("order_date", !it.OrderDate.Equal(p.OrderDate))
	add("seller", it.Seller != p.Seller)
	add("vat_registered", it.VATRegistered != normalizeVAT(p.VATRegistered))
	add("destination", it.Destination != p.Destination)
	add("asin_sku", it.ASINSKU != p.ASINSKU)
	add("acquisition_notes", it.AcquisitionNotes != p.AcquisitionNotes)
	add("flagged", it.Flagged != p.Flagged)
	return changed
}
