package item_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telffer/stockroom/internal/domain/item"
)

// newTestStore returns a store with deterministic ids (item-1, item-2, ...)
// and a clock that advances one second per reading.
func newTestStore(t *testing.T) *item.Store {
	t.Helper()

	seq := 0
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return item.NewStore(nil,
		item.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("item-%d", seq)
		}),
		item.WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}),
	)
}

func validPayload() item.Payload {
	return item.Payload{
		PurchaseStatus: item.PurchasePurchased,
		DeliveryName:   "Batch1",
		ProductName:    "Widget",
		Quantity:       5,
		PricePerItem:   2.0,
		OrderDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStore_Create(t *testing.T) {
	store := newTestStore(t)

	it := store.Create(validPayload())

	require.NotEmpty(t, it.ID)
	require.Equal(t, item.StatusPending, it.Status)
	require.Nil(t, it.DateDelivered)
	require.Equal(t, item.VATUnknown, it.VATRegistered)
	require.Len(t, it.ActivityLog, 1)
	require.Equal(t, item.EventCreated, it.ActivityLog[0].Type)
	require.Nil(t, it.ActivityLog[0].Details)
}

func TestStore_Create_NewestFirst(t *testing.T) {
	store := newTestStore(t)

	store.Create(validPayload())
	p := validPayload()
	p.ProductName = "Gadget"
	store.Create(p)

	items := store.List()
	require.Len(t, items, 2)
	require.Equal(t, "Gadget", items[0].ProductName)
	require.Equal(t, "Widget", items[1].ProductName)
}

func TestStore_MarkDelivered(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())

	updated, ok := store.MarkDelivered(created.ID)
	require.True(t, ok)
	require.Equal(t, item.StatusDelivered, updated.Status)
	require.NotNil(t, updated.DateDelivered)
	require.Len(t, updated.ActivityLog, 2)
	require.Equal(t, item.EventStatusChanged, updated.ActivityLog[1].Type)
	require.Equal(t, item.StatusChanged{
		Previous: item.StatusPending,
		New:      item.StatusDelivered,
	}, updated.ActivityLog[1].Details)
}

func TestStore_MarkDelivered_AlreadyDelivered(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())

	first, ok := store.MarkDelivered(created.ID)
	require.True(t, ok)

	again, ok := store.MarkDelivered(created.ID)
	require.True(t, ok)
	require.Equal(t, first.DateDelivered, again.DateDelivered)
	require.Len(t, again.ActivityLog, 2, "repeat delivery must not grow the log")
}

func TestStore_DeliverThenArchive(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())

	store.MarkDelivered(created.ID)
	final, ok := store.Archive(created.ID)
	require.True(t, ok)

	require.Equal(t, item.StatusArchived, final.Status)
	require.Len(t, final.ActivityLog, 3)
	require.Equal(t, item.EventCreated, final.ActivityLog[0].Type)
	require.Equal(t, item.EventStatusChanged, final.ActivityLog[1].Type)
	require.Equal(t, item.EventStatusChanged, final.ActivityLog[2].Type)
	require.Equal(t, item.StatusChanged{
		Previous: item.StatusDelivered,
		New:      item.StatusArchived,
	}, final.ActivityLog[2].Details)
}

func TestStore_ReportIssue(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())
	store.MarkDelivered(created.ID)

	updated, ok := store.ReportIssue(created.ID, "arrived damaged")
	require.True(t, ok)

	require.Equal(t, item.StatusIssue, updated.Status)
	require.Equal(t, "arrived damaged", updated.IssueDescription)

	log := updated.ActivityLog
	require.Len(t, log, 4)
	require.Equal(t, item.EventIssueReported, log[2].Type)
	require.Equal(t, item.IssueReported{Description: "arrived damaged"}, log[2].Details)
	require.Equal(t, item.EventStatusChanged, log[3].Type)
	require.Equal(t, item.StatusChanged{
		Previous: item.StatusDelivered,
		New:      item.StatusIssue,
	}, log[3].Details)
}

func TestStore_ResolveIssue_Disposed(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())
	store.ReportIssue(created.ID, "crushed box")

	updated, ok := store.ResolveIssue(created.ID, item.OutcomeDisposed, "")
	require.True(t, ok)

	require.Equal(t, item.StatusArchived, updated.Status)
	require.Equal(t, "crushed box", updated.IssueDescription, "description is retained after resolution")

	log := updated.ActivityLog
	require.Equal(t, item.EventIssueResolved, log[len(log)-2].Type)
	require.Equal(t, item.EventStatusChanged, log[len(log)-1].Type)
}

func TestStore_ResolveIssue_Repaired(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())
	store.ReportIssue(created.ID, "scratched")

	updated, ok := store.ResolveIssue(created.ID, item.OutcomeRepaired, "buffed out")
	require.True(t, ok)

	require.Equal(t, item.StatusDelivered, updated.Status)
	log := updated.ActivityLog
	require.Equal(t, item.IssueResolved{
		Outcome: item.OutcomeRepaired,
		Note:    "buffed out",
	}, log[len(log)-2].Details)
	require.Equal(t, item.StatusChanged{
		Previous: item.StatusIssue,
		New:      item.StatusDelivered,
	}, log[len(log)-1].Details)
}

func TestStore_AddIssueUpdate(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())
	store.ReportIssue(created.ID, "missing parts")

	before, _ := store.Get(created.ID)
	updated, ok := store.AddIssueUpdate(created.ID, "seller contacted")
	require.True(t, ok)

	require.Equal(t, before.Status, updated.Status)
	require.Len(t, updated.ActivityLog, len(before.ActivityLog)+1)
	last := updated.ActivityLog[len(updated.ActivityLog)-1]
	require.Equal(t, item.EventIssueUpdateAdded, last.Type)
	require.Equal(t, item.Note{Note: "seller contacted"}, last.Details)
}

func TestStore_ToggleFlag_SelfInverse(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())
	require.False(t, created.Flagged)

	flagged, ok := store.ToggleFlag(created.ID)
	require.True(t, ok)
	require.True(t, flagged.Flagged)
	require.Equal(t, item.FlagToggled{Flagged: true},
		flagged.ActivityLog[len(flagged.ActivityLog)-1].Details)

	unflagged, ok := store.ToggleFlag(created.ID)
	require.True(t, ok)
	require.False(t, unflagged.Flagged)
	require.Equal(t, item.FlagToggled{Flagged: false},
		unflagged.ActivityLog[len(unflagged.ActivityLog)-1].Details)
}

func TestStore_Edit_ChangedFields(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())

	p := validPayload()
	p.Quantity = 7
	p.Seller = "Supplier XYZ"
	p.Flagged = true

	updated, ok := store.Edit(created.ID, p)
	require.True(t, ok)
	require.Equal(t, 7, updated.Quantity)
	require.Equal(t, "Supplier XYZ", updated.Seller)
	require.True(t, updated.Flagged)

	last := updated.ActivityLog[len(updated.ActivityLog)-1]
	require.Equal(t, item.EventEdited, last.Type)
	require.Equal(t, item.Edited{
		ChangedFields: []string{"quantity", "seller", "flagged"},
	}, last.Details)
}

func TestStore_Edit_NoChanges(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())

	updated, ok := store.Edit(created.ID, validPayload())
	require.True(t, ok)

	last := updated.ActivityLog[len(updated.ActivityLog)-1]
	require.Equal(t, item.EventEdited, last.Type)
	require.Equal(t, item.Edited{}, last.Details)
}

func TestStore_UnknownID_IsNoOp(t *testing.T) {
	store := newTestStore(t)
	store.Create(validPayload())

	_, ok := store.MarkDelivered("missing")
	require.False(t, ok)
	_, ok = store.Edit("missing", validPayload())
	require.False(t, ok)
	_, ok = store.ReportIssue("missing", "gone")
	require.False(t, ok)
	_, ok = store.ToggleFlag("missing")
	require.False(t, ok)

	require.Equal(t, 1, store.Len())
	items := store.List()
	require.Len(t, items[0].ActivityLog, 1, "no events may leak onto other items")
}

func TestStore_CopyOnWrite(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())

	snapshot, ok := store.Get(created.ID)
	require.True(t, ok)

	store.MarkDelivered(created.ID)
	store.ReportIssue(created.ID, "problem")

	require.Equal(t, item.StatusPending, snapshot.Status)
	require.Len(t, snapshot.ActivityLog, 1, "handed-out snapshots must not observe later mutations")
}

func TestStore_Timestamps_NonDecreasing(t *testing.T) {
	store := newTestStore(t)
	created := store.Create(validPayload())

	store.MarkDelivered(created.ID)
	store.ReportIssue(created.ID, "wrong colour")
	store.ResolveIssue(created.ID, item.OutcomeAccepted, "")

	final, _ := store.Get(created.ID)
	log := final.ActivityLog
	for i := 1; i < len(log); i++ {
		require.False(t, log[i].Timestamp.Before(log[i-1].Timestamp))
	}
}
