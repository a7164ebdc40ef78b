// Package tui implements the interactive terminal front-end: the table
// view with configurable columns, the filter tabs, search, and the dialog
// flows that drive the item store.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/telffer/stockroom/internal/columns"
	"github.com/telffer/stockroom/internal/domain/item"
)

// App wires the item store, column preferences and terminal I/O together.
type App struct {
	store   *item.Store
	prefs   *columns.Prefs
	visible []string
	filter  item.Filter
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an App reading commands from in and writing to out.
func New(store *item.Store, prefs *columns.Prefs, in io.Reader, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		store:  store,
		prefs:  prefs,
		filter: item.Filter{Tab: item.TabPending},
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// Run loads the column preference and processes commands until input ends,
// the quit command is given, or the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.visible = a.prefs.Load(ctx)

	fmt.Fprintln(a.out, "stockroom - incoming stock tracker (type 'help' for commands)")
	a.renderList()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(a.out, "> ")
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		if quit := a.dispatch(ctx, line); quit {
			return nil
		}
	}
}

func (a *App) dispatch(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "help", "h":
		a.printHelp()
	case "quit", "q", "exit":
		return true
	case "list", "ls":
		a.renderList()
	case "tab":
		a.switchTab(rest)
	case "search":
		a.filter.Search = rest
		a.renderList()
	case "flagged":
		a.filter.FlaggedOnly = !a.filter.FlaggedOnly
		a.renderList()
	case "add":
		a.addItem()
	case "view":
		if it, ok := a.itemAt(rest); ok {
			a.showDetails(it)
		}
	case "actions":
		if it, ok := a.itemAt(rest); ok {
			a.showActions(it)
		}
	case "do":
		a.runAction(rest)
	case "columns", "cols":
		a.columnSettings(ctx, rest)
	default:
		fmt.Fprintf(a.out, "unknown command %q (try 'help')\n", cmd)
	}
	return false
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `commands:
  list                      show the item table
  tab <name>                switch filter tab (All, Pending Delivery, Delivered, Issue, Late, Archived)
  search <text>             filter by delivery or product name (empty clears)
  flagged                   toggle flagged-only filtering
  add                       add a new item
  view <row>                show item details and activity log
  actions <row>             list the actions available for an item
  do <row> [action#]        run an action on an item
  columns                   show the column catalog and current order
  columns select <id,...>   choose visible columns
  columns move <id> <id>    move a column to another column's position
  columns reset             restore the default columns
  quit
`)
}

// current returns the items in the active view, newest first.
func (a *App) current() []item.StockItem {
	return a.filter.Apply(a.store.List(), a.now())
}

func (a *App) renderList() {
	items := a.current()
	fmt.Fprintf(a.out, "\n[%s] search=%q flagged-only=%v\n", a.filter.Tab, a.filter.Search, a.filter.FlaggedOnly)
	RenderTable(a.out, items, columns.Resolve(a.visible), a.now())
}

func (a *App) switchTab(name string) {
	for _, tab := range item.Tabs {
		if strings.EqualFold(string(tab), name) {
			a.filter.Tab = tab
			a.renderList()
			return
		}
	}
	fmt.Fprintf(a.out, "unknown tab %q (one of: %v)\n", name, item.Tabs)
}

// itemAt resolves a row number in the current view to an item.
func (a *App) itemAt(arg string) (item.StockItem, bool) {
	items := a.current()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		fmt.Fprintf(a.out, "no row %q in the current view\n", arg)
		return item.StockItem{}, false
	}
	return items[n-1], true
}

func (a *App) showDetails(it item.StockItem) {
	fmt.Fprintf(a.out, "\n%s - %s\n", it.ProductName, it.DeliveryName)
	fmt.Fprintf(a.out, "  status:            %s\n", cellValue(it, "status", a.now()))
	fmt.Fprintf(a.out, "  purchase status:   %s\n", it.PurchaseStatus)
	fmt.Fprintf(a.out, "  quantity:          %d\n", it.Quantity)
	fmt.Fprintf(a.out, "  price per item:    %.2f\n", it.PricePerItem)
	fmt.Fprintf(a.out, "  order date:        %s\n", it.OrderDate.Format("2006-01-02"))
	fmt.Fprintf(a.out, "  order number:      %s\n", dash(it.OrderNumber))
	fmt.Fprintf(a.out, "  seller:            %s\n", dash(it.Seller))
	fmt.Fprintf(a.out, "  vat registered:    %s\n", it.VATRegistered)
	fmt.Fprintf(a.out, "  destination:       %s\n", dash(it.Destination))
	fmt.Fprintf(a.out, "  asin/sku:          %s\n", dash(it.ASINSKU))
	fmt.Fprintf(a.out, "  acquisition notes: %s\n", dash(it.AcquisitionNotes))
	fmt.Fprintf(a.out, "  processor notes:   %s\n", dash(it.ProcessorNotes))
	fmt.Fprintf(a.out, "  issue description: %s\n", dash(it.IssueDescription))
	if it.DateDelivered != nil {
		fmt.Fprintf(a.out, "  date delivered:    %s\n", it.DateDelivered.Format(time.RFC3339))
	}
	fmt.Fprintf(a.out, "  flagged:           %v\n", it.Flagged)

	fmt.Fprintln(a.out, "  activity:")
	for _, ev := range it.ActivityLog {
		fmt.Fprintf(a.out, "    %s\n", FormatEvent(ev))
	}
}

func (a *App) showActions(it item.StockItem) {
	for i, action := range item.AvailableActions(it.Status, it.Flagged) {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, action)
	}
}

// runAction handles "do <row> [action#]", prompting for the action when the
// number is omitted.
func (a *App) runAction(rest string) {
	rowArg, actionArg, _ := strings.Cut(rest, " ")
	it, ok := a.itemAt(rowArg)
	if !ok {
		return
	}

	actions := item.AvailableActions(it.Status, it.Flagged)
	actionArg = strings.TrimSpace(actionArg)
	if actionArg == "" {
		a.showActions(it)
		fmt.Fprint(a.out, "action number: ")
		if !a.in.Scan() {
			return
		}
		actionArg = strings.TrimSpace(a.in.Text())
	}

	n, err := strconv.Atoi(actionArg)
	if err != nil || n < 1 || n > len(actions) {
		fmt.Fprintf(a.out, "no action %q for this item\n", actionArg)
		return
	}
	a.perform(it, actions[n-1])
}

func (a *App) perform(it item.StockItem, action string) {
	switch action {
	case item.ActionViewDetails:
		a.showDetails(it)
	case item.ActionFlag, item.ActionUnflag:
		a.store.ToggleFlag(it.ID)
		a.renderList()
	case item.ActionMarkDelivered:
		a.store.MarkDelivered(it.ID)
		a.renderList()
	case item.ActionArchive:
		a.store.Archive(it.ID)
		a.renderList()
	case item.ActionReportIssue:
		if desc, ok := a.promptText("issue description"); ok {
			a.store.ReportIssue(it.ID, desc)
			a.renderList()
		}
	case item.ActionAddUpdate:
		if note, ok := a.promptText("update note"); ok {
			a.store.AddIssueUpdate(it.ID, note)
			fmt.Fprintln(a.out, "update recorded")
		}
	case item.ActionResolveIssue:
		a.resolveIssue(it)
	case item.ActionEdit:
		a.editItem(it)
	default:
		fmt.Fprintf(a.out, "unhandled action %q\n", action)
	}
}

// promptText reads one line of required text. Whitespace-only input is
// rejected here, before it can reach the store.
func (a *App) promptText(label string) (string, bool) {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.in.Scan() {
		return "", false
	}
	text := strings.TrimSpace(a.in.Text())
	if text == "" {
		fmt.Fprintln(a.out, "text is required, cancelled")
		return "", false
	}
	return text, true
}

func (a *App) resolveIssue(it item.StockItem) {
	if it.IssueDescription != "" {
		fmt.Fprintf(a.out, "initial issue: %s\n", it.IssueDescription)
	}
	for i, outcome := range item.ResolutionOutcomes {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, outcome)
	}
	fmt.Fprint(a.out, "outcome number: ")
	if !a.in.Scan() {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(a.in.Text()))
	if err != nil || n < 1 || n > len(item.ResolutionOutcomes) {
		fmt.Fprintln(a.out, "a resolution outcome is required, cancelled")
		return
	}

	fmt.Fprint(a.out, "notes (optional): ")
	if !a.in.Scan() {
		return
	}
	note := strings.TrimSpace(a.in.Text())

	a.store.ResolveIssue(it.ID, item.ResolutionOutcomes[n-1], note)
	a.renderList()
}

func (a *App) addItem() {
	p, ok := a.readForm(item.Payload{
		PurchaseStatus: item.PurchasePurchased,
		OrderDate:      a.now(),
	})
	if !ok {
		return
	}
	created := a.store.Create(p)
	fmt.Fprintf(a.out, "added %s\n", created.ProductName)
	a.renderList()
}

func (a *App) editItem(it item.StockItem) {
	p, ok := a.readForm(item.Payload{
		PurchaseStatus:   it.PurchaseStatus,
		DeliveryName:     it.DeliveryName,
		ProductName:      it.ProductName,
		Quantity:         it.Quantity,
		PricePerItem:     it.PricePerItem,
		OrderNumber:      it.OrderNumber,
		OrderDate:        it.OrderDate,
		Seller:           it.Seller,
		VATRegistered:    it.VATRegistered,
		Destination:      it.Destination,
		ASINSKU:          it.ASINSKU,
		AcquisitionNotes: it.AcquisitionNotes,
		Flagged:          it.Flagged,
	})
	if !ok {
		return
	}
	a.store.Edit(it.ID, p)
	a.renderList()
}

// readForm walks the add/edit form field by field, re-running until the
// payload validates. Pressing enter keeps the shown value.
func (a *App) readForm(p item.Payload) (item.Payload, bool) {
	for {
		var ok bool
		if p, ok = a.readFormOnce(p); !ok {
			return item.Payload{}, false
		}

		errs := item.Validate(p)
		if len(errs) == 0 {
			return p, true
		}
		for _, msg := range errs {
			fmt.Fprintf(a.out, "  ! %s\n", msg)
		}
	}
}

func (a *App) readFormOnce(p item.Payload) (item.Payload, bool) {
	status, ok := a.promptField("purchase status (Purchased/Ordered/Return Expected)", string(p.PurchaseStatus))
	if !ok {
		return p, false
	}
	p.PurchaseStatus = item.PurchaseStatus(status)

	if p.DeliveryName, ok = a.promptField("delivery name", p.DeliveryName); !ok {
		return p, false
	}
	if p.ProductName, ok = a.promptField("product name", p.ProductName); !ok {
		return p, false
	}

	qty, ok := a.promptField("quantity", nonZero(strconv.Itoa(p.Quantity)))
	if !ok {
		return p, false
	}
	p.Quantity, _ = strconv.Atoi(qty)

	price, ok := a.promptField("price per item", strconv.FormatFloat(p.PricePerItem, 'f', -1, 64))
	if !ok {
		return p, false
	}
	p.PricePerItem, _ = strconv.ParseFloat(price, 64)

	if p.OrderNumber, ok = a.promptField("order number (optional)", p.OrderNumber); !ok {
		return p, false
	}

	date, ok := a.promptField("order date (YYYY-MM-DD)", p.OrderDate.Format("2006-01-02"))
	if !ok {
		return p, false
	}
	p.OrderDate, _ = time.Parse("2006-01-02", date)

	if p.Seller, ok = a.promptField("seller (optional)", p.Seller); !ok {
		return p, false
	}

	vat, ok := a.promptField("vat registered (Yes/No/Unknown)", string(p.VATRegistered))
	if !ok {
		return p, false
	}
	p.VATRegistered = item.VATStatus(vat)

	if p.Destination, ok = a.promptField("destination (optional)", p.Destination); !ok {
		return p, false
	}
	if p.ASINSKU, ok = a.promptField("asin/sku (optional)", p.ASINSKU); !ok {
		return p, false
	}
	if p.AcquisitionNotes, ok = a.promptField("acquisition notes (optional)", p.AcquisitionNotes); !ok {
		return p, false
	}

	flagged, ok := a.promptField("flag for follow-up (y/n)", boolField(p.Flagged))
	if !ok {
		return p, false
	}
	p.Flagged = strings.EqualFold(flagged, "y") || strings.EqualFold(flagged, "yes")

	return p, true
}

// promptField reads one form field; empty input keeps the current value.
func (a *App) promptField(label, current string) (string, bool) {
	if current != "" {
		fmt.Fprintf(a.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(a.out, "%s: ", label)
	}
	if !a.in.Scan() {
		return "", false
	}
	text := strings.TrimSpace(a.in.Text())
	if text == "" {
		return current, true
	}
	return text, true
}

func nonZero(s string) string {
	if s == "0" {
		return ""
	}
	return s
}

func boolField(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func (a *App) columnSettings(ctx context.Context, rest string) {
	sub, args, _ := strings.Cut(rest, " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(sub) {
	case "":
		a.showColumns()
	case "select":
		var ids []string
		for _, id := range strings.Split(args, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := columns.Lookup(id); !ok {
				fmt.Fprintf(a.out, "unknown column %q\n", id)
				return
			}
			ids = append(ids, id)
		}
		a.setColumns(ctx, columns.ApplySelection(a.visible, ids))
	case "move":
		active, over, _ := strings.Cut(args, " ")
		a.setColumns(ctx, columns.Reorder(a.visible, strings.TrimSpace(active), strings.TrimSpace(over)))
	case "reset":
		a.setColumns(ctx, columns.DefaultVisible)
	default:
		fmt.Fprintf(a.out, "unknown columns subcommand %q\n", sub)
	}
}

func (a *App) showColumns() {
	visible := make(map[string]bool, len(a.visible))
	for _, id := range a.visible {
		visible[id] = true
	}
	fmt.Fprintln(a.out, "columns (x = visible):")
	for _, col := range columns.All {
		mark := " "
		if visible[col.ID] {
			mark = "x"
		}
		fmt.Fprintf(a.out, "  [%s] %-18s %s\n", mark, col.ID, col.Label)
	}
	fmt.Fprintf(a.out, "order: %s\n", strings.Join(a.visible, ", "))
}

// setColumns applies and persists a new visible-column order. A failed
// write keeps the new order for this session.
func (a *App) setColumns(ctx context.Context, ids []string) {
	a.visible = ids
	if err := a.prefs.Save(ctx, ids); err != nil {
		a.logger.Warn("saving column settings", "error", err)
	}
	a.renderList()
}
