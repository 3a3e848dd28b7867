package sheetdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"google.golang.org/api/sheets/v4"
)

// fakeAPI is an in-memory stand-in for the backing document service. It
// models each tab as a grid that includes the header row, so row and range
// arithmetic behaves like the real service: data position 1 is grid row 2.
// Tests inject failures per operation and tab to exercise the partial-state
// paths.
type fakeAPI struct {
	mu     sync.Mutex
	tabs   map[string]*fakeTab
	order  []string
	nextID int64
	errs   map[string]error
	calls  []string
}

type fakeTab struct {
	id   int64
	grid [][]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		tabs: make(map[string]*fakeTab),
		errs: make(map[string]error),
	}
}

// failOn makes the next matching call fail. op is one of get, update,
// append, batchUpdate, metadata, create; tab is the tab name or "*".
func (f *fakeAPI) failOn(op, tab string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op+" "+tab] = err
}

func (f *fakeAPI) checkErr(op, tab string) error {
	if err, ok := f.errs[op+" "+tab]; ok {
		return err
	}
	if err, ok := f.errs[op+" *"]; ok {
		return err
	}
	return nil
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) getValues(_ context.Context, rng string) ([][]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tab, start, end, err := f.parseRange(rng)
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, "get "+tab.name)
	if err := f.checkErr("get", tab.name); err != nil {
		return nil, err
	}

	var out [][]any
	lastRow := end.row
	if lastRow == 0 || lastRow > len(tab.grid) {
		lastRow = len(tab.grid)
	}
	for r := start.row; r <= lastRow; r++ {
		row := tab.grid[r-1]
		var cells []any
		for c := start.col; c <= end.col && c <= len(row); c++ {
			cells = append(cells, row[c-1])
		}
		out = append(out, cells)
	}
	// The real service trims trailing empty rows from the response.
	for len(out) > 0 && rowIsEmpty(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *fakeAPI) updateValues(_ context.Context, rng string, values [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tab, start, _, err := f.parseRange(rng)
	if err != nil {
		return err
	}
	f.calls = append(f.calls, "update "+tab.name)
	if err := f.checkErr("update", tab.name); err != nil {
		return err
	}

	for i, row := range values {
		r := start.row + i
		for len(tab.tab.grid) < r {
			tab.tab.grid = append(tab.tab.grid, nil)
		}
		for j, v := range row {
			c := start.col + j
			for len(tab.tab.grid[r-1]) < c {
				tab.tab.grid[r-1] = append(tab.tab.grid[r-1], "")
			}
			tab.tab.grid[r-1][c-1] = v
		}
	}
	return nil
}

func (f *fakeAPI) appendValues(_ context.Context, rng string, values [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tab, _, _, err := f.parseRange(rng)
	if err != nil {
		return err
	}
	f.calls = append(f.calls, "append "+tab.name)
	if err := f.checkErr("append", tab.name); err != nil {
		return err
	}

	tab.tab.grid = append(tab.tab.grid, values...)
	return nil
}

func (f *fakeAPI) batchUpdate(_ context.Context, requests []*sheets.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "batchUpdate")
	if err := f.checkErr("batchUpdate", "*"); err != nil {
		return err
	}

	// All-or-nothing, like the real endpoint: validate first, then apply.
	type rowDelete struct {
		tab        *namedTab
		start, end int
	}
	var deletes []rowDelete
	for _, req := range requests {
		switch {
		case req.DeleteDimension != nil:
			r := req.DeleteDimension.Range
			tab := f.tabByID(r.SheetId)
			if tab == nil {
				return fmt.Errorf("fake: unknown sheet id %d", r.SheetId)
			}
			if r.Dimension != "ROWS" {
				return fmt.Errorf("fake: unsupported dimension %q", r.Dimension)
			}
			if int(r.EndIndex) > len(tab.grid) {
				return fmt.Errorf("fake: delete range [%d,%d) beyond %d rows", r.StartIndex, r.EndIndex, len(tab.grid))
			}
			deletes = append(deletes, rowDelete{tab: tab, start: int(r.StartIndex), end: int(r.EndIndex)})
		case req.AddProtectedRange != nil, req.RepeatCell != nil:
			// Formatting and protection are accepted but not modeled.
		default:
			return fmt.Errorf("fake: unsupported batch request")
		}
	}
	for _, d := range deletes {
		grid := d.tab.grid
		d.tab.tab.grid = append(grid[:d.start], grid[d.end:]...)
	}
	return nil
}

func (f *fakeAPI) sheetProperties(_ context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "metadata")
	if err := f.checkErr("metadata", "*"); err != nil {
		return nil, err
	}

	props := make(map[string]int64, len(f.tabs))
	for name, tab := range f.tabs {
		props[name] = tab.id
	}
	return props, nil
}

func (f *fakeAPI) createSpreadsheet(_ context.Context, doc *sheets.Spreadsheet) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "create")
	if err := f.checkErr("create", "*"); err != nil {
		return "", err
	}

	for _, s := range doc.Sheets {
		if s.Properties == nil {
			continue
		}
		f.tabs[s.Properties.Title] = &fakeTab{id: f.nextID}
		f.order = append(f.order, s.Properties.Title)
		f.nextID++
	}
	return "fake-spreadsheet", nil
}

// namedTab pairs a tab with its name for range operations.
type namedTab struct {
	tab  *fakeTab
	name string
	grid [][]any
}

func (f *fakeAPI) tabByID(id int64) *namedTab {
	for name, tab := range f.tabs {
		if tab.id == id {
			return &namedTab{tab: tab, name: name, grid: tab.grid}
		}
	}
	return nil
}

type gridPos struct {
	col int // 1-based
	row int // 1-based; 0 means unbounded
}

// parseRange handles the A1-notation subset the adapter emits:
// "Tab!A2:D", "Tab!A3:D3", "Tab!B4:B4".
func (f *fakeAPI) parseRange(rng string) (*namedTab, gridPos, gridPos, error) {
	name, cells, ok := strings.Cut(rng, "!")
	if !ok {
		return nil, gridPos{}, gridPos{}, fmt.Errorf("fake: range %q missing tab", rng)
	}
	tab, ok := f.tabs[name]
	if !ok {
		return nil, gridPos{}, gridPos{}, fmt.Errorf("fake: unknown tab %q", name)
	}

	startRef, endRef, ok := strings.Cut(cells, ":")
	if !ok {
		endRef = startRef
	}
	start, err := parseCellRef(startRef)
	if err != nil {
		return nil, gridPos{}, gridPos{}, err
	}
	end, err := parseCellRef(endRef)
	if err != nil {
		return nil, gridPos{}, gridPos{}, err
	}
	return &namedTab{tab: tab, name: name, grid: tab.grid}, start, end, nil
}

func parseCellRef(ref string) (gridPos, error) {
	if ref == "" {
		return gridPos{}, fmt.Errorf("fake: empty cell reference")
	}
	col := 0
	i := 0
	for ; i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z'; i++ {
		col = col*26 + int(ref[i]-'A') + 1
	}
	if col == 0 {
		return gridPos{}, fmt.Errorf("fake: bad cell reference %q", ref)
	}
	if i == len(ref) {
		return gridPos{col: col}, nil
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil {
		return gridPos{}, fmt.Errorf("fake: bad cell reference %q", ref)
	}
	return gridPos{col: col, row: row}, nil
}

func rowIsEmpty(row []any) bool {
	for _, v := range row {
		if fmt.Sprint(v) != "" {
			return false
		}
	}
	return true
}
