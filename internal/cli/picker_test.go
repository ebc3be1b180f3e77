package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loadstone/loadstone/pkg/inventory"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up", "down", "enter", "esc":
		types := map[string]tea.KeyType{
			"up":    tea.KeyUp,
			"down":  tea.KeyDown,
			"enter": tea.KeyEnter,
			"esc":   tea.KeyEsc,
		}
		return tea.KeyMsg{Type: types[s]}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testEntries() []inventory.Entry {
	return []inventory.Entry{
		{Folder: "SkyUI", ID: "12604"},
		{Folder: "USSEP", ID: "266"},
		{Folder: "SKSE", ID: "30379"},
	}
}

func TestModListNavigateAndSelect(t *testing.T) {
	var model tea.Model = newModListModel(testEntries())

	model, _ = model.Update(keyMsg("down"))
	model, _ = model.Update(keyMsg("down"))
	model, _ = model.Update(keyMsg("up"))
	model, _ = model.Update(keyMsg("enter"))

	m := model.(modListModel)
	if m.selected == nil {
		t.Fatal("no entry selected")
	}
	if m.selected.Folder != "USSEP" {
		t.Errorf("selected %q, want USSEP", m.selected.Folder)
	}
}

func TestModListCursorStaysInBounds(t *testing.T) {
	var model tea.Model = newModListModel(testEntries())

	model, _ = model.Update(keyMsg("up"))
	if m := model.(modListModel); m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.cursor)
	}

	for i := 0; i < 10; i++ {
		model, _ = model.Update(keyMsg("down"))
	}
	if m := model.(modListModel); m.cursor != 2 {
		t.Errorf("cursor = %d after overrun, want 2", m.cursor)
	}
}

func TestModListQuitWithoutSelection(t *testing.T) {
	var model tea.Model = newModListModel(testEntries())

	model, cmd := model.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if m := model.(modListModel); m.selected != nil {
		t.Errorf("selected = %+v, want nil", m.selected)
	}
}

func TestModListViewMarksCursor(t *testing.T) {
	m := newModListModel(testEntries())
	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
}

func TestPickModEmptyInventory(t *testing.T) {
	if _, err := pickMod(nil); err == nil {
		t.Error("pickMod with no entries should fail")
	}
}

func TestPickableSkipsSeparatorsAndIDLessRows(t *testing.T) {
	entries := []inventory.Entry{
		{Folder: "--- Fixes ---", Separator: true},
		{Folder: "USSEP", ID: "266"},
		{Folder: "Manual Install"},
		{Folder: "SkyUI", ID: "12604"},
	}

	got := pickable(entries)
	if len(got) != 2 {
		t.Fatalf("pickable kept %d entries, want 2", len(got))
	}
	if got[0].Folder != "USSEP" || got[1].Folder != "SkyUI" {
		t.Errorf("pickable kept %q and %q, want USSEP and SkyUI", got[0].Folder, got[1].Folder)
	}
}

func TestPickModOnlyUnpickableRows(t *testing.T) {
	entries := []inventory.Entry{
		{Folder: "--- Fixes ---", Separator: true},
		{Folder: "Manual Install"},
	}
	if _, err := pickMod(entries); err == nil {
		t.Error("pickMod with only separators and id-less rows should fail")
	}
}
