package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/depview/depview/pkg/pkggraph"
)

func tuiTestModel() packageListModel {
	g := pkggraph.New()
	g.AddPackage(pkggraph.Package{Key: "alpha", Name: "alpha", Version: "1.0.0"})
	g.AddPackage(pkggraph.Package{Key: "beta", Name: "beta", Version: "2.0.0"})
	g.AddPackage(pkggraph.Package{Key: "gamma", Name: "gamma"})
	return newPackageListModel(g)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m packageListModel, keys ...string) packageListModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(packageListModel)
	}
	return m
}

func TestPackageListNavigation(t *testing.T) {
	m := tuiTestModel()

	m = press(t, m, "down", "down")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	m = press(t, m, "down")
	if m.cursor != 2 {
		t.Errorf("cursor moved past last entry: %d", m.cursor)
	}

	m = press(t, m, "up", "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestPackageListToggleAndConfirm(t *testing.T) {
	m := tuiTestModel()

	m = press(t, m, " ", "down", " ", "enter")

	keys := m.selectedKeys()
	if len(keys) != 2 || keys[0] != "alpha" || keys[1] != "beta" {
		t.Errorf("selectedKeys = %v, want [alpha beta]", keys)
	}
}

func TestPackageListEnterSelectsCursor(t *testing.T) {
	m := tuiTestModel()

	m = press(t, m, "down", "enter")

	keys := m.selectedKeys()
	if len(keys) != 1 || keys[0] != "beta" {
		t.Errorf("selectedKeys = %v, want [beta]", keys)
	}
}

func TestPackageListAbort(t *testing.T) {
	m := tuiTestModel()

	m = press(t, m, " ", "esc")

	if keys := m.selectedKeys(); keys != nil {
		t.Errorf("aborted selection should return nil, got %v", keys)
	}
}

func TestPackageListView(t *testing.T) {
	m := tuiTestModel()
	m = press(t, m, " ")

	view := m.View()
	if !strings.Contains(view, "alpha") {
		t.Error("view should list package names")
	}
	if !strings.Contains(view, "[x]") {
		t.Error("view should mark checked packages")
	}
	if !strings.Contains(view, "?") {
		t.Error("view should mark unknown versions")
	}
}
