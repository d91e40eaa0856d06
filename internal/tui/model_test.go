package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seenimoa/secfilings/internal/lookup"
	"github.com/seenimoa/secfilings/internal/present"
	"github.com/seenimoa/secfilings/internal/ui"
	"github.com/seenimoa/secfilings/pkg/models"
)

type fakeSearcher struct {
	action ui.Action
	calls  int
	last   ui.State
}

func (f *fakeSearcher) Run(_ context.Context, s ui.State) ui.Action {
	f.calls++
	f.last = s
	return f.action
}

func appleResult() ui.SearchSucceeded {
	return ui.SearchSucceeded{
		Company: models.CompanyRecord{Identifier: "320193", DisplayName: "Apple Inc.", Ticker: "AAPL"},
		Results: []models.FilingRecord{{
			FormType:          "10-K",
			FilingDate:        time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			AccessionID:       "0000320193-24-000123",
			Description:       "aapl-20240928.htm",
			CompanyIdentifier: "0000320193",
		}},
	}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// runSearch executes the batched command and returns the search result message.
func runSearch(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected tea.BatchMsg")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(searchDoneMsg); ok {
			return msg
		}
	}
	t.Fatal("no search result in batch")
	return nil
}

func TestTypingUpdatesState(t *testing.T) {
	m := New(context.Background(), &fakeSearcher{})
	m = typeText(t, m, "apple")
	if got := m.State().Query; got != "apple" {
		t.Fatalf("Query: got %q", got)
	}

	m, _ = press(t, m, tea.KeyTab) // form
	m, _ = press(t, m, tea.KeyTab) // start
	m = typeText(t, m, "2024-01-01")
	m, _ = press(t, m, tea.KeyTab) // end
	m = typeText(t, m, "2024-12-31")

	s := m.State()
	if s.StartDate != "2024-01-01" || s.EndDate != "2024-12-31" {
		t.Errorf("dates: %q / %q", s.StartDate, s.EndDate)
	}
	if s.Query != "apple" {
		t.Errorf("Query changed while editing dates: %q", s.Query)
	}
}

func TestFormSelectorCycles(t *testing.T) {
	m := New(context.Background(), &fakeSearcher{})
	m, _ = press(t, m, tea.KeyTab)

	m, _ = press(t, m, tea.KeyRight)
	if got := m.State().FormType; got != "10-K" {
		t.Errorf("after right: %q", got)
	}
	m, _ = press(t, m, tea.KeyLeft)
	m, _ = press(t, m, tea.KeyLeft)
	last := present.FormOptions[len(present.FormOptions)-1].Value
	if got := m.State().FormType; got != last {
		t.Errorf("left from all should wrap to %q, got %q", last, got)
	}
}

func TestSubmitRunsSearchAsync(t *testing.T) {
	fs := &fakeSearcher{action: appleResult()}
	m := New(context.Background(), fs)
	m = typeText(t, m, "apple")

	m, cmd := press(t, m, tea.KeyEnter)
	if !m.State().Loading {
		t.Fatal("expected Loading after enter")
	}
	if fs.calls != 0 {
		t.Fatal("search must run in the command, not in Update")
	}

	msg := runSearch(t, cmd)
	if fs.calls != 1 || fs.last.Query != "apple" {
		t.Errorf("searcher: calls=%d last=%+v", fs.calls, fs.last)
	}

	next, _ := m.Update(msg)
	m = next.(Model)
	s := m.State()
	if s.Loading || s.Company == nil || len(s.Results) != 1 {
		t.Fatalf("unexpected state: %+v", s)
	}

	m.width = 200
	view := m.View()
	for _, want := range []string{"Apple Inc. (AAPL): 1 filings", "Annual Report", "Form 10-K", "Filed: November 1, 2024"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSubmitWhileLoadingIsIgnored(t *testing.T) {
	fs := &fakeSearcher{action: appleResult()}
	m := New(context.Background(), fs)
	m = typeText(t, m, "apple")

	m, first := press(t, m, tea.KeyEnter)
	if first == nil {
		t.Fatal("first submit should start a search")
	}
	m, second := press(t, m, tea.KeyEnter)
	if second != nil {
		t.Error("second submit while loading should be ignored")
	}
	if !strings.Contains(m.View(), "Searching") {
		t.Error("view should show the loading indicator")
	}
}

func TestSearchFailureShowsMessage(t *testing.T) {
	fs := &fakeSearcher{action: ui.SearchFailed{Err: lookup.ErrNotFound}}
	m := New(context.Background(), fs)
	m = typeText(t, m, "zzzznotarealcompany")

	m, cmd := press(t, m, tea.KeyEnter)
	next, _ := m.Update(runSearch(t, cmd))
	m = next.(Model)

	if m.State().Err != ui.MsgNotFound {
		t.Errorf("Err: %q", m.State().Err)
	}
	if len(m.State().Results) != 0 {
		t.Error("results should be empty")
	}
	if !strings.Contains(m.View(), "Company not found") {
		t.Error("view should show the error")
	}
}

func TestQuitKeys(t *testing.T) {
	m := New(context.Background(), &fakeSearcher{})
	_, cmd := press(t, m, tea.KeyEsc)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestRenderCard(t *testing.T) {
	card := present.NewCard(appleResult().Results[0])
	out := RenderCard(card, 200)
	for _, want := range []string{"Annual Report", "Form 10-K", "aapl-20240928", card.URL} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(RenderCards([]present.Card{card, card}, 200), "Annual Report"); n != 2 {
		t.Errorf("RenderCards: got %d cards", n)
	}
}
