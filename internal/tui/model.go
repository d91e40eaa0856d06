// Package tui is the terminal front-end for the filing search.
//
// It uses bubbletea (The Elm Architecture): key events become ui.Actions,
// ui.Update produces the next search state, and View renders it. Searches
// run as an asynchronous tea.Cmd so the spinner keeps moving.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seenimoa/secfilings/internal/present"
	"github.com/seenimoa/secfilings/internal/ui"
)

// Searcher runs one search. *ui.Engine satisfies it.
type Searcher interface {
	Run(ctx context.Context, s ui.State) ui.Action
}

// field identifies the focused form control.
type field int

const (
	fieldCompany field = iota
	fieldForm
	fieldStart
	fieldEnd
	fieldCount
)

// searchDoneMsg carries the completing action of a search.
type searchDoneMsg struct {
	action ui.Action
}

// Model is the bubbletea model for the search screen.
type Model struct {
	ctx      context.Context
	searcher Searcher

	state   ui.State
	focus   field
	company textinput.Model
	start   textinput.Model
	end     textinput.Model
	spinner spinner.Model
	width   int
}

// New creates the search screen.
func New(ctx context.Context, searcher Searcher) Model {
	company := textinput.New()
	company.Placeholder = "Company name or ticker"
	company.CharLimit = 120
	company.Focus()

	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD"
	start.CharLimit = 10

	end := textinput.New()
	end.Placeholder = "YYYY-MM-DD"
	end.CharLimit = 10

	return Model{
		ctx:      ctx,
		searcher: searcher,
		state:    ui.NewState(),
		company:  company,
		start:    start,
		end:      end,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:    80,
	}
}

// State returns the current search state.
func (m Model) State() ui.State { return m.state }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case searchDoneMsg:
		m.state = ui.Update(m.state, msg.action)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		return m.submit()
	case "tab", "down":
		return m.setFocus((m.focus + 1) % fieldCount), nil
	case "shift+tab", "up":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
	case "left", "right":
		if m.focus == fieldForm {
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			m.state = ui.Update(m.state, ui.SetFormType{Value: cycleForm(m.state.FormType, step)})
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldCompany:
		m.company, cmd = m.company.Update(msg)
		m.state = ui.Update(m.state, ui.SetQuery{Value: m.company.Value()})
	case fieldStart:
		m.start, cmd = m.start.Update(msg)
		m.state = ui.Update(m.state, ui.SetStartDate{Value: m.start.Value()})
	case fieldEnd:
		m.end, cmd = m.end.Update(msg)
		m.state = ui.Update(m.state, ui.SetEndDate{Value: m.end.Value()})
	}
	return m, cmd
}

// submit starts a search unless one is already running.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.state.CanSubmit() {
		return m, nil
	}
	m.state = ui.Update(m.state, ui.SearchStarted{})

	ctx, searcher, snapshot := m.ctx, m.searcher, m.state
	search := func() tea.Msg {
		return searchDoneMsg{action: searcher.Run(ctx, snapshot)}
	}
	return m, tea.Batch(search, m.spinner.Tick)
}

func (m Model) setFocus(f field) Model {
	m.focus = f
	m.company.Blur()
	m.start.Blur()
	m.end.Blur()
	switch f {
	case fieldCompany:
		m.company.Focus()
	case fieldStart:
		m.start.Focus()
	case fieldEnd:
		m.end.Focus()
	}
	return m
}

// cycleForm moves step positions through the selector options, wrapping.
func cycleForm(current string, step int) string {
	n := len(present.FormOptions)
	i := (present.FormOptionIndex(current) + step + n) % n
	return present.FormOptions[i].Value
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SEC Company Filings Search"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Enter company name or ticker symbol and optional date range"))
	b.WriteString("\n\n")

	b.WriteString(m.row(fieldCompany, "Company", m.company.View()))
	b.WriteString(m.row(fieldForm, "Form type", "‹ "+formOptionLabel(m.state.FormType)+" ›"))
	b.WriteString(m.row(fieldStart, "Start date", m.start.View()))
	b.WriteString(m.row(fieldEnd, "End date", m.end.View()))
	b.WriteString("\n")

	switch {
	case m.state.Loading:
		b.WriteString(m.spinner.View() + " Searching…\n")
	case m.state.Err != "":
		b.WriteString(errorStyle.Render(m.state.Err) + "\n")
	case m.state.Company != nil:
		c := m.state.Company
		b.WriteString(hintStyle.Render(fmt.Sprintf("%s (%s): %d filings", c.DisplayName, c.Ticker, len(m.state.Results))))
		b.WriteString("\n")
		if cards := m.state.Cards(); len(cards) > 0 {
			b.WriteString(RenderCards(cards, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("tab: next field • ←/→: form type • enter: search • esc: quit"))
	return b.String()
}

func (m Model) row(f field, label, value string) string {
	marker := "  "
	style := labelStyle
	if m.focus == f {
		marker = "› "
		style = focusedLabelStyle
	}
	return marker + style.Render(fmt.Sprintf("%-11s", label)) + " " + value + "\n"
}

func formOptionLabel(value string) string {
	return present.FormOptions[present.FormOptionIndex(value)].Label
}
