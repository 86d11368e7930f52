// Package tui is the interactive front end: it forwards gestures to a
// recordlist.List and renders the State each transition returns.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/records/internal/logging"
	"github.com/Makepad-fr/records/internal/model"
	"github.com/Makepad-fr/records/internal/recordlist"
	"github.com/Makepad-fr/records/internal/ui"
)

// Model implements tea.Model on top of a recordlist.List.
type Model struct {
	ctx   context.Context
	list  *recordlist.List
	state recordlist.State

	cursor      int
	form        textinput.Model // add form
	formFocused bool
	edit        textinput.Model // inline edit input

	keys keyMap
	help help.Model

	width, height int
	err           error
	log           *zap.Logger
}

// New builds the model. width may be 0 until the first WindowSizeMsg.
func New(ctx context.Context, list *recordlist.List, width int) Model {
	form := textinput.New()
	form.Prompt = "> "
	form.Placeholder = "New record..."
	form.CharLimit = 0

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 0

	return Model{
		ctx:   ctx,
		list:  list,
		state: list.State(),
		form:  form,
		edit:  edit,
		keys:  defaultKeys(),
		help:  help.New(),
		width: width,
		log:   logging.Named("tui"),
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, list *recordlist.List) error {
	m := New(ctx, list, ui.Width())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// State returns the last state rendered.
func (m Model) State() recordlist.State { return m.state }

// Cursor returns the highlighted row.
func (m Model) Cursor() int { return m.cursor }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state.Mode == recordlist.Editing {
			return m.updateEditing(msg)
		}
		if m.formFocused {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	// Cursor blink and friends.
	var cmd tea.Cmd
	if m.state.Mode == recordlist.Editing {
		m.edit, cmd = m.edit.Update(msg)
	} else if m.formFocused {
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m Model) apply(st recordlist.State, err error) Model {
	m.state = st
	m.err = err
	if err != nil {
		m.log.Error("operation failed", zap.Error(err))
	}
	rows := len(m.state.Rows())
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) current() (model.EditRecord, bool) {
	rows := m.state.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return model.EditRecord{}, false
	}
	return rows[m.cursor], true
}

func (m Model) move(delta int) Model {
	n := len(m.state.Rows())
	m.cursor += delta
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		return m.move(-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.move(1), nil
	case key.Matches(msg, m.keys.Add):
		m.formFocused = true
		cmd := m.form.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		if rec, ok := m.current(); ok {
			return m.apply(m.list.ToggleComplete(m.ctx, rec.ID)), nil
		}
	case key.Matches(msg, m.keys.Delete):
		if rec, ok := m.current(); ok {
			return m.apply(m.list.Delete(m.ctx, rec.ID)), nil
		}
	case key.Matches(msg, m.keys.Edit):
		if rec, ok := m.current(); ok {
			m = m.apply(m.list.BeginEdit(rec.ID), nil)
			if m.state.Mode == recordlist.Editing {
				// Entering edit mode focuses the edit input.
				m.edit.SetValue(rec.Text)
				m.edit.CursorEnd()
				cmd := m.edit.Focus()
				return m, cmd
			}
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		before := len(m.state.Records)
		m = m.apply(m.list.Add(m.ctx, m.form.Value()))
		if len(m.state.Records) > before {
			m.form.SetValue("")
			m.cursor = len(m.state.Records) - 1
		}
		return m, nil
	case key.Matches(msg, m.keys.Blur):
		m.formFocused = false
		m.form.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.state.EditingID()
	switch {
	case key.Matches(msg, m.keys.Save):
		m.edit.Blur()
		return m.apply(m.list.SaveEdit(m.ctx, id)), nil
	case key.Matches(msg, m.keys.Cancel):
		m.edit.Blur()
		return m.apply(m.list.CancelEdit(), nil), nil
	case key.Matches(msg, m.keys.EditToggle):
		if rec, ok := m.current(); ok && !rec.IsEditing {
			return m.apply(m.list.ToggleComplete(m.ctx, rec.ID)), nil
		}
		return m, nil
	case msg.Type == tea.KeyUp:
		return m.move(-1), nil
	case msg.Type == tea.KeyDown:
		return m.move(1), nil
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.state = m.list.UpdateEditText(id, m.edit.Value())
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	rows := m.state.Rows()
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render(emptyMessage))
		b.WriteString("\n")
	}
	for i, r := range rows {
		b.WriteString(m.renderRow(i, r))
		b.WriteString("\n")
	}

	if m.state.Mode == recordlist.Normal {
		b.WriteString("\n")
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("✖ " + m.err.Error()))
		b.WriteString("\n")
	}

	m.keys.editing = m.state.Mode == recordlist.Editing
	m.keys.formFocused = m.formFocused
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return frameStyle.Render(b.String())
}

func (m Model) header() string {
	done, pending := m.list.Stats()
	title := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Records"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(m.state.Records),
	)
	if m.state.Mode == recordlist.Editing {
		title += "  " + accentStyle.Render("[editing]")
	}
	return title + "\n" + mutedStyle.Render(ui.ProgressBar(done, done+pending, 28))
}

func (m Model) renderRow(i int, r model.EditRecord) string {
	prefix := "  "
	if i == m.cursor && !m.formFocused {
		prefix = selectedStyle.Render("> ")
	}
	if r.IsEditing {
		return prefix + m.edit.View()
	}
	box := mutedStyle.Render(boxUnchecked)
	text := r.Text
	if w := m.textWidth(); w > 0 {
		text = ui.Truncate(text, w)
	}
	if r.IsComplete {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	return prefix + box + " " + text
}

func (m Model) textWidth() int {
	if m.width <= 0 {
		return 0
	}
	// frame (4) + prefix (2) + box and space (2)
	return m.width - 8
}

func (m Model) renderForm() string {
	return formStyle.Render("Add record\n" + m.form.View())
}
