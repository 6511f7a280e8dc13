package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ArthurCoding/agenda/internal/contact"
	"github.com/ArthurCoding/agenda/internal/session"
)

// Field indexes of the form inputs.
const (
	fieldName = iota
	fieldPhone
	fieldEmail
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Phone", "Email"}

// Button labels.
const (
	LabelAdd  = "Add contact"
	LabelSave = "Save changes"
)

// Model is the Bubbletea model for the contact form.
type Model struct {
	ctx  context.Context
	ctrl *session.Controller

	inputs   [fieldCount]textinput.Model
	focus    int
	contacts []contact.Contact
	cursor   int

	confirming bool // waiting for y/n on a delete
	status     string
	statusErr  bool
	quitting   bool
}

// New creates the form and loads the contact list.
func New(ctx context.Context, ctrl *session.Controller) Model {
	m := Model{ctx: ctx, ctrl: ctrl}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 100
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldName].Focus()

	contacts, err := ctrl.Refresh(ctx)
	if err != nil {
		m.setError("Could not load contacts", err)
	}
	m.setContacts(contacts)

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	if keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirming {
		return m.handleConfirmKeypress(keyMsg)
	}

	switch keyMsg.String() {
	case "tab", "shift+tab":
		step := 1
		if keyMsg.String() == "shift+tab" {
			step = fieldCount - 1
		}
		cmd := m.setFocus((m.focus + step) % fieldCount)
		return m, cmd

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.contacts)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.submit()

	case "ctrl+e":
		return m.beginEdit()

	case "esc":
		if m.ctrl.State().Mode == session.Editing {
			m.ctrl.CancelEdit()
			m.clearFields()
			m.setInfo("Edit cancelled.")
		}
		return m, nil

	case "ctrl+d":
		selected, ok := m.selected()
		if !ok {
			m.setError("No contact selected", nil)
			return m, nil
		}
		m.confirming = true
		m.setInfo(fmt.Sprintf("Delete %s (%s)? (y/n)", selected.Name, selected.Phone))
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleConfirmKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		return m.deleteSelected()
	case "n", "N", "esc":
		m.confirming = false
		m.setInfo("Delete cancelled.")
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	verb := "added"
	if m.ctrl.State().Mode == session.Editing {
		verb = "updated"
	}

	contacts, err := m.ctrl.Submit(m.ctx, m.fields())
	switch {
	case err == nil:
		m.setContacts(contacts)
		m.clearFields()
		m.setInfo(fmt.Sprintf("Contact %s.", verb))
	case errors.Is(err, contact.ErrNotFound):
		m.setContacts(contacts)
		m.setError("Contact no longer exists", err)
	default:
		m.setError("Could not save contact", err)
	}
	return m, nil
}

func (m Model) beginEdit() (tea.Model, tea.Cmd) {
	selected, ok := m.selected()
	if !ok {
		m.setError("No contact selected", nil)
		return m, nil
	}

	current, err := m.ctrl.BeginEdit(m.ctx, selected.ID)
	if err != nil {
		m.setError("Could not edit contact", err)
		m.refresh()
		return m, nil
	}

	m.inputs[fieldName].SetValue(current.Name)
	m.inputs[fieldPhone].SetValue(current.Phone)
	m.inputs[fieldEmail].SetValue(current.Email)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
	m.setInfo(fmt.Sprintf("Editing %s.", current.Name))
	cmd := m.setFocus(fieldName)
	return m, cmd
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.selected()
	if !ok {
		return m, nil
	}
	wasEditing := m.ctrl.State().Editing(selected.ID)

	contacts, err := m.ctrl.Delete(m.ctx, selected.ID)
	switch {
	case err == nil:
		m.setContacts(contacts)
		m.setInfo("Contact deleted.")
	case errors.Is(err, contact.ErrNotFound):
		m.setContacts(contacts)
		m.setError("Contact no longer exists", err)
	default:
		m.setError("Could not delete contact", err)
		return m, nil
	}

	if wasEditing {
		m.clearFields()
	}
	return m, nil
}

// refresh reloads the list after a failed gesture, keeping the
// current list on error.
func (m *Model) refresh() {
	contacts, err := m.ctrl.Refresh(m.ctx)
	if err == nil {
		m.setContacts(contacts)
	}
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m *Model) clearFields() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(fieldName)
}

func (m *Model) setContacts(contacts []contact.Contact) {
	if contacts == nil {
		return
	}
	m.contacts = contacts
	if m.cursor >= len(contacts) {
		m.cursor = max(len(contacts)-1, 0)
	}
}

func (m *Model) setInfo(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string, err error) {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	m.status = msg
	m.statusErr = true
}

func (m Model) fields() contact.Fields {
	return contact.Fields{
		Name:  m.inputs[fieldName].Value(),
		Phone: m.inputs[fieldPhone].Value(),
		Email: m.inputs[fieldEmail].Value(),
	}
}

func (m Model) selected() (contact.Contact, bool) {
	if len(m.contacts) == 0 {
		return contact.Contact{}, false
	}
	return m.contacts[m.cursor], true
}

// ButtonLabel returns the save button label for the session state.
func (m Model) ButtonLabel() string {
	if m.ctrl.State().Mode == session.Editing {
		return LabelSave
	}
	return LabelAdd
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Agenda"))
	b.WriteString("\n")

	for i, in := range m.inputs {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(fieldLabels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString(buttonStyle.Render(m.ButtonLabel()))
	b.WriteString("\n\n")

	if len(m.contacts) == 0 {
		b.WriteString(mutedStyle.Render("No contacts."))
		b.WriteString("\n")
	}
	for i, c := range m.contacts {
		line := fmt.Sprintf("%-24s %-16s %s", c.Name, c.Phone, c.Email)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab fields  enter save  ↑/↓ select  ctrl+e edit  esc cancel  ctrl+d delete  ctrl+c quit"))

	return b.String()
}

// Run starts the interactive form.
func Run(ctx context.Context, ctrl *session.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
