package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stickynotes/stickynotes/internal/client"
	"github.com/stickynotes/stickynotes/internal/model"
)

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// authForm backs the login and register screens.
type authForm struct {
	register bool
	inputs   []textinput.Model
	focus    int
}

func newAuthForm(register bool) *authForm {
	email := newInput("you@example.com", 254)
	password := newInput("password", 128)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	inputs := []textinput.Model{email, password}
	if register {
		inputs = append(inputs, newInput("display name", 80))
	}
	f := &authForm{register: register, inputs: inputs}
	f.inputs[0].Focus()
	return f
}

func (f *authForm) email() string    { return strings.TrimSpace(f.inputs[0].Value()) }
func (f *authForm) password() string { return f.inputs[1].Value() }

func (f *authForm) name() string {
	if !f.register {
		return ""
	}
	return strings.TrimSpace(f.inputs[2].Value())
}

// onLast reports whether the last field has focus.
func (f *authForm) onLast() bool { return f.focus == len(f.inputs)-1 }

func (f *authForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// missing returns the label of the first empty required field.
func (f *authForm) missing() string {
	switch {
	case f.email() == "":
		return "Email"
	case f.password() == "":
		return "Password"
	case f.register && f.name() == "":
		return "Name"
	}
	return ""
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *authForm) view() string {
	labels := []string{"Email", "Password", "Name"}
	title := "Sign in"
	toggle := "ctrl+r: create an account"
	if f.register {
		title = "Create an account"
		toggle = "ctrl+r: sign in instead"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	for i, in := range f.inputs {
		b.WriteString(labelStyle.Render(labels[i]) + "\n" + in.View() + "\n\n")
	}
	b.WriteString(hintStyle.Render("tab: next field · enter: submit · " + toggle))
	return modalStyle.Render(b.String())
}

const (
	fieldTitle = iota
	fieldContent
	fieldColor
	fieldCount
)

// noteForm backs the add and edit modals.
type noteForm struct {
	original *client.Note
	title    textinput.Model
	content  textarea.Model
	color    int
	focus    int
}

func newNoteForm(original *client.Note) *noteForm {
	title := newInput("Title", 120)
	content := textarea.New()
	content.Placeholder = "What needs doing?"
	content.SetWidth(48)
	content.SetHeight(4)
	content.ShowLineNumbers = false
	content.Cursor.SetMode(cursor.CursorStatic)

	f := &noteForm{original: original, title: title, content: content}
	if original != nil {
		f.title.SetValue(original.Title)
		f.content.SetValue(original.Content)
		f.color = paletteIndex(original.Color)
	}
	f.title.Focus()
	return f
}

func paletteIndex(color string) int {
	for i, s := range model.Palette {
		if strings.EqualFold(s.Value, color) {
			return i
		}
	}
	return 0
}

func (f *noteForm) move(delta int) {
	f.title.Blur()
	f.content.Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	switch f.focus {
	case fieldTitle:
		f.title.Focus()
	case fieldContent:
		f.content.Focus()
	}
}

func (f *noteForm) colorValue() string { return model.Palette[f.color].Value }

// missing returns the label of the first empty required field.
func (f *noteForm) missing() string {
	switch {
	case strings.TrimSpace(f.title.Value()) == "":
		return "Title"
	case strings.TrimSpace(f.content.Value()) == "":
		return "Content"
	}
	return ""
}

func (f *noteForm) newNote() client.NewNote {
	return client.NewNote{
		Title:   strings.TrimSpace(f.title.Value()),
		Content: strings.TrimSpace(f.content.Value()),
		Color:   f.colorValue(),
	}
}

// changes returns only the fields that differ from the original note.
func (f *noteForm) changes() client.NoteChanges {
	var c client.NoteChanges
	if f.original == nil {
		return c
	}
	if v := strings.TrimSpace(f.title.Value()); v != f.original.Title {
		c.Title = &v
	}
	if v := strings.TrimSpace(f.content.Value()); v != f.original.Content {
		c.Content = &v
	}
	if v := f.colorValue(); !strings.EqualFold(v, f.original.Color) {
		c.Color = &v
	}
	return c
}

func (f *noteForm) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && f.focus == fieldColor {
		switch key.String() {
		case "left", "h":
			f.color = (f.color + len(model.Palette) - 1) % len(model.Palette)
		case "right", "l":
			f.color = (f.color + 1) % len(model.Palette)
		}
		return nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldContent:
		f.content, cmd = f.content.Update(msg)
	}
	return cmd
}

func (f *noteForm) view() string {
	heading := "Add note"
	if f.original != nil {
		heading = "Edit note"
	}

	chips := make([]string, len(model.Palette))
	for i, s := range model.Palette {
		chips[i] = swatch(s.Value, i == f.color)
	}
	colorLabel := labelStyle.Render("Color")
	if f.focus == fieldColor {
		colorLabel = navActiveStyle.Render("Color")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading) + "\n\n")
	b.WriteString(labelStyle.Render("Title") + "\n" + f.title.View() + "\n\n")
	b.WriteString(labelStyle.Render("Content") + "\n" + f.content.View() + "\n\n")
	b.WriteString(colorLabel + "  " + hintStyle.Render(model.Palette[f.color].Label) + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...) + "\n\n")
	b.WriteString(hintStyle.Render("tab: next field · ←/→: color · ctrl+s: save · esc: cancel"))
	return modalStyle.Render(b.String())
}

// feedbackForm backs the complete modal.
type feedbackForm struct {
	note  client.Note
	input textinput.Model
}

func newFeedbackForm(note client.Note) *feedbackForm {
	in := newInput("How did it go? (optional)", 500)
	in.Focus()
	return &feedbackForm{note: note, input: in}
}

func (f *feedbackForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *feedbackForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Complete \""+f.note.Title+"\"") + "\n\n")
	b.WriteString(labelStyle.Render("Feedback") + "\n" + f.input.View() + "\n\n")
	b.WriteString(hintStyle.Render("enter: complete · esc: cancel"))
	return modalStyle.Render(b.String())
}

func confirmDeleteView(note client.Note) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete note?") + "\n\n")
	b.WriteString("\"" + note.Title + "\" will be removed permanently.\n\n")
	b.WriteString(hintStyle.Render("y: delete · n/esc: cancel"))
	return modalStyle.Render(b.String())
}
