// Package tui is the terminal client. It follows the Elm architecture of
// bubbletea: App holds the screen state, Update turns key presses and
// finished store operations into new state, and View renders it.
//
// All note data lives in a client.Store. Store calls block on the network,
// so they run inside tea.Cmds and report back with an opDoneMsg.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stickynotes/stickynotes/internal/client"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAdd
	modalEdit
	modalComplete
	modalDelete
)

type opKind string

const (
	opLogin    opKind = "login"
	opRegister opKind = "register"
	opResume   opKind = "resume"
	opLogout   opKind = "logout"
	opFetch    opKind = "fetch"
	opCreate   opKind = "create"
	opUpdate   opKind = "update"
	opComplete opKind = "complete"
	opDelete   opKind = "delete"
)

// opDoneMsg reports a finished store operation.
type opDoneMsg struct {
	op  opKind
	err error
}

// AppOption customizes App construction.
type AppOption func(*App)

// WithResumeToken restores a session from a saved token on start.
func WithResumeToken(token string) AppOption {
	return func(a *App) {
		a.resumeToken = strings.TrimSpace(token)
	}
}

// WithInitialRoute opens the given path instead of the default screen.
func WithInitialRoute(path string) AppOption {
	return func(a *App) {
		a.route = parseRoute(path)
	}
}

// App is the root bubbletea model.
type App struct {
	ctx   context.Context
	store *client.Store
	state client.State

	route    route
	selected int
	inflight int
	formErr  string

	auth     *authForm
	modal    modalKind
	noteForm *noteForm
	feedback *feedbackForm
	target   client.Note

	resumeToken string
	spinner     spinner.Model

	width  int
	height int
}

// NewApp creates the client UI over store.
func NewApp(ctx context.Context, store *client.Store, opts ...AppOption) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accent)

	a := &App{
		ctx:     ctx,
		store:   store,
		state:   store.State(),
		route:   routeActive,
		spinner: sp,
		width:   100,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.navigate(a.route)
	return a
}

// Init starts the spinner and loads the initial data.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	switch {
	case a.resumeToken != "":
		token := a.resumeToken
		cmds = append(cmds, a.run(opResume, func(ctx context.Context) error {
			return a.store.Resume(ctx, token)
		}))
	case a.state.Session.Authenticated():
		cmds = append(cmds, a.run(opFetch, a.store.Fetch))
	}
	return tea.Batch(cmds...)
}

// Update handles a message and returns the next command.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case opDoneMsg:
		return a, a.handleOpDone(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch {
		case a.route == routeLogin || a.route == routeRegister:
			return a, a.updateAuth(msg)
		case a.modal != modalNone:
			return a, a.updateModal(msg)
		default:
			return a, a.updateBoard(msg)
		}
	}
	return a, nil
}

// run executes a store operation off the UI goroutine.
func (a *App) run(kind opKind, fn func(context.Context) error) tea.Cmd {
	a.inflight++
	ctx := a.ctx
	return func() tea.Msg {
		return opDoneMsg{op: kind, err: fn(ctx)}
	}
}

func (a *App) handleOpDone(msg opDoneMsg) tea.Cmd {
	if a.inflight > 0 {
		a.inflight--
	}
	a.state = a.store.State()

	if msg.err != nil {
		if client.IsUnauthorized(msg.err) && a.state.Session.Authenticated() {
			// Expired or revoked token: drop the session and sign in again.
			_ = a.store.SetSession(a.ctx, nil)
			a.state = a.store.State()
			a.state.Err = "Session expired, please sign in again"
			a.closeModal()
		}
		if a.route.protected() && !a.state.Session.Authenticated() {
			a.navigate(routeLogin)
		}
		return nil
	}

	switch msg.op {
	case opLogin, opRegister, opResume:
		a.navigate(routeActive)
	case opLogout:
		a.navigate(routeLogin)
	case opCreate, opUpdate, opComplete, opDelete:
		a.closeModal()
	}
	a.clampSelection()
	return nil
}

// navigate switches screens, applying the auth guard.
func (a *App) navigate(r route) {
	a.route = resolve(r, a.state.Session.Authenticated())
	a.formErr = ""
	a.selected = 0
	switch a.route {
	case routeLogin:
		a.auth = newAuthForm(false)
	case routeRegister:
		a.auth = newAuthForm(true)
	default:
		a.auth = nil
	}
}

func (a *App) closeModal() {
	a.modal = modalNone
	a.noteForm = nil
	a.feedback = nil
	a.formErr = ""
}

func (a *App) notes() []client.Note {
	if a.route == routeCompleted {
		return a.state.Completed
	}
	return a.state.Active
}

func (a *App) current() (client.Note, bool) {
	notes := a.notes()
	if a.selected < 0 || a.selected >= len(notes) {
		return client.Note{}, false
	}
	return notes[a.selected], true
}

func (a *App) clampSelection() {
	n := len(a.notes())
	if a.selected >= n {
		a.selected = n - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

func (a *App) updateAuth(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return tea.Quit
	case "ctrl+r":
		if a.route == routeLogin {
			a.navigate(routeRegister)
		} else {
			a.navigate(routeLogin)
		}
		return nil
	case "tab", "down":
		a.auth.move(1)
		return nil
	case "shift+tab", "up":
		a.auth.move(-1)
		return nil
	case "enter":
		if !a.auth.onLast() {
			a.auth.move(1)
			return nil
		}
		return a.submitAuth()
	}
	return a.auth.update(msg)
}

func (a *App) submitAuth() tea.Cmd {
	if field := a.auth.missing(); field != "" {
		a.formErr = field + " is required"
		return nil
	}
	a.formErr = ""

	email, password, name := a.auth.email(), a.auth.password(), a.auth.name()
	if a.auth.register {
		return a.run(opRegister, func(ctx context.Context) error {
			return a.store.Register(ctx, email, password, name)
		})
	}
	return a.run(opLogin, func(ctx context.Context) error {
		return a.store.Login(ctx, email, password)
	})
}

func (a *App) updateBoard(msg tea.KeyMsg) tea.Cmd {
	cols := columns(a.width)
	n := len(a.notes())

	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab", "1", "2":
		next := routeCompleted
		if a.route == routeCompleted || msg.String() == "1" {
			next = routeActive
		}
		a.navigate(next)
	case "left", "h":
		if a.selected > 0 {
			a.selected--
		}
	case "right", "l":
		if a.selected < n-1 {
			a.selected++
		}
	case "up", "k":
		if a.selected-cols >= 0 {
			a.selected -= cols
		}
	case "down", "j":
		if a.selected+cols < n {
			a.selected += cols
		}
	case "r":
		return a.run(opFetch, a.store.Fetch)
	case "L":
		return a.run(opLogout, a.store.Logout)
	case "n":
		if a.route == routeActive {
			a.modal = modalAdd
			a.noteForm = newNoteForm(nil)
		}
	case "e", "enter":
		if note, ok := a.current(); ok && a.route == routeActive {
			a.target = note
			a.modal = modalEdit
			a.noteForm = newNoteForm(&note)
		}
	case "c":
		if note, ok := a.current(); ok && a.route == routeActive {
			a.target = note
			a.modal = modalComplete
			a.feedback = newFeedbackForm(note)
		}
	case "d", "delete":
		if note, ok := a.current(); ok && a.route == routeActive {
			a.target = note
			a.modal = modalDelete
		}
	}
	return nil
}

func (a *App) updateModal(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		a.closeModal()
		return nil
	}

	switch a.modal {
	case modalAdd, modalEdit:
		switch msg.String() {
		case "tab":
			a.noteForm.move(1)
			return nil
		case "shift+tab":
			a.noteForm.move(-1)
			return nil
		case "ctrl+s":
			return a.submitNote()
		}
		return a.noteForm.update(msg)

	case modalComplete:
		if msg.String() == "enter" {
			id, feedback := a.target.ID, strings.TrimSpace(a.feedback.input.Value())
			return a.run(opComplete, func(ctx context.Context) error {
				return a.store.CompleteNote(ctx, id, feedback)
			})
		}
		return a.feedback.update(msg)

	case modalDelete:
		switch msg.String() {
		case "y", "Y", "enter":
			id := a.target.ID
			return a.run(opDelete, func(ctx context.Context) error {
				return a.store.DeleteNote(ctx, id)
			})
		case "n", "N":
			a.closeModal()
		}
	}
	return nil
}

func (a *App) submitNote() tea.Cmd {
	if field := a.noteForm.missing(); field != "" {
		a.formErr = field + " is required"
		return nil
	}
	a.formErr = ""

	if a.modal == modalAdd {
		note := a.noteForm.newNote()
		return a.run(opCreate, func(ctx context.Context) error {
			return a.store.CreateNote(ctx, note)
		})
	}

	id, changes := a.target.ID, a.noteForm.changes()
	if changes.Title == nil && changes.Content == nil && changes.Color == nil {
		a.closeModal()
		return nil
	}
	return a.run(opUpdate, func(ctx context.Context) error {
		return a.store.UpdateNote(ctx, id, changes)
	})
}

func (a *App) loading() bool {
	return a.inflight > 0 || a.state.Loading
}

// View renders the current screen.
func (a *App) View() string {
	var sections []string
	sections = append(sections, a.headerView())

	switch {
	case a.route == routeLogin || a.route == routeRegister:
		sections = append(sections, a.auth.view())
	case a.modal == modalAdd || a.modal == modalEdit:
		sections = append(sections, a.noteForm.view())
	case a.modal == modalComplete:
		sections = append(sections, a.feedback.view())
	case a.modal == modalDelete:
		sections = append(sections, confirmDeleteView(a.target))
	default:
		sections = append(sections, a.boardView())
	}

	sections = append(sections, a.statusView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) headerView() string {
	left := headerStyle.Render("Sticky Notes")
	session := a.state.Session
	if !session.Authenticated() {
		return left + "\n"
	}

	active, completed := navStyle.Render("1 Active"), navStyle.Render("2 Completed")
	if a.route == routeCompleted {
		completed = navActiveStyle.Render("2 Completed")
	} else {
		active = navActiveStyle.Render("1 Active")
	}
	user := hintStyle.Render("Hello, " + session.User.Name + " · L: logout")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", active, "  ", completed, "    ", user) + "\n"
}

func (a *App) boardView() string {
	notes := a.notes()
	if len(notes) == 0 {
		if a.route == routeCompleted {
			return hintStyle.Render("No completed notes yet.")
		}
		return hintStyle.Render("No notes yet. Press n to add one.")
	}

	grid := renderGrid(notes, a.selected, a.width)
	help := "←↑↓→: select · n: new · e: edit · c: complete · d: delete · r: refresh · tab: completed · q: quit"
	if a.route == routeCompleted {
		help = "←↑↓→: select · r: refresh · tab: active · q: quit"
	}
	return grid + "\n" + hintStyle.Render(help)
}

func (a *App) statusView() string {
	var parts []string
	if a.loading() {
		parts = append(parts, a.spinner.View()+" Loading…")
	}
	if a.formErr != "" {
		parts = append(parts, errorStyle.Render(a.formErr))
	} else if a.state.Err != "" {
		parts = append(parts, errorStyle.Render(a.state.Err))
	}
	return strings.Join(parts, "  ")
}
