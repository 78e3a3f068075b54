package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/retrieval-engine/internal/adapters/driving/tools"
	"github.com/custodia-labs/retrieval-engine/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/retrieval-engine/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/retrieval-engine/internal/adapters/driving/tui/styles"
)

// App is the search view following the Elm architecture.
type App struct {
	ports   *Ports
	surface *tools.Surface
	ctx     context.Context

	styles  *styles.Styles
	keys    *keymap.KeyMap
	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	query    string
	snippets []string
	selected int
	status   string
	err      error

	// busy is set while a search or ingestion runs.
	busy       bool
	focusInput bool

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the search view over the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Ask your notes..."
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	return &App{
		ports:      ports,
		surface:    tools.New(ports.Ingest, ports.Query, ports.DataDir),
		ctx:        context.Background(),
		styles:     styles.DefaultStyles(),
		keys:       keymap.DefaultKeyMap(),
		input:      ti,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:       help.New(),
		focusInput: true,
		width:      80,
		height:     24,
	}, nil
}

// WithContext sets the context passed to the services.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle("retrieval-engine"))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.input.Width = styles.SnippetWidth(msg.Width) - 4
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.busy = false
		a.query = msg.Query
		a.selected = 0
		a.snippets = nil
		a.err = msg.Err
		switch {
		case msg.Err != nil:
			a.status = ""
		case msg.Result.IndexMissing:
			a.status = "No index found. Press ctrl+r to ingest the data directory."
		case len(msg.Result.Snippets) == 0:
			a.status = "No relevant notes found."
		default:
			a.snippets = msg.Result.Snippets
			a.status = fmt.Sprintf("%d results", len(a.snippets))
			a.focusInput = false
			a.input.Blur()
		}
		return a, nil

	case messages.IndexCompleted:
		a.busy = false
		a.err = nil
		a.status = msg.Reply
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKey processes keyboard input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case a.busy:
		return a, nil
	case key.Matches(msg, a.keys.Index):
		return a, a.startIndex()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	case key.Matches(msg, a.keys.Focus):
		return a, a.toggleFocus()
	}

	if a.focusInput {
		if key.Matches(msg, a.keys.Search) {
			return a, a.startSearch(a.input.Value())
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		if a.selected > 0 {
			a.selected--
		}
	case key.Matches(msg, a.keys.Down):
		if a.selected < len(a.snippets)-1 {
			a.selected++
		}
	}
	return a, nil
}

func (a *App) toggleFocus() tea.Cmd {
	a.focusInput = !a.focusInput
	if a.focusInput {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

// startSearch runs the query in the background. Blank queries are ignored.
func (a *App) startSearch(query string) tea.Cmd {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	a.busy = true
	a.status = "Searching..."
	return tea.Batch(a.spinner.Tick, a.searchCmd(query))
}

func (a *App) searchCmd(query string) tea.Cmd {
	ctx, q := a.ctx, a.ports.Query
	return func() tea.Msg {
		result, err := q.Query(ctx, query)
		return messages.SearchCompleted{Query: query, Result: result, Err: err}
	}
}

// startIndex re-ingests the data directory in the background.
func (a *App) startIndex() tea.Cmd {
	a.busy = true
	a.status = "Indexing " + a.ports.DataDir + "..."
	return tea.Batch(a.spinner.Tick, a.indexCmd())
}

func (a *App) indexCmd() tea.Cmd {
	ctx, surface := a.ctx, a.surface
	return func() tea.Msg {
		return messages.IndexCompleted{Reply: surface.IndexData(ctx)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Notes search"))
	b.WriteString("\n")
	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n")

	switch {
	case a.busy:
		b.WriteString(a.spinner.View() + " " + a.styles.Status.Render(a.status))
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
	case a.status != "":
		b.WriteString(a.styles.Status.Render(a.status))
	}
	b.WriteString("\n\n")

	width := styles.SnippetWidth(a.width)
	for i, snippet := range a.snippets {
		style := a.styles.Snippet
		if i == a.selected && !a.focusInput {
			style = a.styles.SelectedSnippet
		}
		b.WriteString(style.Width(width).Render(snippet))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// Query returns the last query searched.
func (a *App) Query() string {
	return a.query
}

// Snippets returns the current results.
func (a *App) Snippets() []string {
	return a.snippets
}

// Selected returns the index of the highlighted result.
func (a *App) Selected() int {
	return a.selected
}

// Status returns the status line text.
func (a *App) Status() string {
	return a.status
}

// Err returns the last search error.
func (a *App) Err() error {
	return a.err
}
