package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/roomtodo/internal/live"
	"github.com/idilsaglam/roomtodo/internal/model"
)

// ViewModel is what the home screen drives. *viewmodel.Home satisfies it.
type ViewModel interface {
	TodoList() *live.List[model.Todo]
	AddTodo(title string)
	UpdateTodo(id int64, title string)
	DeleteTodo(id int64)
}

type dialog int

const (
	noDialog dialog = iota
	addDialog
	updateDialog
)

// todosMsg carries one live list emission.
type todosMsg []model.Todo

// todoCard adapts model.Todo to bubbles/list.Item.
type todoCard struct {
	todo model.Todo
}

func (c todoCard) Title() string       { return c.todo.Title }
func (c todoCard) Description() string { return c.todo.Date }
func (c todoCard) FilterValue() string { return c.todo.Title }

// cardDelegate renders a card as title line plus date line.
type cardDelegate struct{}

func (d cardDelegate) Height() int                               { return 2 }
func (d cardDelegate) Spacing() int                              { return 1 }
func (d cardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(todoCard)
	if !ok {
		return
	}
	t := Current()

	prefix := "  "
	title := c.todo.Title
	if index == m.Index() {
		prefix = t.Selected.Render(t.SymCursor)
		title = t.Selected.Render(title)
	}
	fmt.Fprintf(w, "%s%s\n%s%s", prefix, title, "  ", t.Date.Render(c.todo.Date))
}

// Home is the single screen: a live list of todo cards with add and
// update dialogs. It only ever shows what the view-model's list emitted.
type Home struct {
	vm      ViewModel
	updates <-chan []model.Todo
	cancel  context.CancelFunc

	list   list.Model
	loaded bool // false until the first emission
	count  int

	dialog dialog
	editID int64
	input  textinput.Model

	width, height int
}

var (
	addKey    = key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "new"))
	editKey   = key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit"))
	deleteKey = key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete"))
	quitKey   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// NewHome subscribes to vm's list. Call Stop (or quit the program through
// RunHome) to release the subscription.
func NewHome(vm ViewModel) Home {
	ctx, cancel := context.WithCancel(context.Background())

	l := list.New(nil, cardDelegate{}, 80, 20)
	l.Title = header(0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle()
	l.Styles.HelpStyle = Current().Muted
	l.Styles.PaginationStyle = Current().Muted
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addKey, editKey, deleteKey, quitKey} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addKey, editKey, deleteKey, quitKey} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Home{
		vm:      vm,
		updates: vm.TodoList().Subscribe(ctx),
		cancel:  cancel,
		list:    l,
		input:   ti,
		width:   80,
		height:  24,
	}
}

// RunHome runs the screen until the user quits.
func RunHome(vm ViewModel, opts ...tea.ProgramOption) error {
	h := NewHome(vm)
	defer h.Stop()
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(h, opts...).Run()
	return err
}

// Stop drops the live list subscription.
func (h Home) Stop() { h.cancel() }

func (h Home) Init() tea.Cmd { return waitForTodos(h.updates) }

// waitForTodos blocks on the next emission; a closed channel ends the loop.
func waitForTodos(ch <-chan []model.Todo) tea.Cmd {
	return func() tea.Msg {
		todos, ok := <-ch
		if !ok {
			return nil
		}
		return todosMsg(todos)
	}
}

func (h Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosMsg:
		return h.applyTodos(msg)
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		h.resize()
		return h, nil
	}

	if h.dialog != noDialog {
		return h.updateDialog(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, quitKey):
			h.cancel()
			return h, tea.Quit
		case key.Matches(msg, addKey):
			return h.openDialog(addDialog, 0, ""), textinput.Blink
		case key.Matches(msg, editKey):
			if c, ok := h.list.SelectedItem().(todoCard); ok {
				return h.openDialog(updateDialog, c.todo.ID, c.todo.Title), textinput.Blink
			}
			return h, nil
		case key.Matches(msg, deleteKey):
			if c, ok := h.list.SelectedItem().(todoCard); ok {
				h.vm.DeleteTodo(c.todo.ID)
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return h, cmd
}

// applyTodos replaces the cards, newest on top, and waits for the next list.
func (h Home) applyTodos(todos []model.Todo) (tea.Model, tea.Cmd) {
	items := make([]list.Item, 0, len(todos))
	for _, td := range ordered(todos, true) {
		items = append(items, todoCard{todo: td})
	}
	h.loaded = true
	h.count = len(todos)
	h.list.Title = header(h.count)
	cmd := h.list.SetItems(items)
	return h, tea.Batch(cmd, waitForTodos(h.updates))
}

func (h Home) openDialog(kind dialog, id int64, title string) Home {
	h.dialog = kind
	h.editID = id
	h.input.SetValue(title)
	h.input.CursorEnd()
	h.input.Placeholder = "New todo title..."
	if kind == updateDialog {
		h.input.Placeholder = "Update todo title..."
	}
	h.input.Focus()
	h.resize()
	return h
}

func (h Home) closeDialog() Home {
	h.dialog = noDialog
	h.editID = 0
	h.input.SetValue("")
	h.input.Blur()
	h.resize()
	return h
}

// updateDialog handles keys while a dialog is open. Titles are trimmed
// here, not in the view-model; empty titles are accepted.
func (h Home) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := strings.TrimSpace(h.input.Value())
			if h.dialog == addDialog {
				h.vm.AddTodo(title)
			} else {
				h.vm.UpdateTodo(h.editID, title)
			}
			return h.closeDialog(), nil
		case "esc":
			return h.closeDialog(), nil
		case "ctrl+c":
			h.cancel()
			return h, tea.Quit
		}
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *Home) resize() {
	listHeight := h.height - 4
	if h.dialog != noDialog {
		listHeight -= 4
	}
	if listHeight < 1 {
		listHeight = 1
	}
	h.list.SetSize(h.width-4, listHeight)
}

func (h Home) View() string {
	if !h.loaded {
		return panelString(header(0))
	}

	content := h.list.View()
	if h.dialog != noDialog {
		t := Current()
		title := "New todo"
		if h.dialog == updateDialog {
			title = fmt.Sprintf("Update todo #%d", h.editID)
		}
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		hint := t.Muted.Render("enter save · esc cancel")
		content += "\n" + bar.Render(t.Accent.Render(title)+"\n"+h.input.View()+"\n"+hint)
	}
	return panelString(content)
}
