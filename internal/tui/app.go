package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/inventaris/internal/inventory"
)

// App is the single checklist screen: a form row, the item list and the stats
// footer. Every mutation goes through the controller inside Update, so the
// snapshot is stored before the next frame is drawn.
type App struct {
	ctx  context.Context
	ctrl *inventory.Controller
	log  *zap.Logger
	keys keyMap

	focus       focusArea
	roomIndex   int // index into roomOptions
	quantity    int
	description textinput.Model

	cursor    int
	editing   bool
	editID    int64
	editStart string // editInput value when editing began
	editInput textinput.Model

	width int
}

type focusArea int

const (
	focusRoom focusArea = iota
	focusQuantity
	focusDescription
	focusList
	focusCount
)

// roomOptions is what the room picker cycles through; "" means no room.
var roomOptions = append([]string{""}, roomNames()...)

func roomNames() []string {
	var out []string
	for _, r := range inventory.AllRooms() {
		out = append(out, string(r))
	}
	return out
}

func New(ctx context.Context, ctrl *inventory.Controller, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	desc := textinput.New()
	desc.Placeholder = "Barang baru"
	desc.CharLimit = 0

	edit := textinput.New()
	edit.CharLimit = 0

	a := &App{
		ctx:         ctx,
		ctrl:        ctrl,
		log:         log,
		keys:        newKeyMap(),
		quantity:    inventory.MinQuantity,
		description: desc,
		editInput:   edit,
	}
	for i, name := range roomOptions {
		if name == ctrl.SelectedRoom() {
			a.roomIndex = i
		}
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case tea.KeyMsg:
		if m.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.editing {
			return a.handleEditKey(m)
		}
		switch {
		case key.Matches(m, a.keys.Focus):
			a.setFocus((a.focus + 1) % focusCount)
			return a, nil
		case key.Matches(m, a.keys.FocusBack):
			a.setFocus((a.focus + focusCount - 1) % focusCount)
			return a, nil
		}
		switch a.focus {
		case focusRoom:
			return a.handleRoomKey(m)
		case focusQuantity:
			return a.handleQuantityKey(m)
		case focusDescription:
			return a.handleDescriptionKey(m)
		case focusList:
			return a.handleListKey(m)
		}
	}
	return a, nil
}

func (a *App) setFocus(f focusArea) {
	a.focus = f
	if f == focusDescription {
		a.description.Focus()
	} else {
		a.description.Blur()
	}
}

func (a *App) handleRoomKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Prev):
		a.selectRoom((a.roomIndex + len(roomOptions) - 1) % len(roomOptions))
	case key.Matches(m, a.keys.Next):
		a.selectRoom((a.roomIndex + 1) % len(roomOptions))
	}
	return a, nil
}

func (a *App) selectRoom(i int) {
	a.roomIndex = i
	a.ctrl.SelectRoom(roomOptions[i])
	a.cursor = 0
}

func (a *App) handleQuantityKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Prev):
		if a.quantity > inventory.MinQuantity {
			a.quantity--
		}
	case key.Matches(m, a.keys.Next):
		if a.quantity < inventory.MaxQuantity {
			a.quantity++
		}
	}
	return a, nil
}

func (a *App) handleDescriptionKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Submit):
		a.submit()
		return a, nil
	case key.Matches(m, a.keys.Cancel):
		a.setFocus(focusList)
		return a, nil
	}
	var cmd tea.Cmd
	a.description, cmd = a.description.Update(m)
	return a, cmd
}

// submit adds the form's item; the form is reset only when the item was added.
func (a *App) submit() {
	_, added, err := a.ctrl.AddItem(a.ctx, a.description.Value(), a.quantity)
	if err != nil {
		a.log.Error("add item", zap.String("room", a.ctrl.SelectedRoom()), zap.Error(err))
	}
	if !added {
		return
	}
	a.description.SetValue("")
	a.quantity = inventory.MinQuantity
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := a.ctrl.Items()
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(items)-1 {
			a.cursor++
		}
		return a, nil
	}
	if len(items) == 0 {
		return a, nil
	}
	if a.cursor >= len(items) {
		a.cursor = len(items) - 1
	}
	item := items[a.cursor]
	switch {
	case key.Matches(m, a.keys.Toggle):
		if err := a.ctrl.TogglePacked(a.ctx, item.ID); err != nil {
			a.log.Error("toggle packed", zap.Int64("id", item.ID), zap.Error(err))
		}
	case key.Matches(m, a.keys.Remove):
		if err := a.ctrl.RemoveItem(a.ctx, item.ID); err != nil {
			a.log.Error("remove item", zap.Int64("id", item.ID), zap.Error(err))
		}
		if a.cursor > 0 && a.cursor >= len(items)-1 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Edit):
		a.editing = true
		a.editID = item.ID
		a.editInput.SetValue(item.Description)
		a.editInput.CursorEnd()
		a.editInput.Focus()
		a.editStart = a.editInput.Value()
	}
	return a, nil
}

// handleEditKey commits on enter or when focus leaves the field, and discards on esc.
func (a *App) handleEditKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Save, a.keys.Leave):
		a.finishEdit(true)
		return a, nil
	case key.Matches(m, a.keys.Cancel):
		a.finishEdit(false)
		return a, nil
	}
	var cmd tea.Cmd
	a.editInput, cmd = a.editInput.Update(m)
	return a, cmd
}

func (a *App) finishEdit(commit bool) {
	// An untouched field is not written back; the input may have altered
	// the stored text when it was loaded.
	if commit && a.editInput.Value() != a.editStart {
		if err := a.ctrl.EditDescription(a.ctx, a.editID, a.editInput.Value()); err != nil {
			a.log.Error("edit description", zap.Int64("id", a.editID), zap.Error(err))
		}
	}
	a.editing = false
	a.editInput.Blur()
	a.editInput.SetValue("")
	a.editStart = ""
}
