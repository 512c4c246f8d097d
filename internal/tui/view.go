package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	packedStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	listBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statsStyle   = lipgloss.NewStyle().Italic(true)
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("INVENTARIS BARANG"))
	b.WriteString("\n\n")
	b.WriteString(a.renderForm())
	b.WriteString("\n\n")
	box := listBoxStyle
	if a.width > 4 {
		box = box.Width(a.width - 4)
	}
	b.WriteString(box.Render(a.renderList()))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(a.ctrl.Stats().Message()))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(renderHelp(a.ShortHelp())))
	return b.String()
}

func (a *App) renderForm() string {
	room := roomOptions[a.roomIndex]
	if room == "" {
		room = "Pilih Ruangan"
	}
	fields := []string{
		a.field(focusRoom, "Ruangan", fmt.Sprintf("< %s >", room)),
		a.field(focusQuantity, "Jumlah", fmt.Sprintf("< %d >", a.quantity)),
		a.field(focusDescription, "Barang", a.description.View()),
	}
	return strings.Join(fields, "  ")
}

func (a *App) field(f focusArea, label, value string) string {
	if a.focus == f {
		return focusStyle.Render(label+":") + " " + value
	}
	return label + ": " + value
}

func (a *App) renderList() string {
	items := a.ctrl.Items()
	if items == nil {
		return "Daftar Barang\n" + mutedStyle.Render("Belum ada barang di ruangan ini")
	}
	var lines []string
	for i, it := range items {
		marker := " "
		if a.focus == focusList && i == a.cursor {
			marker = "▶"
		}
		check := "[ ]"
		if it.Packed {
			check = "[x]"
		}
		text := fmt.Sprintf("%d %s", it.Quantity, it.Description)
		if a.editing && it.ID == a.editID {
			text = fmt.Sprintf("%d %s", it.Quantity, a.editInput.View())
		} else if it.Packed {
			text = packedStyle.Render(text)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", marker, check, text))
	}
	if len(lines) == 0 {
		return mutedStyle.Render(a.ctrl.SelectedRoom() + " masih kosong")
	}
	return strings.Join(lines, "\n")
}
