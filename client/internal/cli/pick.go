package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// slotItem is one free slot in the picker list.
type slotItem string

func (s slotItem) Title() string       { return string(s) }
func (s slotItem) Description() string { return "free for one hour" }
func (s slotItem) FilterValue() string { return string(s) }

// slotPicker lets the user choose one free slot interactively.
type slotPicker struct {
	list     list.Model
	chosen   string
	canceled bool
}

func newSlotPicker(title string, free []string) slotPicker {
	items := make([]list.Item, len(free))
	for i, slot := range free {
		items[i] = slotItem(slot)
	}
	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = primaryStyle
	return slotPicker{list: l}
}

func (m slotPicker) Init() tea.Cmd {
	return nil
}

func (m slotPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-2, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(slotItem); ok {
				m.chosen = string(item)
				return m, tea.Quit
			}
			return m, nil
		case "q", "esc", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m slotPicker) View() string {
	if m.chosen != "" || m.canceled {
		return ""
	}
	return m.list.View()
}

func newPickCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <stationId> <date>",
		Short: "Choose a free slot interactively and book it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stationID, err := parseID("stationId", args[0])
			if err != nil {
				return err
			}
			client, _, err := rt.authorized(cmd)
			if err != nil {
				return err
			}
			booked, err := client.BookedSlots(cmd.Context(), stationID, args[1])
			if err != nil {
				return rt.report(cmd, err, true)
			}
			free := freeSlots(booked)
			if len(free) == 0 {
				newPrinter(cmd).info("Station %d is fully booked on %s.", stationID, args[1])
				return nil
			}

			picker := newSlotPicker(fmt.Sprintf("Station %d on %s", stationID, args[1]), free)
			final, err := tea.NewProgram(picker,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return rt.report(cmd, err, false)
			}
			result := final.(slotPicker)
			if result.chosen == "" {
				newPrinter(cmd).muted("Nothing booked.")
				return nil
			}
			return rt.book(cmd, client, stationID, args[1], result.chosen)
		},
	}
}
