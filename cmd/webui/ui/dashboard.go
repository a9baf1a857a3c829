package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type DashboardModel struct {
	Client *Client
	Table  table.Model
	Posts  []Publication
	Err    error
}

type publicationsMsg []Publication

type PostSelectedMsg struct {
	ID uint
}

func NewDashboardModel(c *Client, width, height int) DashboardModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 40},
		{Title: "Priority", Width: 10},
		{Title: "Posted", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height-10),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return DashboardModel{Client: c, Table: t}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.refreshCmd
}

func (m DashboardModel) refreshCmd() tea.Msg {
	posts, err := m.Client.ListPublications()
	if err != nil {
		return errMsg(err)
	}
	return publicationsMsg(posts)
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refreshCmd
		case "enter":
			selected := m.Table.SelectedRow()
			if len(selected) > 0 {
				id, err := strconv.ParseUint(selected[0], 10, 32)
				if err == nil {
					return m, func() tea.Msg { return PostSelectedMsg{ID: uint(id)} }
				}
			}
		case "q":
			return m, tea.Quit
		}

	case publicationsMsg:
		m.Posts = msg
		m.Err = nil
		rows := make([]table.Row, 0, len(msg))
		for _, p := range msg {
			rows = append(rows, table.Row{strconv.FormatUint(uint64(p.ID), 10), p.Title, p.Priority, p.PostedAgo})
		}
		m.Table.SetRows(rows)

	case errMsg:
		m.Err = msg
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pubboard - Publications") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Press 'r' to refresh, 'q' to quit, Enter to open, up/down to navigate"))

	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
