package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateDashboard
	statePostDetail
)

type RootModel struct {
	State     state
	Client    *Client
	Login     LoginModel
	Dashboard DashboardModel
	Detail    PostDetailModel
	Quitting  bool
	width     int
	height    int
}

func NewRootModel() RootModel {
	c := NewClient()
	return RootModel{
		State:  stateLogin,
		Client: c,
		Login:  NewLoginModel(c),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Dashboard.Table.SetHeight(msg.Height - 10)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}
	}

	switch m.State {
	case stateLogin:
		if _, ok := msg.(loginSuccessMsg); ok {
			m.State = stateDashboard
			m.Dashboard = NewDashboardModel(m.Client, m.width, m.height)
			return m, m.Dashboard.Init()
		}
		if err, ok := msg.(errMsg); ok {
			m.Login.Err = err
		}

		newLogin, cmd := m.Login.Update(msg)
		m.Login = newLogin
		cmds = append(cmds, cmd)

	case stateDashboard:
		if sel, ok := msg.(PostSelectedMsg); ok {
			m.State = statePostDetail
			m.Detail = NewPostDetailModel(m.Client, sel.ID)
			return m, m.Detail.Init()
		}

		newDash, cmd := m.Dashboard.Update(msg)
		m.Dashboard = newDash
		cmds = append(cmds, cmd)

	case statePostDetail:
		if _, ok := msg.(BackToDashboardMsg); ok {
			m.State = stateDashboard
			return m, m.Dashboard.Init()
		}

		newDetail, cmd := m.Detail.Update(msg)
		m.Detail = newDetail
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateDashboard:
		return m.Dashboard.View()
	case statePostDetail:
		return m.Detail.View()
	}
	return "Unknown state"
}
