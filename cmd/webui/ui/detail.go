package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type BackToDashboardMsg struct{}

type postMsg *Publication

type PostDetailModel struct {
	Client *Client
	PostID uint
	Post   *Publication
	Err    error
}

func NewPostDetailModel(c *Client, id uint) PostDetailModel {
	return PostDetailModel{Client: c, PostID: id}
}

func (m PostDetailModel) Init() tea.Cmd {
	return m.loadCmd
}

func (m PostDetailModel) loadCmd() tea.Msg {
	post, err := m.Client.GetPublication(m.PostID)
	if err != nil {
		return errMsg(err)
	}
	return postMsg(post)
}

func (m PostDetailModel) Update(msg tea.Msg) (PostDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return BackToDashboardMsg{} }
		case "r":
			return m, m.loadCmd
		case "q":
			return m, tea.Quit
		}
	case postMsg:
		m.Post = msg
		m.Err = nil
	case errMsg:
		m.Err = msg
	}
	return m, nil
}

func (m PostDetailModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Publication #%d", m.PostID)) + "\n\n")

	if m.Post != nil {
		b.WriteString(labelStyle.Render("Title: ") + m.Post.Title + "\n")
		b.WriteString(labelStyle.Render("Description: ") + m.Post.Description + "\n")
		b.WriteString(labelStyle.Render("Priority: ") + m.Post.Priority + "\n")
		b.WriteString(labelStyle.Render("Status: ") + m.Post.Status + "\n")
		b.WriteString(labelStyle.Render("Owner: ") + fmt.Sprintf("user %d", m.Post.UserID) + "\n")
		b.WriteString(labelStyle.Render("Posted: ") + m.Post.PostedAgo + "\n")
	} else if m.Err == nil {
		b.WriteString("Loading...\n")
	}

	b.WriteString("\n")
	b.WriteString(blurredStyle.Render("Press Esc to go back, 'r' to reload, 'q' to quit"))

	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
