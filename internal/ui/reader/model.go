// Package reader 邮件详情视图：渲染选中邮件及其所属会话线程。
package reader

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"webmail/client/internal/domain"
	"webmail/client/internal/ui"
	"webmail/client/internal/ui/theme"
)

// ThreadLoader 详情视图依赖的只读数据访问操作。
type ThreadLoader interface {
	GetMessage(id string) (*domain.Message, bool, error)
	GetThread(threadID string) ([]domain.Message, error)
}

// BackMsg 返回列表视图。
type BackMsg struct{}

// ThreadLoadedMsg 选中邮件与其会话线程加载完成。
type ThreadLoadedMsg struct {
	Message *domain.Message
	Thread  []domain.Message
}

// ActionMsg 请求父模型对当前邮件执行操作。
type ActionMsg struct {
	Action  string
	Message domain.Message
}

// 详情视图支持的操作名。
const (
	ActionReply   = "reply"
	ActionForward = "forward"
	ActionStar    = "star"
	ActionUnread  = "unread"
	ActionTrash   = "trash"
	ActionDelete  = "delete"
	ActionRestore = "restore"
)

// Model 邮件详情视图模型。
type Model struct {
	loader   ThreadLoader
	message  *domain.Message
	thread   []domain.Message
	viewport viewport.Model
	keys     *ui.KeyMap
	width    int
	height   int
	loading  bool
}

// New 创建详情视图。
func New(loader ThreadLoader, k *ui.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		loader:   loader,
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init 详情视图无初始命令。
func (m Model) Init() tea.Cmd {
	return nil
}

// Load 返回加载邮件与会话线程的命令。
func (m Model) Load(id string) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		message, ok, err := loader.GetMessage(id)
		if err != nil || !ok {
			return ThreadLoadedMsg{}
		}

		thread, err := loader.GetThread(message.ThreadID)
		if err != nil {
			thread = nil
		}
		return ThreadLoadedMsg{Message: message, Thread: thread}
	}
}

// SetLoading 切换加载占位状态。
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// Message 当前展示的邮件。
func (m Model) Message() *domain.Message {
	return m.message
}

// Update 处理详情视图的消息。
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ThreadLoadedMsg:
		m.message = msg.Message
		m.thread = msg.Thread
		m.loading = false
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if m.message == nil {
			if key.Matches(msg, m.keys.Back) {
				return m, func() tea.Msg { return BackMsg{} }
			}
			break
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Reply):
			return m, m.action(ActionReply)

		case key.Matches(msg, m.keys.Forward):
			return m, m.action(ActionForward)

		case key.Matches(msg, m.keys.ToggleStar):
			return m, m.action(ActionStar)

		case key.Matches(msg, m.keys.ToggleRead):
			return m, m.action(ActionUnread)

		case key.Matches(msg, m.keys.Trash):
			if m.message.Folder != domain.FolderTrash {
				return m, m.action(ActionTrash)
			}

		case key.Matches(msg, m.keys.Delete):
			if m.message.Folder == domain.FolderTrash {
				return m, m.action(ActionDelete)
			}

		case key.Matches(msg, m.keys.Restore):
			if m.message.Folder == domain.FolderTrash {
				return m, m.action(ActionRestore)
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) action(name string) tea.Cmd {
	message := *m.message
	return func() tea.Msg {
		return ActionMsg{Action: name, Message: message}
	}
}

// View 渲染详情视图。
func (m Model) View() string {
	if m.loading {
		return m.centered("Loading message...")
	}
	if m.message == nil {
		return m.centered("Message not found.")
	}
	return m.viewport.View()
}

func (m Model) centered(text string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(text)
}

// renderContent 组装视口内容：邮件头、正文、附件与线程历史。
func (m Model) renderContent() string {
	msg := m.message
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(msg.Subject))

	folderBadge := theme.FolderStyle(msg.Folder).Render(theme.FolderLabel(msg.Folder))
	badges := folderBadge
	if msg.IsStarred {
		badges = lipgloss.JoinHorizontal(lipgloss.Top, badges, "  ", theme.StarStyle.Render("★ starred"))
	}
	sections = append(sections, badges)
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	sections = append(sections, fmt.Sprintf(
		"%s  %s",
		metaStyle.Render("From:"),
		valStyle.Render(formatUser(msg.From)),
	))
	if len(msg.To) > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("To:"),
			valStyle.Render(formatUsers(msg.To)),
		))
	}
	if len(msg.Cc) > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("Cc:"),
			valStyle.Render(formatUsers(msg.Cc)),
		))
	}
	sections = append(sections, fmt.Sprintf(
		"%s  %s",
		metaStyle.Render("Date:"),
		valStyle.Render(msg.Timestamp.Format("2006-01-02 15:04")),
	))

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", sepWidth(m.width)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	sections = append(sections, msg.Body)

	if len(msg.Attachments) > 0 {
		sections = append(sections, "")
		sections = append(sections, metaStyle.Render(
			fmt.Sprintf("Attachments (%d)", len(msg.Attachments)),
		))
		for _, a := range msg.Attachments {
			sections = append(sections, fmt.Sprintf(
				"  ⎘ %s  %s",
				valStyle.Render(a.Filename),
				metaStyle.Render(formatSize(a.Size)),
			))
		}
	}

	// 线程里除当前邮件外的历史，按时间升序
	var history []domain.Message
	for _, t := range m.thread {
		if t.ID != msg.ID {
			history = append(history, t)
		}
	}

	if len(history) > 0 {
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
		sections = append(sections, headerStyle.Render(
			fmt.Sprintf("Conversation (%d earlier)", len(history)),
		))
		sections = append(sections, "")

		authorStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
		timeStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

		for _, t := range history {
			header := fmt.Sprintf(
				"%s  %s",
				authorStyle.Render(formatUser(t.From)),
				timeStyle.Render(t.Timestamp.Format("2006-01-02 15:04")),
			)
			sections = append(sections, header)
			sections = append(sections, t.Body)
			sections = append(sections, "")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize 更新视图尺寸。
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}

func formatUser(u domain.User) string {
	if u.Name == "" {
		return u.Email
	}
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}

func formatUsers(users []domain.User) string {
	parts := make([]string, len(users))
	for i, u := range users {
		parts[i] = formatUser(u)
	}
	return strings.Join(parts, ", ")
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func sepWidth(w int) int {
	w -= 4
	if w < 10 {
		return 10
	}
	if w > 80 {
		return 80
	}
	return w
}
