// Package messagelist 邮件列表视图：文件夹浏览、分页、搜索与单键操作。
package messagelist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"webmail/client/internal/domain"
	"webmail/client/internal/mailbox"
	"webmail/client/internal/ui"
	"webmail/client/internal/ui/theme"
)

// MailboxUpdatedMsg 邮箱状态变化后携带最新快照。
type MailboxUpdatedMsg struct {
	Snapshot mailbox.Snapshot
}

// SelectedMessageMsg 用户选中一封邮件查看详情。
type SelectedMessageMsg struct {
	Message domain.Message
}

// ComposeRequestedMsg 用户请求写新邮件。
type ComposeRequestedMsg struct{}

// EditDraftRequestedMsg 用户在草稿箱里打开一封草稿继续编辑。
type EditDraftRequestedMsg struct {
	Message domain.Message
}

// LogoutRequestedMsg 用户请求退出登录。
type LogoutRequestedMsg struct{}

// Model 邮件列表视图模型。
type Model struct {
	list        list.Model
	mailbox     *mailbox.State
	keys        *ui.KeyMap
	snapshot    mailbox.Snapshot
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New 创建邮件列表视图。
func New(state *mailbox.State, k *ui.KeyMap, width, height int) Model {
	delegate := ItemDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "search messages..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		mailbox:     state,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init 加载收件箱第一页。
func (m Model) Init() tea.Cmd {
	return m.loadFolder(domain.FolderInbox, 1)
}

// Snapshot 最近一次渲染所用的邮箱快照。
func (m Model) Snapshot() mailbox.Snapshot {
	return m.snapshot
}

// Searching 搜索输入框是否持有焦点。持有时全局快捷键要让位给文本输入。
func (m Model) Searching() bool {
	return m.searchMode
}

// Update 处理列表视图的消息。
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MailboxUpdatedMsg:
		m.snapshot = msg.Snapshot
		items := make([]list.Item, len(msg.Snapshot.Messages))
		for i, message := range msg.Snapshot.Messages {
			items[i] = MessageItem{Message: message}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys 搜索输入模式下的按键处理。
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		return m, m.search(query)

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		return m, m.loadFolder(m.snapshot.CurrentFolder, 1)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys 普通模式下的按键处理。
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(MessageItem)
		if !ok {
			return m, nil
		}
		if item.Message.Folder == domain.FolderDrafts {
			return m, func() tea.Msg {
				return EditDraftRequestedMsg{Message: item.Message}
			}
		}
		return m, func() tea.Msg {
			return SelectedMessageMsg{Message: item.Message}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Compose):
		return m, func() tea.Msg { return ComposeRequestedMsg{} }

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.NextPage):
		if m.snapshot.SearchQuery == "" &&
			m.snapshot.CurrentPage < m.snapshot.TotalPages() {
			return m, m.loadFolder(m.snapshot.CurrentFolder, m.snapshot.CurrentPage+1)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.snapshot.SearchQuery == "" && m.snapshot.CurrentPage > 1 {
			return m, m.loadFolder(m.snapshot.CurrentFolder, m.snapshot.CurrentPage-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.FolderInbox):
		return m, m.loadFolder(domain.FolderInbox, 1)

	case key.Matches(msg, m.keys.FolderSent):
		return m, m.loadFolder(domain.FolderSent, 1)

	case key.Matches(msg, m.keys.FolderDrafts):
		return m, m.loadFolder(domain.FolderDrafts, 1)

	case key.Matches(msg, m.keys.FolderTrash):
		return m, m.loadFolder(domain.FolderTrash, 1)

	case key.Matches(msg, m.keys.ToggleStar):
		if item, ok := m.list.SelectedItem().(MessageItem); ok {
			return m, m.setStarred(item.Message.ID, !item.Message.IsStarred)
		}

	case key.Matches(msg, m.keys.ToggleRead):
		if item, ok := m.list.SelectedItem().(MessageItem); ok {
			return m, m.setRead(item.Message.ID, !item.Message.IsRead)
		}

	case key.Matches(msg, m.keys.Trash):
		if item, ok := m.list.SelectedItem().(MessageItem); ok {
			if item.Message.Folder != domain.FolderTrash {
				return m, m.moveToTrash(item.Message.ID)
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.list.SelectedItem().(MessageItem); ok {
			if item.Message.Folder == domain.FolderTrash {
				return m, m.permanentlyDelete(item.Message.ID)
			}
		}

	case key.Matches(msg, m.keys.Restore):
		if item, ok := m.list.SelectedItem().(MessageItem); ok {
			if item.Message.Folder == domain.FolderTrash {
				return m, m.restore(item.Message.ID, domain.FolderInbox)
			}
		}

	case key.Matches(msg, m.keys.Logout):
		return m, func() tea.Msg { return LogoutRequestedMsg{} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View 渲染邮件列表视图。
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState 列表为空时的引导文案。
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.snapshot.IsLoading {
		return style.Render("Loading messages...")
	}
	if m.snapshot.SearchQuery != "" {
		return style.Render("No messages match \"" + m.snapshot.SearchQuery + "\".")
	}
	return style.Render("This folder is empty.")
}

// SetSize 更新列表尺寸。
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}

// loadFolder 返回加载文件夹页的命令。调用阻塞在数据访问层的模拟延迟上，
// 结束后携带最新快照回到事件循环。
func (m Model) loadFolder(folder domain.Folder, page int) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.LoadFolder(folder, page)
		return MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) search(query string) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.Search(query)
		return MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) refresh() tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.Refresh()
		return MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) setRead(id string, read bool) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.SetRead(id, read)
		return MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) setStarred(id string, starred bool) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.SetStarred(id, starred)
		return MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) moveToTrash(id string) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.MoveToTrash(id)
		return MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) permanentlyDelete(id string) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.PermanentlyDelete(id)
		return MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) restore(id string, target domain.Folder) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.Restore(id, target)
		return MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}
