// Package app Bubble Tea 根模型：视图路由、整屏布局与各子视图的编排。
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"webmail/client/internal/domain"
	"webmail/client/internal/mailapi"
	"webmail/client/internal/mailbox"
	"webmail/client/internal/session"
	"webmail/client/internal/ui"
	"webmail/client/internal/ui/authform"
	"webmail/client/internal/ui/compose"
	"webmail/client/internal/ui/messagelist"
	"webmail/client/internal/ui/reader"
	"webmail/client/internal/ui/theme"
)

// ViewState 当前激活的视图。
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewList
	ViewReader
	ViewCompose
	ViewHelp
)

// authResultMsg 登录或注册的结果。
type authResultMsg struct {
	err error
}

// loggedOutMsg 退出登录完成。
type loggedOutMsg struct{}

// composeResultMsg 发送或存草稿的结果。
type composeResultMsg struct {
	saved bool
	err   error
}

// Model Bubble Tea 根模型。
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *ui.KeyMap
	logger       *zap.Logger

	session *session.Session
	mailbox *mailbox.State

	authView    authform.Model
	messageList messagelist.Model
	readerView  reader.Model
	composeView compose.Model

	ready     bool
	statusMsg string
}

// New 创建根模型。已有持久会话时直接进入邮件列表，否则先认证。
func New(sess *session.Session, state *mailbox.State, api *mailapi.Client, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := ui.DefaultKeyMap()

	view := ViewAuth
	if sess.IsAuthenticated() {
		view = ViewList
	}

	return Model{
		currentView: view,
		keys:        keys,
		logger:      logger,
		session:     sess,
		mailbox:     state,
		authView:    authform.New(80, 24),
		messageList: messagelist.New(state, keys, 80, 24),
		readerView:  reader.New(api, keys, 80, 24),
		composeView: compose.New(80, 24),
	}
}

// Init 返回初始命令。
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewAuth {
		return m.authView.Start()
	}
	return m.messageList.Init()
}

// Update 处理消息并分发给激活视图。
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.authView.SetSize(w, h)
		m.messageList.SetSize(w, h)
		m.readerView.SetSize(w, h)
		m.composeView.SetSize(w, h)
		// 转发给激活视图，让 huh 表单重新计算布局
		return m.updateActiveView(msg)

	case authform.LoginSubmittedMsg:
		m.statusMsg = ""
		return m, m.login(msg.Email, msg.Password)

	case authform.SignupSubmittedMsg:
		m.statusMsg = ""
		return m, m.signup(msg.Name, msg.Email, msg.Password)

	case authform.CancelMsg:
		return m, tea.Quit

	case authResultMsg:
		if msg.err != nil {
			return m, m.authView.SetError(msg.err.Error())
		}
		m.currentView = ViewList
		m.statusMsg = ""
		return m, m.messageList.Init()

	case loggedOutMsg:
		m.currentView = ViewAuth
		m.statusMsg = ""
		return m, m.authView.Start()

	case messagelist.MailboxUpdatedMsg:
		// 无论当前视图是什么，列表都要吸收最新快照
		var cmd tea.Cmd
		m.messageList, cmd = m.messageList.Update(msg)
		return m, cmd

	case messagelist.SelectedMessageMsg:
		m.previousView = m.currentView
		m.currentView = ViewReader
		m.readerView.SetLoading(true)
		cmds := []tea.Cmd{m.readerView.Load(msg.Message.ID)}
		if !msg.Message.IsRead {
			cmds = append(cmds, m.setRead(msg.Message.ID, true))
		}
		return m, tea.Batch(cmds...)

	case messagelist.EditDraftRequestedMsg:
		m.previousView = m.currentView
		m.currentView = ViewCompose
		return m, m.composeView.StartDraft(msg.Message)

	case messagelist.ComposeRequestedMsg:
		m.previousView = m.currentView
		m.currentView = ViewCompose
		return m, m.composeView.StartNew()

	case messagelist.LogoutRequestedMsg:
		return m, m.logout()

	case reader.ThreadLoadedMsg:
		var cmd tea.Cmd
		m.readerView, cmd = m.readerView.Update(msg)
		return m, cmd

	case reader.BackMsg:
		m.currentView = ViewList
		return m, nil

	case reader.ActionMsg:
		return m.handleReaderAction(msg)

	case compose.SendRequestedMsg:
		return m, m.send(msg.Draft)

	case compose.SaveDraftRequestedMsg:
		return m, m.saveDraft(msg.Draft)

	case compose.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case composeResultMsg:
		if msg.err != nil {
			return m, m.composeView.SetError(msg.err.Error())
		}
		m.currentView = ViewList
		if msg.saved {
			m.statusMsg = "Draft saved"
		} else {
			m.statusMsg = "Message sent"
		}
		return m, m.snapshotCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == ViewList && !m.messageList.Searching() {
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewAuth || m.currentView == ViewCompose {
				break
			}
			if m.currentView == ViewList && m.messageList.Searching() {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	return m.updateActiveView(msg)
}

// handleReaderAction 执行详情视图发出的邮件操作。
func (m Model) handleReaderAction(msg reader.ActionMsg) (tea.Model, tea.Cmd) {
	message := msg.Message

	switch msg.Action {
	case reader.ActionReply:
		m.currentView = ViewCompose
		return m, m.composeView.StartReply(message)

	case reader.ActionForward:
		m.currentView = ViewCompose
		return m, m.composeView.StartForward(message)

	case reader.ActionStar:
		starred := true
		if current := m.readerView.Message(); current != nil {
			starred = !current.IsStarred
		}
		return m, tea.Sequence(
			m.setStarred(message.ID, starred),
			m.readerView.Load(message.ID),
		)

	case reader.ActionUnread:
		// 标记未读后回到列表，符合“留着稍后再看”的用法
		m.currentView = ViewList
		return m, m.setRead(message.ID, false)

	case reader.ActionTrash:
		m.currentView = ViewList
		m.statusMsg = "Moved to Trash"
		return m, m.moveToTrash(message.ID)

	case reader.ActionDelete:
		m.currentView = ViewList
		m.statusMsg = "Message deleted"
		return m, m.permanentlyDelete(message.ID)

	case reader.ActionRestore:
		m.currentView = ViewList
		m.statusMsg = "Restored to Inbox"
		return m, m.restore(message.ID, domain.FolderInbox)
	}

	return m, nil
}

// updateActiveView 把消息分发给当前激活的视图。
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewList:
		m.messageList, cmd = m.messageList.Update(msg)
	case ViewReader:
		m.readerView, cmd = m.readerView.Update(msg)
	case ViewCompose:
		m.composeView, cmd = m.composeView.Update(msg)
	case ViewHelp:
		// 帮助视图是静态文本
	}

	return m, cmd
}

// View 渲染整屏界面。
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAuth:
		return m.authView.View()
	case ViewList:
		return m.messageList.View()
	case ViewReader:
		return m.readerView.View()
	case ViewCompose:
		return m.composeView.View()
	case ViewHelp:
		return m.renderHelp()
	default:
		return ""
	}
}

func (m Model) headerTitle() string {
	if m.currentView == ViewAuth {
		return "Webmail"
	}

	snap := m.messageList.Snapshot()
	title := fmt.Sprintf("Webmail — %s", theme.FolderLabel(snap.CurrentFolder))
	if snap.SearchQuery != "" {
		return fmt.Sprintf("%s — search: %q", title, snap.SearchQuery)
	}
	if snap.TotalCount > 0 {
		title = fmt.Sprintf(
			"%s (%d messages, page %d/%d)",
			title, snap.TotalCount, snap.CurrentPage, snap.TotalPages(),
		)
	}
	return title
}

func (m Model) headerStatus() string {
	if m.currentView == ViewAuth {
		return "not signed in"
	}
	if m.messageList.Snapshot().IsLoading {
		return "loading..."
	}
	if user := m.session.CurrentUser(); user != nil {
		return user.Email
	}
	return ""
}

// statusLine 底部状态栏内容：操作反馈优先，否则显示快捷键提示。
func (m Model) statusLine() string {
	if m.statusMsg != "" && m.currentView == ViewList {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewAuth:
		return "enter submit | ctrl+t switch mode | esc quit"
	case ViewReader:
		return "esc back | R reply | f forward | s star | m unread | d trash | j/k scroll"
	case ViewCompose:
		return "enter next field | esc cancel"
	case ViewHelp:
		return "? close help | esc back"
	default:
		return "q quit | ? help | c compose | / search | 1-4 folders | n/p pages"
	}
}

// renderHelp 按键位分组渲染完整帮助。
func (m Model) renderHelp() string {
	var sections []string

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, headerStyle.Render("Keyboard shortcuts"))
	sections = append(sections, "")

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	descStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			help := binding.Help()
			sections = append(sections, fmt.Sprintf(
				"  %s  %s",
				keyStyle.Width(10).Render(help.Key),
				descStyle.Render(help.Desc),
			))
		}
		sections = append(sections, "")
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// login 返回执行登录的命令。调用阻塞在模拟延迟上。
func (m Model) login(email, password string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return authResultMsg{err: sess.Login(email, password)}
	}
}

func (m Model) signup(name, email, password string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return authResultMsg{err: sess.Signup(name, email, password)}
	}
}

func (m Model) logout() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		sess.Logout()
		return loggedOutMsg{}
	}
}

func (m Model) send(draft mailapi.Draft) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		return composeResultMsg{err: state.Send(draft)}
	}
}

func (m Model) saveDraft(draft mailapi.Draft) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		return composeResultMsg{saved: true, err: state.SaveDraft(draft)}
	}
}

func (m Model) setRead(id string, read bool) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.SetRead(id, read)
		return messagelist.MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) setStarred(id string, starred bool) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.SetStarred(id, starred)
		return messagelist.MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) moveToTrash(id string) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.MoveToTrash(id)
		return messagelist.MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) permanentlyDelete(id string) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.PermanentlyDelete(id)
		return messagelist.MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

func (m Model) restore(id string, target domain.Folder) tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		state.Restore(id, target)
		return messagelist.MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}

// snapshotCmd 把当前邮箱快照推给列表视图。
func (m Model) snapshotCmd() tea.Cmd {
	state := m.mailbox
	return func() tea.Msg {
		return messagelist.MailboxUpdatedMsg{Snapshot: state.Snapshot()}
	}
}
