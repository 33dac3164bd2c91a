// Package compose 写信视图：新邮件、回复、转发与草稿编辑共用一张表单。
package compose

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"webmail/client/internal/domain"
	"webmail/client/internal/mailapi"
	"webmail/client/internal/ui/theme"
)

// SendRequestedMsg 用户选择发送。
type SendRequestedMsg struct {
	Draft mailapi.Draft
}

// SaveDraftRequestedMsg 用户选择存为草稿。
type SaveDraftRequestedMsg struct {
	Draft mailapi.Draft
}

// CancelMsg 用户放弃写信。
type CancelMsg struct{}

// 表单最后一个字段选择的动作。
const (
	actionSend = "send"
	actionSave = "save"
)

// formBindings 把表单字段值放在堆上，保证 huh 持有的 Value() 指针
// 在 Bubble Tea 模型拷贝之间保持有效。
type formBindings struct {
	to      string
	cc      string
	subject string
	body    string
	action  string
}

// Model 写信视图模型。
type Model struct {
	form     *huh.Form
	fb       *formBindings
	draftID  string
	threadID string
	replyTo  string
	title    string
	errText  string
	width    int
	height   int
}

// New 创建写信视图。
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{action: actionSend},
		width:  width,
		height: height,
	}
}

// StartNew 初始化一封空白新邮件。
func (m *Model) StartNew() tea.Cmd {
	m.reset()
	m.title = "New Message"
	m.form = m.buildForm()
	return m.form.Init()
}

// StartReply 以回复形式初始化：收件人为原发件人，沿用会话线程。
func (m *Model) StartReply(original domain.Message) tea.Cmd {
	m.reset()
	m.title = "Reply"
	m.fb.to = original.From.Email
	m.fb.subject = replySubject(original.Subject)
	m.threadID = original.ThreadID
	m.replyTo = original.ID
	m.form = m.buildForm()
	return m.form.Init()
}

// StartForward 以转发形式初始化：正文引用原件，收件人留空。
func (m *Model) StartForward(original domain.Message) tea.Cmd {
	m.reset()
	m.title = "Forward"
	m.fb.subject = forwardSubject(original.Subject)
	m.fb.body = forwardBody(original)
	m.form = m.buildForm()
	return m.form.Init()
}

// StartDraft 打开已有草稿继续编辑，提交时原地覆盖。
func (m *Model) StartDraft(draft domain.Message) tea.Cmd {
	m.reset()
	m.title = "Edit Draft"
	m.draftID = draft.ID
	m.fb.to = joinEmails(draft.To)
	m.fb.cc = joinEmails(draft.Cc)
	m.fb.subject = draft.Subject
	m.fb.body = draft.Body
	m.fb.action = actionSave
	m.threadID = draft.ThreadID
	m.replyTo = draft.ReplyTo
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError 显示发送失败的原因并重建表单，保留已输入的内容。
func (m *Model) SetError(text string) tea.Cmd {
	m.errText = text
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) reset() {
	*m.fb = formBindings{action: actionSend}
	m.draftID = ""
	m.threadID = ""
	m.replyTo = ""
	m.errText = ""
}

// Update 处理写信视图的消息。
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View 渲染写信视图。
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render(m.title)}
	if m.errText != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errText))
	}
	sections = append(sections, m.form.View())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize 更新视图尺寸。
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("To").
				Placeholder("alice@example.com, bob@example.com").
				Value(&m.fb.to).
				Validate(validateRecipients),
			huh.NewInput().
				Title("Cc").
				Placeholder("optional").
				Value(&m.fb.cc),
			huh.NewInput().
				Title("Subject").
				Value(&m.fb.subject),
			huh.NewText().
				Title("Body").
				Value(&m.fb.body),
			huh.NewSelect[string]().
				Title("Action").
				Options(
					huh.NewOption("Send", actionSend),
					huh.NewOption("Save as draft", actionSave),
				).
				Value(&m.fb.action),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithShowHelp(false)
}

func (m Model) handleSubmit() tea.Cmd {
	draft := mailapi.Draft{
		ID:       m.draftID,
		To:       parseRecipients(m.fb.to),
		Cc:       parseRecipients(m.fb.cc),
		Subject:  m.fb.subject,
		Body:     m.fb.body,
		ThreadID: m.threadID,
		ReplyTo:  m.replyTo,
	}

	if m.fb.action == actionSave {
		return func() tea.Msg { return SaveDraftRequestedMsg{Draft: draft} }
	}
	return func() tea.Msg { return SendRequestedMsg{Draft: draft} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// parseRecipients 把逗号分隔的地址串解析成收件人列表。
func parseRecipients(raw string) []domain.User {
	var users []domain.User
	for _, part := range strings.Split(raw, ",") {
		email := strings.TrimSpace(part)
		if email == "" {
			continue
		}
		users = append(users, domain.User{Email: email})
	}
	return users
}

func joinEmails(users []domain.User) string {
	parts := make([]string, len(users))
	for i, u := range users {
		parts[i] = u.Email
	}
	return strings.Join(parts, ", ")
}

func validateRecipients(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("at least one recipient is required")
	}
	return nil
}

func replySubject(subject string) string {
	if strings.HasPrefix(subject, "Re: ") {
		return subject
	}
	return "Re: " + subject
}

func forwardSubject(subject string) string {
	if strings.HasPrefix(subject, "Fwd: ") {
		return subject
	}
	return "Fwd: " + subject
}

func forwardBody(original domain.Message) string {
	var b strings.Builder
	b.WriteString("\n\n---------- Forwarded message ----------\n")
	fmt.Fprintf(&b, "From: %s <%s>\n", original.From.Name, original.From.Email)
	fmt.Fprintf(&b, "Date: %s\n", original.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Subject: %s\n\n", original.Subject)
	b.WriteString(original.Body)
	return b.String()
}
