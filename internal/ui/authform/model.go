// Package authform 登录 / 注册表单视图。
package authform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"webmail/client/internal/ui/theme"
)

// LoginSubmittedMsg 用户提交登录表单。
type LoginSubmittedMsg struct {
	Email    string
	Password string
}

// SignupSubmittedMsg 用户提交注册表单。
type SignupSubmittedMsg struct {
	Name     string
	Email    string
	Password string
}

// CancelMsg 用户在认证界面退出。
type CancelMsg struct{}

// mode 表单当前处于登录还是注册。
type mode int

const (
	modeLogin mode = iota
	modeSignup
)

// formBindings 把表单字段值放在堆上，保证 huh 持有的 Value() 指针
// 在 Bubble Tea 模型拷贝之间保持有效。
type formBindings struct {
	name     string
	email    string
	password string
}

// Model 认证视图模型。
type Model struct {
	form    *huh.Form
	fb      *formBindings
	mode    mode
	errText string
	width   int
	height  int
}

// New 创建认证视图，初始为登录模式。
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start 按当前模式初始化表单。
func (m *Model) Start() tea.Cmd {
	if m.mode == modeSignup {
		m.form = m.buildSignupForm()
	} else {
		m.form = m.buildLoginForm()
	}
	return m.form.Init()
}

// SetError 显示提交失败的原因并重建表单，保留已输入的内容。
func (m *Model) SetError(text string) tea.Cmd {
	m.errText = text
	return m.Start()
}

// Update 处理认证视图的消息。
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// ctrl+t 在登录与注册之间切换
		if keyMsg.String() == "ctrl+t" {
			if m.mode == modeLogin {
				m.mode = modeSignup
			} else {
				m.mode = modeLogin
			}
			m.errText = ""
			return m, m.Start()
		}
	}

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

// View 渲染认证视图。
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Sign in to Webmail"
	hint := "ctrl+t create an account"
	if m.mode == modeSignup {
		titleText = "Create your account"
		hint = "ctrl+t back to sign in"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render(titleText)}
	if m.errText != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errText))
	}
	sections = append(sections, m.form.View())
	sections = append(sections, theme.HelpStyle.Render(hint))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.PanelStyle.Render(content))
}

// SetSize 更新视图尺寸。
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m *Model) buildSignupForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Your display name").
				Value(&m.fb.name),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				Description("At least 8 characters").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	if m.mode == modeSignup {
		return func() tea.Msg {
			return SignupSubmittedMsg{
				Name:     fb.name,
				Email:    fb.email,
				Password: fb.password,
			}
		}
	}
	return func() tea.Msg {
		return LoginSubmittedMsg{
			Email:    fb.email,
			Password: fb.password,
		}
	}
}

func (m Model) formWidth() int {
	w := m.width / 2
	if w < 40 {
		w = 40
	}
	if w > 72 {
		w = 72
	}
	return w
}
