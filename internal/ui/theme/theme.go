// Package theme 终端界面的配色与样式定义。
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"webmail/client/internal/domain"
)

// 自适应配色（深色终端值 / 浅色终端值）。
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle 顶部标题栏样式。
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle 底部状态栏样式。
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ListItemStyle 列表普通行样式。
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle 列表选中行样式。
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// UnreadStyle 未读邮件加粗显示。
var UnreadStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// StarStyle 星标指示符样式。
var StarStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// DimmedStyle 次要信息（时间、已读邮件）的弱化样式。
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// ErrorStyle 错误提示样式。
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// PanelStyle 详情面板的边框样式。
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// HelpStyle 快捷键提示样式。
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// FolderStyle 按文件夹返回彩色徽标样式。
func FolderStyle(folder domain.Folder) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch folder {
	case domain.FolderInbox:
		return base.Foreground(ColorBlue)
	case domain.FolderSent:
		return base.Foreground(ColorGreen)
	case domain.FolderDrafts:
		return base.Foreground(ColorYellow)
	case domain.FolderTrash:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// FolderLabel 文件夹在界面上的显示名。
func FolderLabel(folder domain.Folder) string {
	switch folder {
	case domain.FolderInbox:
		return "Inbox"
	case domain.FolderSent:
		return "Sent"
	case domain.FolderDrafts:
		return "Drafts"
	case domain.FolderTrash:
		return "Trash"
	default:
		return string(folder)
	}
}
