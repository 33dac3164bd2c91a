package messagelist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"webmail/client/internal/domain"
	"webmail/client/internal/ui/theme"
)

// MessageItem 把邮件包装成 bubbles/list 的列表项。
type MessageItem struct {
	Message domain.Message
}

// FilterValue 模糊过滤用的字符串（列表自带过滤已停用，保留接口约定）。
func (i MessageItem) FilterValue() string { return i.Message.Subject }

// Title 列表项标题。
func (i MessageItem) Title() string { return i.Message.Subject }

// Description 列表项摘要行。
func (i MessageItem) Description() string {
	return i.Message.From.Name + " | " + trimSnippet(i.Message.Body, 60) +
		" | " + relativeTime(i.Message.Timestamp)
}

// ItemDelegate 单行渲染邮件列表项。
type ItemDelegate struct{}

// Height 每项占用的行数。
func (d ItemDelegate) Height() int { return 1 }

// Spacing 项与项之间的空行数。
func (d ItemDelegate) Spacing() int { return 0 }

// Update 逐项消息处理（暂无）。
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render 绘制一行：未读标记、星标、发件人、主题与相对时间。
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MessageItem)
	if !ok {
		return
	}

	msg := mi.Message
	isSelected := index == m.Index()

	prefix := " "
	if !msg.IsRead {
		prefix = "●"
	}

	star := " "
	if msg.IsStarred {
		star = theme.StarStyle.Render("★")
	}

	correspondent := correspondentLabel(msg)

	timeStr := theme.DimmedStyle.Render(relativeTime(msg.Timestamp))

	attach := ""
	if len(msg.Attachments) > 0 {
		attach = theme.DimmedStyle.Render(" ⎘")
	}

	subject := msg.Subject
	if !msg.IsRead {
		subject = theme.UnreadStyle.Render(subject)
		correspondent = theme.UnreadStyle.Render(correspondent)
	}

	line := fmt.Sprintf(
		"%s %s %-24s %s%s  %s",
		prefix, star, correspondent, subject, attach, timeStr,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// correspondentLabel 收件箱显示发件人，其余文件夹显示第一个收件人。
func correspondentLabel(msg domain.Message) string {
	if msg.Folder == domain.FolderInbox || msg.Folder == domain.FolderTrash {
		if msg.From.Name != "" {
			return msg.From.Name
		}
		return msg.From.Email
	}

	if len(msg.To) == 0 {
		return "(no recipients)"
	}
	label := msg.To[0].Name
	if label == "" {
		label = msg.To[0].Email
	}
	if len(msg.To) > 1 {
		label = fmt.Sprintf("%s +%d", label, len(msg.To)-1)
	}
	return "To: " + label
}

// relativeTime 人类友好的相对时间。
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 02")
	}
}

// trimSnippet 正文摘要截断，供窄终端下的描述行使用。
func trimSnippet(body string, max int) string {
	body = strings.ReplaceAll(body, "\n", " ")
	if len(body) <= max {
		return body
	}
	return body[:max] + "…"
}
