package mailapi

import (
	"time"

	"github.com/google/uuid"

	"webmail/client/internal/domain"
)

// noSubject 未填写主题时的占位主题。
const noSubject = "(No Subject)"

// Draft 组信输入。未填写的字段在发送或存草稿时补默认值。
type Draft struct {
	ID          string // 非空且命中已有邮件时表示原地覆盖草稿
	To          []domain.User
	Cc          []domain.User
	Bcc         []domain.User
	Subject     string
	Body        string
	Attachments []domain.Attachment
	ThreadID    string
	ReplyTo     string
}

// SendMessage 以当前用户身份发送邮件。
//
// 发出的邮件落在 sent 文件夹并标记为已读（发件人读过自己的信），
// 未指定会话时生成新的会话 ID。
func (c *Client) SendMessage(draft Draft) (*domain.Message, error) {
	c.delayLong()

	sender, ok := c.CurrentUser()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	message := c.buildMessage(draft, *sender, domain.FolderSent)
	message.ReplyTo = draft.ReplyTo

	messages, err := c.loadMessages()
	if err != nil {
		return nil, err
	}
	messages = append(messages, message)
	if err := c.saveMessages(messages); err != nil {
		return nil, err
	}
	return &message, nil
}

// SaveDraft 保存草稿。
//
// Draft.ID 命中已有邮件时原地覆盖（同一 ID，字段整体替换），否则在
// drafts 文件夹新建。草稿始终标记为已读。
func (c *Client) SaveDraft(draft Draft) (*domain.Message, error) {
	c.delay()

	owner, ok := c.CurrentUser()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	message := c.buildMessage(draft, *owner, domain.FolderDrafts)
	if draft.ID != "" {
		message.ID = draft.ID
	}

	messages, err := c.loadMessages()
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range messages {
		if messages[i].ID == message.ID {
			messages[i] = message
			replaced = true
			break
		}
	}
	if !replaced {
		messages = append(messages, message)
	}

	if err := c.saveMessages(messages); err != nil {
		return nil, err
	}
	return &message, nil
}

// buildMessage 由草稿输入构造一封完整邮件。
func (c *Client) buildMessage(draft Draft, from domain.User, folder domain.Folder) domain.Message {
	subject := draft.Subject
	if subject == "" {
		subject = noSubject
	}

	to := draft.To
	if to == nil {
		to = []domain.User{}
	}

	threadID := draft.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	}

	return domain.Message{
		ID:          uuid.NewString(),
		From:        from,
		To:          to,
		Cc:          draft.Cc,
		Bcc:         draft.Bcc,
		Subject:     subject,
		Body:        draft.Body,
		Timestamp:   time.Now().UTC(),
		IsRead:      true,
		IsStarred:   false,
		Folder:      folder,
		Attachments: draft.Attachments,
		ThreadID:    threadID,
	}
}
