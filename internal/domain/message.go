package domain

import "time"

// Message 表示一封邮件。ID 一经创建不再变化，字段修改总是整体重写后持久化。
type Message struct {
	ID          string       `json:"id"`
	From        User         `json:"from"`
	To          []User       `json:"to"`
	Cc          []User       `json:"cc,omitempty"`
	Bcc         []User       `json:"bcc,omitempty"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Timestamp   time.Time    `json:"timestamp"`
	IsRead      bool         `json:"isRead"`
	IsStarred   bool         `json:"isStarred"`
	Folder      Folder       `json:"folder"`
	Attachments []Attachment `json:"attachments,omitempty"`
	// ThreadID 将相关邮件聚合为会话，为空表示单独成会话。
	// 会话归属不与 ReplyTo 做一致性校验。
	ThreadID string `json:"threadId,omitempty"`
	// ReplyTo 指向被回复邮件的 ID，不强制引用完整性。
	ReplyTo string `json:"replyTo,omitempty"`
}

// InThread 判断邮件是否属于指定会话。
func (m *Message) InThread(threadID string) bool {
	return threadID != "" && m.ThreadID == threadID
}
