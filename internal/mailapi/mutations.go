package mailapi

import (
	"fmt"

	"webmail/client/internal/domain"
)

// SetRead 设置邮件已读标记，ID 未命中时静默成功。
func (c *Client) SetRead(id string, read bool) error {
	c.delayShort()
	return c.patchMessage(id, func(m *domain.Message) {
		m.IsRead = read
	})
}

// SetStarred 设置邮件星标，ID 未命中时静默成功。
func (c *Client) SetStarred(id string, starred bool) error {
	c.delayShort()
	return c.patchMessage(id, func(m *domain.Message) {
		m.IsStarred = starred
	})
}

// MoveToTrash 把邮件移入回收站，ID 未命中时静默成功。
func (c *Client) MoveToTrash(id string) error {
	c.delay()
	return c.patchMessage(id, func(m *domain.Message) {
		m.Folder = domain.FolderTrash
	})
}

// Restore 把邮件移入指定文件夹。
//
// 目标文件夹只校验取值合法，不限制来源与目标的组合：恢复到 sent
// 或 drafts 也被允许，保持与原始实现一致的宽松行为。
func (c *Client) Restore(id string, target domain.Folder) error {
	c.delay()

	if !target.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFolder, target)
	}
	return c.patchMessage(id, func(m *domain.Message) {
		m.Folder = target
	})
}

// PermanentlyDelete 从集合中彻底移除邮件，不可恢复；ID 未命中时静默成功。
func (c *Client) PermanentlyDelete(id string) error {
	c.delay()

	messages, err := c.loadMessages()
	if err != nil {
		return err
	}

	kept := messages[:0]
	for _, m := range messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(messages) {
		return nil
	}
	return c.saveMessages(kept)
}

// patchMessage 按 ID 定位邮件并应用修改，未命中时不报错也不落盘。
func (c *Client) patchMessage(id string, patch func(*domain.Message)) error {
	messages, err := c.loadMessages()
	if err != nil {
		return err
	}

	for i := range messages {
		if messages[i].ID == id {
			patch(&messages[i])
			return c.saveMessages(messages)
		}
	}
	return nil
}
