package mailapi

import (
	"sort"
	"strings"

	"webmail/client/internal/domain"
)

// MessagePage 一页文件夹邮件及切片前的匹配总数。
type MessagePage struct {
	Messages []domain.Message
	Total    int
}

// ListMessages 按文件夹分页列出邮件，时间戳降序（最新在前）。
//
// 页码与页大小不做越界校验，超出范围自然得到空切片。
func (c *Client) ListMessages(folder domain.Folder, page, pageSize int) (*MessagePage, error) {
	c.delay()

	messages, err := c.loadMessages()
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if m.Folder == folder {
			matched = append(matched, m)
		}
	}
	sortByTimestampDesc(matched)

	total := len(matched)
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return &MessagePage{Messages: []domain.Message{}, Total: total}, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &MessagePage{Messages: matched[start:end], Total: total}, nil
}

// GetMessage 按 ID 查找邮件，未命中返回 ok=false 而不是错误。
func (c *Client) GetMessage(id string) (*domain.Message, bool, error) {
	c.delay()

	messages, err := c.loadMessages()
	if err != nil {
		return nil, false, err
	}

	for i := range messages {
		if messages[i].ID == id {
			m := messages[i]
			return &m, true, nil
		}
	}
	return nil, false, nil
}

// GetThread 返回同一会话下的全部邮件，时间戳升序。
//
// 会话按对话自上而下阅读，排序方向与文件夹列表相反。
func (c *Client) GetThread(threadID string) ([]domain.Message, error) {
	c.delay()

	messages, err := c.loadMessages()
	if err != nil {
		return nil, err
	}

	thread := make([]domain.Message, 0, 4)
	for _, m := range messages {
		if m.InThread(threadID) {
			thread = append(thread, m)
		}
	}
	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].Timestamp.Before(thread[j].Timestamp)
	})
	return thread, nil
}

// Search 在主题、正文、发件人名称与发件人邮箱上做大小写不敏感的子串匹配。
//
// folder 为空时默认搜索除回收站外的全部文件夹：回收站被有意排除在
// 全局搜索之外。结果时间戳降序，不分页。
func (c *Client) Search(query string, folder domain.Folder) ([]domain.Message, error) {
	c.delay()

	messages, err := c.loadMessages()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if folder != "" {
			if m.Folder != folder {
				continue
			}
		} else if m.Folder == domain.FolderTrash {
			continue
		}

		if matchesQuery(&m, needle) {
			results = append(results, m)
		}
	}
	sortByTimestampDesc(results)
	return results, nil
}

func matchesQuery(m *domain.Message, needle string) bool {
	return strings.Contains(strings.ToLower(m.Subject), needle) ||
		strings.Contains(strings.ToLower(m.Body), needle) ||
		strings.Contains(strings.ToLower(m.From.Name), needle) ||
		strings.Contains(strings.ToLower(m.From.Email), needle)
}

func sortByTimestampDesc(messages []domain.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.After(messages[j].Timestamp)
	})
}
