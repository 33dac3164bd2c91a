// Package mailbox 维护邮箱视图状态：当前文件夹、当前页、搜索结果与选中邮件。
//
// 所有操作遵循 Idle → Loading → Idle 的状态机：委托数据访问层，成功后
// 更新派生状态。读写失败在本层吞掉并记录日志（界面上的尽力而为操作），
// 只有发送与存草稿把错误抛回调用方。
package mailbox

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"webmail/client/internal/domain"
	"webmail/client/internal/mailapi"
)

// API 邮箱状态依赖的数据访问层操作子集。
type API interface {
	ListMessages(folder domain.Folder, page, pageSize int) (*mailapi.MessagePage, error)
	Search(query string, folder domain.Folder) ([]domain.Message, error)
	SendMessage(draft mailapi.Draft) (*domain.Message, error)
	SaveDraft(draft mailapi.Draft) (*domain.Message, error)
	SetRead(id string, read bool) error
	SetStarred(id string, starred bool) error
	MoveToTrash(id string) error
	PermanentlyDelete(id string) error
	Restore(id string, target domain.Folder) error
}

// State 邮箱视图状态容器。
//
// 互斥锁只用来保护从界面回调读写字段；逻辑上仍是单写者模型。
// generation 是单调递增的加载代次：快速连续切换文件夹时，旧加载的
// 响应因代次落后而被丢弃，不会覆盖新状态。
type State struct {
	api    API
	logger *zap.Logger

	mu             sync.Mutex
	pageSize       int
	messages       []domain.Message
	currentMessage *domain.Message
	currentFolder  domain.Folder
	totalCount     int
	currentPage    int
	searchQuery    string
	isLoading      bool
	generation     uint64
}

// Snapshot 某一时刻的视图状态副本，供渲染使用。
type Snapshot struct {
	Messages       []domain.Message
	CurrentMessage *domain.Message
	CurrentFolder  domain.Folder
	TotalCount     int
	CurrentPage    int
	SearchQuery    string
	IsLoading      bool
	PageSize       int
}

// TotalPages 根据总数与页大小计算总页数，至少为 1。
func (s Snapshot) TotalPages() int {
	if s.PageSize <= 0 || s.TotalCount <= 0 {
		return 1
	}
	pages := (s.TotalCount + s.PageSize - 1) / s.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// New 创建邮箱状态，初始视图为收件箱第一页（尚未加载）。
func New(api API, logger *zap.Logger, pageSize int) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return &State{
		api:           api,
		logger:        logger,
		pageSize:      pageSize,
		currentFolder: domain.FolderInbox,
		currentPage:   1,
	}
}

// Snapshot 返回当前视图状态的副本。
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]domain.Message, len(s.messages))
	copy(messages, s.messages)

	var current *domain.Message
	if s.currentMessage != nil {
		m := *s.currentMessage
		current = &m
	}

	return Snapshot{
		Messages:       messages,
		CurrentMessage: current,
		CurrentFolder:  s.currentFolder,
		TotalCount:     s.totalCount,
		CurrentPage:    s.currentPage,
		SearchQuery:    s.searchQuery,
		IsLoading:      s.isLoading,
		PageSize:       s.pageSize,
	}
}

// SelectMessage 选中一封邮件用于详情展示，传 nil 表示取消选中。
func (s *State) SelectMessage(m *domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m == nil {
		s.currentMessage = nil
		return
	}
	copied := *m
	s.currentMessage = &copied
}

// LoadFolder 加载指定文件夹的某一页并清空搜索状态。
func (s *State) LoadFolder(folder domain.Folder, page int) {
	gen := s.beginLoad()

	result, err := s.api.ListMessages(folder, page, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// 已被更新的加载取代，丢弃过期响应
		return
	}
	s.isLoading = false

	if err != nil {
		s.logger.Error("failed to load folder",
			zap.String("folder", string(folder)),
			zap.Int("page", page),
			zap.Error(err))
		return
	}

	s.searchQuery = ""
	s.messages = result.Messages
	s.totalCount = result.Total
	s.currentPage = page
	s.currentFolder = folder
}

// Search 在当前文件夹内搜索。
//
// 空白查询等价于回到当前文件夹第一页；否则展示完整的未分页结果集。
func (s *State) Search(query string) {
	if strings.TrimSpace(query) == "" {
		s.LoadFolder(s.folder(), 1)
		return
	}

	gen := s.beginLoad()

	s.mu.Lock()
	s.searchQuery = query
	folder := s.currentFolder
	s.mu.Unlock()

	results, err := s.api.Search(query, folder)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.isLoading = false

	if err != nil {
		s.logger.Error("failed to search messages", zap.String("query", query), zap.Error(err))
		return
	}

	s.messages = results
	s.totalCount = len(results)
	s.currentPage = 1
}

// Refresh 重放最近一次的查询：搜索激活时重新搜索，否则重载当前文件夹页。
// 在每次修改之后调用，保证可见列表与存储一致。
func (s *State) Refresh() {
	s.mu.Lock()
	query := s.searchQuery
	folder := s.currentFolder
	page := s.currentPage
	s.mu.Unlock()

	if query != "" {
		s.Search(query)
		return
	}
	s.LoadFolder(folder, page)
}

// Send 发送邮件。失败时错误抛回调用方，由写信界面展示。
//
// 仅当当前正在浏览已发送或草稿箱时刷新列表，避免无关文件夹的多余加载。
func (s *State) Send(draft mailapi.Draft) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if _, err := s.api.SendMessage(draft); err != nil {
		s.logger.Error("failed to send message", zap.Error(err))
		return err
	}

	if folder := s.folder(); folder == domain.FolderSent || folder == domain.FolderDrafts {
		s.LoadFolder(folder, s.page())
	}
	return nil
}

// SaveDraft 保存草稿。失败时错误抛回调用方。
func (s *State) SaveDraft(draft mailapi.Draft) error {
	if _, err := s.api.SaveDraft(draft); err != nil {
		s.logger.Error("failed to save draft", zap.Error(err))
		return err
	}

	if s.folder() == domain.FolderDrafts {
		s.LoadFolder(domain.FolderDrafts, s.page())
	}
	return nil
}

// SetRead 设置已读标记：委托后乐观更新本地缓存，免去整页重载。
func (s *State) SetRead(id string, read bool) {
	if err := s.api.SetRead(id, read); err != nil {
		s.logger.Error("failed to mark message read", zap.String("id", id), zap.Error(err))
		return
	}
	s.patchLocal(id, func(m *domain.Message) {
		m.IsRead = read
	})
}

// SetStarred 设置星标，处理方式与 SetRead 一致。
func (s *State) SetStarred(id string, starred bool) {
	if err := s.api.SetStarred(id, starred); err != nil {
		s.logger.Error("failed to mark message starred", zap.String("id", id), zap.Error(err))
		return
	}
	s.patchLocal(id, func(m *domain.Message) {
		m.IsStarred = starred
	})
}

// MoveToTrash 把邮件移入回收站并刷新列表。
func (s *State) MoveToTrash(id string) {
	if err := s.api.MoveToTrash(id); err != nil {
		s.logger.Error("failed to move message to trash", zap.String("id", id), zap.Error(err))
		return
	}
	s.Refresh()
}

// PermanentlyDelete 彻底删除邮件，刷新列表并在必要时清除选中状态。
func (s *State) PermanentlyDelete(id string) {
	if err := s.api.PermanentlyDelete(id); err != nil {
		s.logger.Error("failed to delete message", zap.String("id", id), zap.Error(err))
		return
	}
	s.Refresh()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentMessage != nil && s.currentMessage.ID == id {
		s.currentMessage = nil
	}
}

// Restore 把邮件从回收站恢复到目标文件夹并刷新列表。
func (s *State) Restore(id string, target domain.Folder) {
	if err := s.api.Restore(id, target); err != nil {
		s.logger.Error("failed to restore message",
			zap.String("id", id),
			zap.String("target", string(target)),
			zap.Error(err))
		return
	}
	s.Refresh()
}

// beginLoad 进入加载状态并领取新的加载代次。
func (s *State) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isLoading = true
	s.generation++
	return s.generation
}

func (s *State) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = v
}

func (s *State) folder() domain.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFolder
}

func (s *State) page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage
}

// patchLocal 按 ID 修补本地缓存中的邮件（列表项与选中项），是所有
// 单字段乐观更新共用的入口。
func (s *State) patchLocal(id string, patch func(*domain.Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			patch(&s.messages[i])
			break
		}
	}
	if s.currentMessage != nil && s.currentMessage.ID == id {
		patch(s.currentMessage)
	}
}
