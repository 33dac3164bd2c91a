package mailbox

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webmail/client/internal/auth"
	"webmail/client/internal/domain"
	"webmail/client/internal/mailapi"
	"webmail/client/internal/storage/memory"
)

var testBase = time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)

func fixtureMessages() []domain.Message {
	jane := domain.User{ID: "u-jane", Name: "Jane Smith", Email: "jane@example.com"}
	john := domain.User{ID: "u-john", Name: "John Doe", Email: "john@example.com"}

	return []domain.Message{
		{ID: "in-1", From: jane, To: []domain.User{john}, Subject: "Welcome aboard", Body: "glad to have you",
			Timestamp: testBase.Add(1 * time.Hour), Folder: domain.FolderInbox, ThreadID: "t-1"},
		{ID: "in-2", From: jane, To: []domain.User{john}, Subject: "Project update", Body: "status inside",
			Timestamp: testBase.Add(2 * time.Hour), Folder: domain.FolderInbox, ThreadID: "t-2"},
		{ID: "sent-1", From: john, To: []domain.User{jane}, Subject: "Re: Project update", Body: "thanks",
			Timestamp: testBase.Add(3 * time.Hour), Folder: domain.FolderSent, ThreadID: "t-2", IsRead: true},
		{ID: "trash-1", From: jane, To: []domain.User{john}, Subject: "Old project newsletter", Body: "archive",
			Timestamp: testBase.Add(4 * time.Hour), Folder: domain.FolderTrash, ThreadID: "t-3", IsRead: true},
	}
}

// newTestState 构造带真实数据访问层（内存存储、零延迟）的邮箱状态，
// 并登录一个测试用户。
func newTestState(t *testing.T) (*State, *mailapi.Client) {
	t.Helper()

	store := memory.NewStore()
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewTokenManager("unit-test-secret-with-32-characters!", "webmail", time.Hour)
	api := mailapi.NewClient(store, tokens, zap.NewNop(), 0)

	_, err := api.Signup("John Doe", "john@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, api.Bootstrap(nil, fixtureMessages()))

	return New(api, zap.NewNop(), 20), api
}

func TestLoadFolder(t *testing.T) {
	state, _ := newTestState(t)

	state.LoadFolder(domain.FolderInbox, 1)

	snap := state.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.Equal(t, domain.FolderInbox, snap.CurrentFolder)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, 2, snap.TotalCount)
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "in-2", snap.Messages[0].ID, "最新的邮件在前")

	t.Run("加载文件夹清空搜索状态", func(t *testing.T) {
		state.Search("project")
		require.NotEmpty(t, state.Snapshot().SearchQuery)

		state.LoadFolder(domain.FolderInbox, 1)
		assert.Empty(t, state.Snapshot().SearchQuery)
	})
}

func TestSearch(t *testing.T) {
	state, _ := newTestState(t)
	state.LoadFolder(domain.FolderInbox, 1)

	t.Run("搜索限定在当前文件夹", func(t *testing.T) {
		state.Search("project")

		snap := state.Snapshot()
		assert.Equal(t, "project", snap.SearchQuery)
		assert.Equal(t, 1, snap.CurrentPage)
		require.Len(t, snap.Messages, 1)
		assert.Equal(t, "in-2", snap.Messages[0].ID)
		assert.Equal(t, 1, snap.TotalCount, "总数等于结果集长度")
	})

	t.Run("空白查询等价于回到第一页", func(t *testing.T) {
		state.Search("   ")

		snap := state.Snapshot()
		assert.Empty(t, snap.SearchQuery)
		assert.Equal(t, domain.FolderInbox, snap.CurrentFolder)
		assert.Equal(t, 1, snap.CurrentPage)
		assert.Equal(t, 2, snap.TotalCount)
	})
}

func TestRefreshAfterMutations(t *testing.T) {
	state, _ := newTestState(t)
	state.LoadFolder(domain.FolderInbox, 1)

	t.Run("移入回收站后列表即时一致", func(t *testing.T) {
		state.MoveToTrash("in-1")

		snap := state.Snapshot()
		assert.Equal(t, 1, snap.TotalCount)
		for _, m := range snap.Messages {
			assert.NotEqual(t, "in-1", m.ID)
		}
	})

	t.Run("恢复后重新出现", func(t *testing.T) {
		state.Restore("in-1", domain.FolderInbox)

		snap := state.Snapshot()
		assert.Equal(t, 2, snap.TotalCount)
	})

	t.Run("搜索激活时刷新重放搜索", func(t *testing.T) {
		state.Search("project")
		require.Len(t, state.Snapshot().Messages, 1)

		state.MoveToTrash("in-2")

		snap := state.Snapshot()
		assert.Equal(t, "project", snap.SearchQuery)
		assert.Empty(t, snap.Messages, "被移走的邮件不再出现在当前文件夹的搜索结果里")

		state.Restore("in-2", domain.FolderInbox)
	})
}

func TestSend(t *testing.T) {
	state, api := newTestState(t)

	t.Run("浏览无关文件夹时不刷新", func(t *testing.T) {
		state.LoadFolder(domain.FolderInbox, 1)
		before := state.Snapshot()

		require.NoError(t, state.Send(mailapi.Draft{Subject: "Hi", Body: "x"}))

		after := state.Snapshot()
		assert.Equal(t, before.TotalCount, after.TotalCount)
		assert.Equal(t, domain.FolderInbox, after.CurrentFolder)
	})

	t.Run("浏览已发送时发送后刷新", func(t *testing.T) {
		state.LoadFolder(domain.FolderSent, 1)
		before := state.Snapshot().TotalCount

		require.NoError(t, state.Send(mailapi.Draft{Subject: "Another", Body: "y"}))

		after := state.Snapshot()
		assert.Equal(t, before+1, after.TotalCount)
		assert.False(t, after.IsLoading)
	})

	t.Run("未登录时错误抛回调用方", func(t *testing.T) {
		api.Logout()

		err := state.Send(mailapi.Draft{Subject: "Fails"})
		assert.ErrorIs(t, err, mailapi.ErrNotAuthenticated)
		assert.False(t, state.Snapshot().IsLoading, "失败后加载标记必须复位")
	})
}

func TestSaveDraft(t *testing.T) {
	state, api := newTestState(t)

	t.Run("浏览草稿箱时保存后刷新", func(t *testing.T) {
		state.LoadFolder(domain.FolderDrafts, 1)
		require.Zero(t, state.Snapshot().TotalCount)

		require.NoError(t, state.SaveDraft(mailapi.Draft{Subject: "Agenda", Body: "v1"}))

		assert.Equal(t, 1, state.Snapshot().TotalCount)
	})

	t.Run("未登录时错误抛回调用方", func(t *testing.T) {
		api.Logout()

		err := state.SaveDraft(mailapi.Draft{Subject: "Fails"})
		assert.ErrorIs(t, err, mailapi.ErrNotAuthenticated)
	})
}

func TestOptimisticFlagPatching(t *testing.T) {
	state, _ := newTestState(t)
	state.LoadFolder(domain.FolderInbox, 1)

	snap := state.Snapshot()
	require.NotEmpty(t, snap.Messages)
	target := snap.Messages[0]
	state.SelectMessage(&target)

	t.Run("已读标记同时修补列表与选中项", func(t *testing.T) {
		state.SetRead(target.ID, true)

		snap := state.Snapshot()
		assert.True(t, snap.Messages[0].IsRead)
		require.NotNil(t, snap.CurrentMessage)
		assert.True(t, snap.CurrentMessage.IsRead)
	})

	t.Run("星标同样走本地修补", func(t *testing.T) {
		state.SetStarred(target.ID, true)

		snap := state.Snapshot()
		assert.True(t, snap.Messages[0].IsStarred)
		assert.True(t, snap.CurrentMessage.IsStarred)
	})
}

func TestPermanentlyDelete(t *testing.T) {
	state, _ := newTestState(t)
	state.LoadFolder(domain.FolderTrash, 1)

	snap := state.Snapshot()
	require.Len(t, snap.Messages, 1)
	victim := snap.Messages[0]
	state.SelectMessage(&victim)

	state.PermanentlyDelete(victim.ID)

	after := state.Snapshot()
	assert.Zero(t, after.TotalCount)
	assert.Nil(t, after.CurrentMessage, "被删除的选中邮件必须清除")
}

// stubAPI 用于验证过期加载响应被丢弃：收件箱加载阻塞到显式放行。
type stubAPI struct {
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
}

func (s *stubAPI) ListMessages(folder domain.Folder, page, pageSize int) (*mailapi.MessagePage, error) {
	if folder == domain.FolderInbox {
		s.mu.Lock()
		started := s.started
		s.started = nil
		s.mu.Unlock()
		if started != nil {
			close(started)
		}
		<-s.release
		return &mailapi.MessagePage{Messages: []domain.Message{{ID: "stale"}}, Total: 1}, nil
	}
	return &mailapi.MessagePage{Messages: []domain.Message{{ID: "fresh"}}, Total: 1}, nil
}

func (s *stubAPI) Search(query string, folder domain.Folder) ([]domain.Message, error) {
	return nil, nil
}
func (s *stubAPI) SendMessage(draft mailapi.Draft) (*domain.Message, error) { return nil, nil }
func (s *stubAPI) SaveDraft(draft mailapi.Draft) (*domain.Message, error)  { return nil, nil }
func (s *stubAPI) SetRead(id string, read bool) error                      { return nil }
func (s *stubAPI) SetStarred(id string, starred bool) error                { return nil }
func (s *stubAPI) MoveToTrash(id string) error                             { return nil }
func (s *stubAPI) PermanentlyDelete(id string) error                       { return nil }
func (s *stubAPI) Restore(id string, target domain.Folder) error           { return nil }

func TestStaleLoadResponseDiscarded(t *testing.T) {
	stub := &stubAPI{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	state := New(stub, zap.NewNop(), 20)

	started := stub.started
	done := make(chan struct{})
	go func() {
		state.LoadFolder(domain.FolderInbox, 1)
		close(done)
	}()
	<-started

	// 旧加载仍然挂起时切换文件夹
	state.LoadFolder(domain.FolderSent, 1)

	close(stub.release)
	<-done

	snap := state.Snapshot()
	assert.Equal(t, domain.FolderSent, snap.CurrentFolder, "过期响应不得覆盖新状态")
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "fresh", snap.Messages[0].ID)
	assert.False(t, snap.IsLoading)
}

func TestSnapshotTotalPages(t *testing.T) {
	assert.Equal(t, 1, Snapshot{TotalCount: 0, PageSize: 20}.TotalPages())
	assert.Equal(t, 1, Snapshot{TotalCount: 20, PageSize: 20}.TotalPages())
	assert.Equal(t, 2, Snapshot{TotalCount: 21, PageSize: 20}.TotalPages())
	assert.Equal(t, 5, Snapshot{TotalCount: 100, PageSize: 20}.TotalPages())
}
