package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap 全局快捷键绑定。
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding

	Search   key.Binding
	Compose  key.Binding
	Refresh  key.Binding
	NextPage key.Binding
	PrevPage key.Binding

	FolderInbox  key.Binding
	FolderSent   key.Binding
	FolderDrafts key.Binding
	FolderTrash  key.Binding

	ToggleStar key.Binding
	ToggleRead key.Binding
	Trash      key.Binding
	Delete     key.Binding
	Restore    key.Binding

	Reply   key.Binding
	Forward key.Binding
	Logout  key.Binding
	Help    key.Binding
}

// DefaultKeyMap 默认快捷键方案。
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open message"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Compose: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compose"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "prev page"),
		),
		FolderInbox: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "inbox"),
		),
		FolderSent: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sent"),
		),
		FolderDrafts: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "drafts"),
		),
		FolderTrash: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "trash"),
		),
		ToggleStar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "star"),
		),
		ToggleRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle read"),
		),
		Trash: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "move to trash"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete forever"),
		),
		Restore: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "restore"),
		),
		Reply: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reply"),
		),
		Forward: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "forward"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp 精简帮助里展示的核心按键。
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Search, k.Compose,
	}
}

// FullHelp 完整帮助的分组按键。
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Search, k.Compose, k.Refresh, k.NextPage, k.PrevPage},
		{k.FolderInbox, k.FolderSent, k.FolderDrafts, k.FolderTrash},
		{k.ToggleStar, k.ToggleRead, k.Trash, k.Delete, k.Restore},
		{k.Reply, k.Forward, k.Logout, k.Help},
	}
}
