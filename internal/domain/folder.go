package domain

// Folder 表示邮件所属的文件夹，四者互斥，一封邮件任意时刻只属于其一。
type Folder string

const (
	FolderInbox  Folder = "inbox"
	FolderSent   Folder = "sent"
	FolderDrafts Folder = "drafts"
	FolderTrash  Folder = "trash"
)

// Valid 判断文件夹取值是否合法。
func (f Folder) Valid() bool {
	switch f {
	case FolderInbox, FolderSent, FolderDrafts, FolderTrash:
		return true
	default:
		return false
	}
}

// Folders 返回全部文件夹，按侧边栏展示顺序排列。
func Folders() []Folder {
	return []Folder{FolderInbox, FolderSent, FolderDrafts, FolderTrash}
}
