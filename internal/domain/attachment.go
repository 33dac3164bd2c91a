package domain

// Attachment 表示邮件附件的元信息，内容通过 Ref 另行获取。
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`        // 字节数
	ContentType string `json:"contentType"` // MIME 类型
	Ref         string `json:"ref"`         // 内容获取引用
}
