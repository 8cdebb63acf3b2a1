package model

// File 用户上传的学习文档，正文对象存放在对象存储，行里只记元数据和抽取文本
// swagger:model File
type File struct {
	BaseModel
	UserID        uint   `gorm:"index;not null" json:"userId"`
	OriginalName  string `gorm:"size:255;not null" json:"originalName"`
	StoragePath   string `gorm:"size:255;not null" json:"-"`
	MimeType      string `gorm:"size:100" json:"mimeType"`
	Size          int64  `gorm:"default:0" json:"size"`
	ExtractedText string `gorm:"type:longtext" json:"-"`
	Subject       string `gorm:"size:100" json:"subject"` // 为空时按文件名推导
}

func (File) TableName() string {
	return "files"
}
