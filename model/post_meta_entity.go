package model

import (
	"time"
)

// PostMetaEntity 内容记录的元数据
type PostMetaEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:meta_id"`
	PostID    int64     `gorm:"column:post_id;index:idx_post_meta_key,priority:1"`
	MetaKey   string    `gorm:"column:meta_key;size:255;index:idx_post_meta_key,priority:2"` // 以下划线开头的键不在通用自定义字段中显示
	MetaValue string    `gorm:"column:meta_value;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PostMetaEntity) TableName() string {
	return "postmeta"
}
