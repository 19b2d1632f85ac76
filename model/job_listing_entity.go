package model

import (
	"time"
)

// JobListingEntity 职位（内容记录）实体类
type JobListingEntity struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Title       string    `gorm:"column:title;size:255"`       // 岗位名称
	Description string    `gorm:"column:description;type:text"` // 岗位描述
	Status      string    `gorm:"column:status;size:20"`       // preview/pending/publish
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (JobListingEntity) TableName() string {
	return "job_listing"
}
