package repository

import (
	"errors"
	"job_manager_fields/model"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PostMetaRepository 元数据仓储接口
type PostMetaRepository interface {
	FindByPostAndKey(postID int64, metaKey string) (*model.PostMetaEntity, error)
	FindByPost(postID int64) ([]*model.PostMetaEntity, error)
	Save(meta *model.PostMetaEntity) error
	Update(meta *model.PostMetaEntity) error
	DeleteByPostAndKey(postID int64, metaKey string) error
}

type postMetaRepository struct {
	db *gorm.DB
}

func NewPostMetaRepository(db *gorm.DB) PostMetaRepository {
	return &postMetaRepository{db: db}
}

// FindByPostAndKey 获取某条记录的指定元数据（同键多条时取最早的一条）
func (r *postMetaRepository) FindByPostAndKey(postID int64, metaKey string) (*model.PostMetaEntity, error) {
	var meta model.PostMetaEntity
	result := r.db.Where("post_id = ? AND meta_key = ?", postID, metaKey).
		Order("meta_id ASC").
		First(&meta)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &meta, nil
}

// FindByPost 获取某条记录的全部元数据
func (r *postMetaRepository) FindByPost(postID int64) ([]*model.PostMetaEntity, error) {
	var metas []*model.PostMetaEntity
	result := r.db.Where("post_id = ?", postID).Order("meta_id ASC").Find(&metas)
	if result.Error != nil {
		return nil, result.Error
	}
	return metas, nil
}

// Save 新建元数据
func (r *postMetaRepository) Save(meta *model.PostMetaEntity) error {
	result := r.db.Create(meta)
	if result.Error != nil {
		return result.Error
	}
	log.Debugf("创建元数据成功: post_id=%d, key=%s", meta.PostID, meta.MetaKey)
	return nil
}

// Update 更新元数据
func (r *postMetaRepository) Update(meta *model.PostMetaEntity) error {
	result := r.db.Save(meta)
	if result.Error != nil {
		return result.Error
	}
	log.Debugf("更新元数据成功: post_id=%d, key=%s", meta.PostID, meta.MetaKey)
	return nil
}

// DeleteByPostAndKey 删除某条记录的指定元数据
func (r *postMetaRepository) DeleteByPostAndKey(postID int64, metaKey string) error {
	result := r.db.Where("post_id = ? AND meta_key = ?", postID, metaKey).Delete(&model.PostMetaEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Debugf("删除元数据成功: post_id=%d, key=%s", postID, metaKey)
	}
	return nil
}
