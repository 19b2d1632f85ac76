package service

import (
	"context"
	"fmt"
	"job_manager_fields/model"
	"job_manager_fields/repository"
	"time"

	log "github.com/sirupsen/logrus"
)

// cacheTimeout 单次缓存操作的超时
const cacheTimeout = 2 * time.Second

// MetaCache 元数据缓存接口，由 cache.MetaCache 实现
type MetaCache interface {
	Get(ctx context.Context, postID int64, metaKey string) (string, bool)
	Set(ctx context.Context, postID int64, metaKey, value string) error
	Delete(ctx context.Context, postID int64, metaKey string) error
}

// MetaService 内容记录元数据服务
type MetaService struct {
	metaRepo repository.PostMetaRepository
	cache    MetaCache
}

// NewMetaService 创建元数据服务，cache 可以为 nil
func NewMetaService(metaRepo repository.PostMetaRepository, cache MetaCache) *MetaService {
	return &MetaService{
		metaRepo: metaRepo,
		cache:    cache,
	}
}

// UpdatePostMeta 保存或更新元数据，已存在则覆盖
func (s *MetaService) UpdatePostMeta(postID int64, metaKey, metaValue string) error {
	if metaKey == "" {
		return fmt.Errorf("元数据键为空")
	}

	existing, err := s.metaRepo.FindByPostAndKey(postID, metaKey)
	if err != nil {
		return fmt.Errorf("查询元数据失败: %w", err)
	}

	now := time.Now()
	if existing != nil {
		existing.MetaValue = metaValue
		existing.UpdatedAt = now
		if err := s.metaRepo.Update(existing); err != nil {
			return fmt.Errorf("更新元数据失败: %w", err)
		}
	} else {
		meta := &model.PostMetaEntity{
			PostID:    postID,
			MetaKey:   metaKey,
			MetaValue: metaValue,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.metaRepo.Save(meta); err != nil {
			return fmt.Errorf("保存元数据失败: %w", err)
		}
	}

	s.invalidate(postID, metaKey)
	return nil
}

// GetPostMeta 读取元数据，不存在时第二个返回值为 false
func (s *MetaService) GetPostMeta(postID int64, metaKey string) (string, bool, error) {
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		value, ok := s.cache.Get(ctx, postID, metaKey)
		cancel()
		if ok {
			return value, true, nil
		}
	}

	meta, err := s.metaRepo.FindByPostAndKey(postID, metaKey)
	if err != nil {
		return "", false, fmt.Errorf("查询元数据失败: %w", err)
	}
	if meta == nil {
		return "", false, nil
	}

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		if err := s.cache.Set(ctx, postID, metaKey, meta.MetaValue); err != nil {
			log.Warnf("写入元数据缓存失败: post_id=%d, key=%s: %v", postID, metaKey, err)
		}
		cancel()
	}
	return meta.MetaValue, true, nil
}

// GetAllPostMeta 读取某条记录的全部元数据（同键多条时保留最早的一条）
func (s *MetaService) GetAllPostMeta(postID int64) (map[string]string, error) {
	metas, err := s.metaRepo.FindByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("查询元数据失败: %w", err)
	}

	result := make(map[string]string, len(metas))
	for _, meta := range metas {
		if _, ok := result[meta.MetaKey]; ok {
			continue
		}
		result[meta.MetaKey] = meta.MetaValue
	}
	return result, nil
}

// DeletePostMeta 删除元数据
func (s *MetaService) DeletePostMeta(postID int64, metaKey string) error {
	if err := s.metaRepo.DeleteByPostAndKey(postID, metaKey); err != nil {
		return fmt.Errorf("删除元数据失败: %w", err)
	}
	s.invalidate(postID, metaKey)
	return nil
}

// invalidate 删除缓存，失败只记录日志
func (s *MetaService) invalidate(postID int64, metaKey string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	if err := s.cache.Delete(ctx, postID, metaKey); err != nil {
		log.Warnf("清除元数据缓存失败: post_id=%d, key=%s: %v", postID, metaKey, err)
	}
}
