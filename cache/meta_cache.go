// Package cache 为元数据提供基于Redis的读缓存
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MetaCache 元数据缓存
type MetaCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New 连接Redis并返回缓存，URL格式: redis://localhost:6379/0
func New(redisURL string, ttl time.Duration) (*MetaCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return NewWithClient(client, ttl), nil
}

// NewWithClient 使用已有的客户端
func NewWithClient(client *redis.Client, ttl time.Duration) *MetaCache {
	return &MetaCache{client: client, ttl: ttl}
}

// Get 读取缓存，未命中或出错时返回 false
func (c *MetaCache) Get(ctx context.Context, postID int64, metaKey string) (string, bool) {
	value, err := c.client.Get(ctx, BuildKey(postID, metaKey)).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Set 写入缓存
func (c *MetaCache) Set(ctx context.Context, postID int64, metaKey, value string) error {
	return c.client.Set(ctx, BuildKey(postID, metaKey), value, c.ttl).Err()
}

// Delete 删除缓存，键不存在不算错误
func (c *MetaCache) Delete(ctx context.Context, postID int64, metaKey string) error {
	return c.client.Del(ctx, BuildKey(postID, metaKey)).Err()
}

// Close 关闭连接
func (c *MetaCache) Close() error {
	return c.client.Close()
}

// BuildKey 缓存键
func BuildKey(postID int64, metaKey string) string {
	return fmt.Sprintf("jmf:postmeta:%d:%s", postID, metaKey)
}
