// Package cache 提供 Redis 缓存操作的封装
// 处理 JWT 黑名单、天气数据缓存等需要快速访问的数据
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dakshesh8090/Agri-All-round/internal/config"
)

// RedisCache 封装 Redis 客户端，提供业务相关的缓存操作
type RedisCache struct {
	client *redis.Client // Redis 客户端实例
}

// NewRedisCache 创建 RedisCache 实例
// 参数:
//   - cfg: 应用配置（包含 Redis 连接信息）
//
// 返回:
//   - *RedisCache: 缓存实例
//   - error: 连接错误
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Username: cfg.Redis.Username, // 阿里云 Redis 需要用户名
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Close 关闭 Redis 连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// ==================== JWT 黑名单 ====================
// 用于实现 Token 强制失效（登出）功能

// BlacklistToken 将 Token 加入黑名单
// 登出时调用，使当前 Token 失效
// 参数:
//   - ctx: 上下文
//   - tokenHash: Token 的哈希值（不存储原始 Token）
//   - expireAt: Token 的原始过期时间
//
// 返回:
//   - error: Redis 操作错误
func (c *RedisCache) BlacklistToken(ctx context.Context, tokenHash string, expireAt time.Time) error {
	// 计算剩余有效时间
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		// Token 已过期，无需加入黑名单
		return nil
	}

	// 设置黑名单 Key
	// 值为 "1" 表示已加入黑名单
	// TTL 设置为 Token 的剩余有效期，过期后自动删除（因为 Token 本身也过期了）
	return c.client.Set(ctx, fmt.Sprintf("jwt:blacklist:%s", tokenHash), "1", ttl).Err()
}

// IsTokenBlacklisted 检查 Token 是否在黑名单中
// JWT 验证中间件调用
// 参数:
//   - ctx: 上下文
//   - tokenHash: Token 的哈希值
//
// 返回:
//   - bool: 是否在黑名单中
func (c *RedisCache) IsTokenBlacklisted(ctx context.Context, tokenHash string) bool {
	// EXISTS 命令返回存在的 Key 数量
	return c.client.Exists(ctx, fmt.Sprintf("jwt:blacklist:%s", tokenHash)).Val() > 0
}

// ==================== 天气缓存 ====================
// OpenWeatherMap 有调用频率限制，短时间内同一地点的查询直接走缓存

// GetWeather 获取缓存的天气数据（JSON 字符串）
// 参数:
//   - ctx: 上下文
//   - location: 地点名称
//
// 返回:
//   - string: 缓存的 JSON 数据，未命中返回空串
//   - bool: 是否命中缓存
func (c *RedisCache) GetWeather(ctx context.Context, location string) (string, bool) {
	data, err := c.client.Get(ctx, weatherKey(location)).Result()
	if err != nil {
		// redis.Nil 表示 Key 不存在，其他错误也按未命中处理
		// 缓存故障不应该影响天气查询本身
		return "", false
	}
	return data, true
}

// SetWeather 缓存天气数据
// 参数:
//   - ctx: 上下文
//   - location: 地点名称
//   - data: 序列化后的天气 JSON
//   - ttl: 缓存时长
//
// 返回:
//   - error: Redis 操作错误
func (c *RedisCache) SetWeather(ctx context.Context, location, data string, ttl time.Duration) error {
	return c.client.Set(ctx, weatherKey(location), data, ttl).Err()
}

// weatherKey 生成天气缓存的 Key
// 地点统一转小写，"London" 和 "london" 命中同一条缓存
func weatherKey(location string) string {
	return fmt.Sprintf("weather:current:%s", strings.ToLower(location))
}

// ==================== 通用方法 ====================

// Ping 检查 Redis 连接
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - error: 如果连接失败返回错误
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
