package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions Redis 属性源选项
type RedisOptions struct {
	Addr     string        // 服务器地址 host:port
	Username string        // 用户名（可选）
	Password string        // 密码（可选）
	DB       int           // 数据库编号
	Key      string        // 存放属性的 hash 键
	Timeout  time.Duration // 读取超时时间（默认 5 秒）
}

// RedisSource Redis 属性源。属性以 hash 形式存放在单个键下，
// field 即属性键，value 即属性值。
type RedisSource struct {
	Options RedisOptions
}

func (s *RedisSource) Name() string {
	return fmt.Sprintf("Redis(%s/%s)", s.Options.Addr, s.Options.Key)
}

func (s *RedisSource) Load() (map[string]string, error) {
	opts := s.Options
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Key == "" {
		return nil, fmt.Errorf("redis source requires a hash key")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	result, err := rdb.HGetAll(ctx, opts.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get config from redis: %w", err)
	}
	return result, nil
}
