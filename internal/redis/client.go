package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Progress caching
func (c *Client) SetTaskProgress(taskID uint, progress float64, ttl time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf("task_progress:%d", taskID)
	return c.rdb.Set(ctx, key, progress, ttl).Err()
}

func (c *Client) SetModuleProgress(moduleID uint, progress float64, ttl time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf("module_progress:%d", moduleID)
	return c.rdb.Set(ctx, key, progress, ttl).Err()
}

func (c *Client) SetProjectProgress(projectID uint, progress float64, ttl time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf("project_progress:%d", projectID)
	return c.rdb.Set(ctx, key, progress, ttl).Err()
}

// Dashboard caching
func (c *Client) SetDashboard(key string, data interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard data: %w", err)
	}
	return c.rdb.Set(ctx, "dashboard:"+key, jsonData, ttl).Err()
}

func (c *Client) GetDashboard(key string, dest interface{}) (bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "dashboard:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get dashboard data: %w", err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal dashboard data: %w", err)
	}
	return true, nil
}

func (c *Client) InvalidateDashboards() error {
	ctx := context.Background()
	keys, err := c.rdb.Keys(ctx, "dashboard:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
