package config

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisClient is nil when REDIS_ADDR is unset.
var RedisClient *redis.Client

func InitRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return nil
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	return RedisClient
}
