package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

// New builds a go-redis client from the environment and verifies the
// connection. Callers treat a nil client as "caching disabled".
func New(log *logger.Logger) (*redis.Client, error) {
	host := utils.GetEnv("REDIS_HOST", "localhost", log)
	port := utils.GetEnv("REDIS_PORT", "6379", log)
	password := utils.GetEnv("REDIS_PASSWORD", "", log)
	dbNum := utils.GetEnvAsInt("REDIS_DB", 0, log)

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
