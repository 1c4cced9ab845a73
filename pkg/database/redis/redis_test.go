package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"myBizHub/pkg/config"
)

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{
		RedisHost:     "cache.internal",
		RedisPort:     "6380",
		RedisUsername: "usage-svc",
		RedisPassword: "pw",
		RedisDB:       4,
		PoolSize:      25,
		MinIdleConns:  5,
	})

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "usage-svc", opts.Username)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 4, opts.DB)
	assert.Equal(t, 25, opts.PoolSize)
	assert.Equal(t, 5, opts.MinIdleConns)
	assert.Equal(t, 3*time.Second, opts.ReadTimeout)
}
