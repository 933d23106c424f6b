package redis

import (
	"testing"

	"github.com/hupe1980/convomem/core"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// Interface compliance (compile-time assertion lives in redis.go).
var _ core.ConversationStore = (*Store)(nil)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, "convomem:log", s.key)
	assert.NotNil(t, s.client)
}

func TestNewFromClient_DefaultKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = client.Close() })

	s := NewFromClient(client, "")
	assert.Equal(t, "convomem:log", s.key)

	custom := NewFromClient(client, "exec-42:log")
	assert.Equal(t, "exec-42:log", custom.key)
}
