package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidatesOptions(t *testing.T) {
	_, err := NewClient(context.Background(), Options{Addr: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addr is empty")

	_, err = NewClient(context.Background(), Options{Addr: "localhost:6379", DB: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	_, err := NewClient(context.Background(), Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping 127.0.0.1:1")
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Addr: "x", ReadTimeout: time.Second}.withDefaults()
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Equal(t, time.Second, opts.ReadTimeout)
	assert.Equal(t, 3*time.Second, opts.WriteTimeout)
}
