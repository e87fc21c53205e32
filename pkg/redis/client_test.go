package redis

import (
	"testing"
	"time"

	"github.com/hkfashion/storefront-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:secret@localhost:6380/2",
		PoolSize:    12,
		DialTimeout: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 12 {
		t.Fatalf("pool size not applied, got %d", opts.PoolSize)
	}
}

func TestCartSessionKeyNamespacing(t *testing.T) {
	c := &Client{}
	key := c.CartSessionKey("abc-123")
	want := "hk:session:cart:abc-123"
	if key != want {
		t.Fatalf("expected %q, got %q", want, key)
	}
}

func TestRateLimitKeySkipsEmptyParts(t *testing.T) {
	c := &Client{}
	if got := c.RateLimitKey("login:1.2.3.4"); got != "hk:rate_limit:login:1.2.3.4" {
		t.Fatalf("unexpected key %q", got)
	}
}
