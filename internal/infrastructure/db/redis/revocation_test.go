package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRevokedKey(t *testing.T) {
	if got := revokedKey("0b7e-42"); got != "auth:revoked:0b7e-42" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestRevoke_ExpiredTokenIsNoop(t *testing.T) {
	// Nothing listens on this address; an expired token must not reach Redis.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	list := NewRevocationList(client)
	list.now = func() time.Time { return now }

	if err := list.Revoke(context.Background(), "jti", now.Add(-time.Second)); err != nil {
		t.Fatalf("expected no error for expired token, got %v", err)
	}
	if err := list.Revoke(context.Background(), "jti", now); err != nil {
		t.Fatalf("expected no error for token expiring now, got %v", err)
	}
}

func TestRevoke_PropagatesStoreErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	list := NewRevocationList(client)
	if err := list.Revoke(context.Background(), "jti", time.Now().Add(time.Hour)); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
	if _, err := list.IsRevoked(context.Background(), "jti"); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}

func newMiniredisList(t *testing.T) (*RevocationList, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationList(client), srv
}

func TestRevocationList_RevokeThenIsRevoked(t *testing.T) {
	list, srv := newMiniredisList(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	list.now = func() time.Time { return now }

	revoked, err := list.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("fresh token reported revoked=%v err=%v", revoked, err)
	}

	if err := list.Revoke(ctx, "jti-1", now.Add(40*time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if !srv.Exists("auth:revoked:jti-1") {
		t.Fatalf("revocation key not written, keys: %v", srv.Keys())
	}
	if ttl := srv.TTL("auth:revoked:jti-1"); ttl != 40*time.Minute {
		t.Fatalf("expected ttl equal to remaining token lifetime, got %v", ttl)
	}

	revoked, err = list.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expected revoked token, got revoked=%v err=%v", revoked, err)
	}
	if revoked, _ := list.IsRevoked(ctx, "jti-2"); revoked {
		t.Fatal("unrelated token must not be revoked")
	}
}

func TestRevocationList_EntryExpiresWithToken(t *testing.T) {
	list, srv := newMiniredisList(t)
	ctx := context.Background()

	if err := list.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	srv.FastForward(2 * time.Minute)

	revoked, err := list.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("is revoked: %v", err)
	}
	if revoked {
		t.Fatal("revocation entry must expire with the token")
	}
}
