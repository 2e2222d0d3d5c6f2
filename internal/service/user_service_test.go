package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/types"
)

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *fakeCache) GetCache(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.store[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) DeleteCache(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func TestLookupByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)
	ctx := context.Background()

	u := &repository.User{Email: "anna@example.com", Tier: types.TierFree}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.LookupByEmail(ctx, "  ANNA@Example.com ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found == nil || found.ID != u.ID {
		t.Fatalf("lookup = %v, want user %s", found, u.ID)
	}

	missing, err := svc.LookupByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("lookup missing: %v", err)
	}
	if missing != nil {
		t.Errorf("lookup missing = %v, want nil", missing)
	}
}

func TestLookupByEmailUsesCache(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	svc := NewUserService(repo, cache)
	ctx := context.Background()

	u := &repository.User{Email: "anna@example.com", Tier: types.TierFree}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.LookupByEmail(ctx, "anna@example.com"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, ok := cache.store["email-lookup:anna@example.com"]; !ok {
		t.Fatal("lookup result not cached")
	}

	// A cached hit is served without touching the store again.
	delete(repo.users, u.ID)
	found, err := svc.LookupByEmail(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if found == nil || found.ID != u.ID {
		t.Errorf("cached lookup = %v, want user %s", found, u.ID)
	}
}

func TestUpdateInvalidatesEmailLookupCache(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	svc := NewUserService(repo, cache)
	ctx := context.Background()

	u := &repository.User{Email: "anna@example.com", Tier: types.TierFree}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.LookupByEmail(ctx, "anna@example.com"); err != nil {
		t.Fatalf("lookup: %v", err)
	}

	name := "Anna"
	if _, err := svc.Update(ctx, u.ID, &name, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := cache.store["email-lookup:anna@example.com"]; ok {
		t.Fatal("email lookup cache not invalidated by profile update")
	}

	// The next lookup sees the new name.
	found, err := svc.LookupByEmail(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("lookup after update: %v", err)
	}
	if found == nil || found.Name == nil || *found.Name != "Anna" {
		t.Errorf("lookup after update = %v, want updated name", found)
	}
}

func TestUpdateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)
	ctx := context.Background()

	u := &repository.User{Email: "anna@example.com", Tier: types.TierFree}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Anna"
	tier := types.TierProf
	updated, err := svc.Update(ctx, u.ID, &name, &tier)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name == nil || *updated.Name != "Anna" {
		t.Errorf("name = %v, want Anna", updated.Name)
	}
	if updated.Tier != types.TierProf {
		t.Errorf("tier = %q, want %q", updated.Tier, types.TierProf)
	}

	blank := "   "
	if _, err := svc.Update(ctx, u.ID, &blank, nil); err == nil {
		t.Fatal("blank name accepted")
	}

	badTier := "premium"
	var vErr *ValidationError
	if _, err := svc.Update(ctx, u.ID, nil, &badTier); !errors.As(err, &vErr) {
		t.Fatalf("invalid tier: err = %v, want ValidationError", err)
	}

	if _, err := svc.Update(ctx, "no-such-user", &name, nil); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("update missing user: err = %v, want ErrUserNotFound", err)
	}
}
