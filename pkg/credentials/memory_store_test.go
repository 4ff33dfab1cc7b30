package credentials

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("load non-existent user", func(t *testing.T) {
		_, err := store.FindPasswordHash(ctx, "nonexistent")
		if err != ErrUserNotFound {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
		groups, err := store.FindGroups(ctx, "nonexistent")
		if err != nil || len(groups) != 0 {
			t.Errorf("expected no groups, got %v (%v)", groups, err)
		}
	})

	t.Run("add and load user", func(t *testing.T) {
		store.AddUser("ME", "HASH", "ME_GROUP", "OTHER_GROUP")

		hash, err := store.FindPasswordHash(ctx, "ME")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hash != "HASH" {
			t.Errorf("expected hash %q, got %q", "HASH", hash)
		}

		groups, err := store.FindGroups(ctx, "ME")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 2 || groups[0] != "ME_GROUP" || groups[1] != "OTHER_GROUP" {
			t.Errorf("unexpected groups %v", groups)
		}

		groups[0] = "MUTATED"
		again, _ := store.FindGroups(ctx, "ME")
		if again[0] != "ME_GROUP" {
			t.Error("returned groups should be a copy")
		}
	})

	t.Run("remove user", func(t *testing.T) {
		store.RemoveUser("ME")

		_, err := store.FindPasswordHash(ctx, "ME")
		if err != ErrUserNotFound {
			t.Errorf("expected ErrUserNotFound after removal, got %v", err)
		}
	})
}
