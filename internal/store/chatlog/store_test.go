package chatlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "chats.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAssignsIncreasingIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	first, err := store.Append(ctx, "Guest", "feeling happy", emotion.Joy, now)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := store.Append(ctx, "Guest", "still happy", emotion.Joy, now)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("ids must increase: first=%d second=%d", first.ID, second.ID)
	}
}

func TestAggregates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	turns := []emotion.Label{emotion.Joy, emotion.Sadness, emotion.Sadness}
	for _, label := range turns {
		if _, err := store.Append(ctx, "Guest", "msg", label, now); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	total, err := store.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 turns, got %d", total)
	}

	counts, err := store.CountByEmotion(ctx)
	if err != nil {
		t.Fatalf("CountByEmotion: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 represented emotions, got %v", counts)
	}
	if counts[emotion.Joy] != 1 || counts[emotion.Sadness] != 2 {
		t.Fatalf("unexpected breakdown: %v", counts)
	}

	frequent, err := store.MostFrequent(ctx)
	if err != nil {
		t.Fatalf("MostFrequent: %v", err)
	}
	if frequent != "sadness" {
		t.Fatalf("expected sadness, got %q", frequent)
	}
}

func TestMostFrequentOnEmptyLog(t *testing.T) {
	store := openTestStore(t)

	frequent, err := store.MostFrequent(context.Background())
	if err != nil {
		t.Fatalf("MostFrequent: %v", err)
	}
	if frequent != "none" {
		t.Fatalf("expected \"none\", got %q", frequent)
	}
}

func TestMostFrequentTieBreaksOnLabel(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, label := range []emotion.Label{emotion.Sadness, emotion.Anger} {
		if _, err := store.Append(ctx, "Guest", "msg", label, now); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	frequent, err := store.MostFrequent(ctx)
	if err != nil {
		t.Fatalf("MostFrequent: %v", err)
	}
	if frequent != "anger" {
		t.Fatalf("tie should break to the smaller label, got %q", frequent)
	}
}
