package reply

import (
	"testing"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
)

func TestDefaultCoversEveryLabel(t *testing.T) {
	pools := Default()
	for _, label := range emotion.All() {
		pool, ok := pools[label]
		if !ok {
			t.Fatalf("no pool configured for %s", label)
		}
		if len(pool.Base) == 0 {
			t.Fatalf("empty base pool for %s", label)
		}
		if len(pool.FollowUps) == 0 {
			t.Fatalf("empty follow-up pool for %s", label)
		}
		if pool.Tip == "" {
			t.Fatalf("missing tip for %s", label)
		}
	}
}

func TestForFallsBackToNeutral(t *testing.T) {
	pools := Default()
	got := pools.For(emotion.Label("surprise"))
	want := pools[emotion.Neutral]
	if got.Tip != want.Tip {
		t.Fatalf("expected neutral fallback, got tip %q", got.Tip)
	}
	if pools.Tip(emotion.Label("")) != want.Tip {
		t.Fatalf("expected neutral tip fallback")
	}
}
