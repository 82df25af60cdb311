package composer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
	"github.com/mindmate-ai/mindmate/backend/internal/model/reply"
	"github.com/mindmate-ai/mindmate/backend/internal/service/session"
)

func testPools() reply.Pools {
	return reply.Pools{
		emotion.Joy: {
			Base:      []string{"reply A", "reply B"},
			FollowUps: []string{"follow up?"},
			Tip:       "joy tip",
		},
		emotion.Sadness: {
			Base:      []string{"only reply"},
			FollowUps: []string{"what happened?"},
			Tip:       "sadness tip",
		},
		emotion.Neutral: {
			Base:      []string{"neutral reply"},
			FollowUps: []string{"tell me more?"},
			Tip:       "neutral tip",
		},
	}
}

func TestAntiRepetitionSkipsLastReply(t *testing.T) {
	c := New(testPools(), nil, rand.NewSource(1))

	// With "reply A" excluded only "reply B" remains, whatever the rng does.
	for i := 0; i < 10; i++ {
		res := c.Compose(Input{
			Emotion: emotion.Joy,
			Before:  session.Snapshot{LastBaseReply: "reply A"},
		})
		if res.BaseReply != "reply B" {
			t.Fatalf("expected the non-repeated candidate, got %q", res.BaseReply)
		}
	}
}

func TestAntiRepetitionFallbackOnSingletonPool(t *testing.T) {
	c := New(testPools(), nil, rand.NewSource(1))

	res := c.Compose(Input{
		Emotion: emotion.Sadness,
		Before:  session.Snapshot{LastBaseReply: "only reply"},
	})
	if res.BaseReply != "only reply" {
		t.Fatalf("singleton pool must still yield its reply, got %q", res.BaseReply)
	}
}

func TestContinuityPrefixOnSameEmotion(t *testing.T) {
	c := New(testPools(), nil, rand.NewSource(1))

	res := c.Compose(Input{
		Emotion: emotion.Joy,
		Before: session.Snapshot{
			LastEmotion: emotion.Joy,
			Recent:      []string{"I got the job!"},
		},
	})
	if !strings.HasPrefix(res.Reply, "It sounds like you're still feeling joy.") {
		t.Fatalf("expected continuity prefix, got %q", res.Reply)
	}
}

func TestNoContinuityPrefixOnEmotionChange(t *testing.T) {
	c := New(testPools(), nil, rand.NewSource(1))

	res := c.Compose(Input{
		Emotion: emotion.Joy,
		Before: session.Snapshot{
			LastEmotion: emotion.Sadness,
			Recent:      []string{"rough morning"},
		},
	})
	if strings.Contains(res.Reply, "still feeling") {
		t.Fatalf("unexpected continuity prefix in %q", res.Reply)
	}
}

func TestNoContinuityPrefixOnFreshSession(t *testing.T) {
	c := New(testPools(), nil, rand.NewSource(1))

	res := c.Compose(Input{Emotion: emotion.Joy})
	if strings.Contains(res.Reply, "still feeling") {
		t.Fatalf("fresh session must not get a continuity prefix: %q", res.Reply)
	}
}

func TestTopicalRemarkFromSecondMostRecentEntry(t *testing.T) {
	c := New(testPools(), []string{"exam"}, rand.NewSource(1))

	res := c.Compose(Input{
		Emotion: emotion.Neutral,
		Before: session.Snapshot{
			Recent: []string{"my EXAM is next week", "slept badly"},
		},
	})
	if !strings.Contains(res.Reply, "you mentioned your exam earlier") {
		t.Fatalf("expected topical remark, got %q", res.Reply)
	}

	// Trigger word in the most recent entry (not second-most-recent) must not fire.
	res = c.Compose(Input{
		Emotion: emotion.Neutral,
		Before: session.Snapshot{
			Recent: []string{"slept badly", "my exam is next week"},
		},
	})
	if strings.Contains(res.Reply, "you mentioned your exam") {
		t.Fatalf("unexpected topical remark, got %q", res.Reply)
	}
}

func TestPersonalizationPrefix(t *testing.T) {
	c := New(testPools(), nil, rand.NewSource(1))

	res := c.Compose(Input{Emotion: emotion.Neutral, DisplayName: "Priya"})
	if !strings.HasPrefix(res.Reply, "Priya, ") {
		t.Fatalf("expected name prefix, got %q", res.Reply)
	}

	res = c.Compose(Input{Emotion: emotion.Neutral})
	if strings.HasPrefix(res.Reply, ", ") {
		t.Fatalf("unexpected dangling prefix: %q", res.Reply)
	}
}

func TestUnknownEmotionFallsBackToNeutralPool(t *testing.T) {
	c := New(testPools(), nil, rand.NewSource(1))

	res := c.Compose(Input{Emotion: emotion.Label("surprise")})
	if res.BaseReply != "neutral reply" {
		t.Fatalf("expected neutral base, got %q", res.BaseReply)
	}
	if res.Tip != "neutral tip" {
		t.Fatalf("expected neutral tip, got %q", res.Tip)
	}
}
