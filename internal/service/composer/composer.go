// Package composer assembles the outgoing reply from the phrase pools and the
// session's pre-turn state. It is free of side effects; the engine persists
// state afterwards.
package composer

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
	"github.com/mindmate-ai/mindmate/backend/internal/model/reply"
	"github.com/mindmate-ai/mindmate/backend/internal/service/session"
)

// Input is everything a single composition needs. Before is the session state
// as it was prior to this turn's update.
type Input struct {
	Emotion     emotion.Label
	DisplayName string
	Before      session.Snapshot
}

// Result carries the finished reply plus the raw base reply that session
// memory records for the next turn's anti-repetition check.
type Result struct {
	Reply     string
	Tip       string
	BaseReply string
}

// Composer selects and decorates phrases. The random source is injected so
// tests can script selections.
type Composer struct {
	pools    reply.Pools
	triggers []string

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a composer over the given pools and topical trigger words.
// A nil source falls back to a time-seeded one.
func New(pools reply.Pools, triggers []string, src rand.Source) *Composer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Composer{
		pools:    pools,
		triggers: triggers,
		rng:      rand.New(src),
	}
}

// Compose runs the selection pipeline: neutral fallback, anti-repetition,
// uniform phrase picks, topical and affective continuity, personalization.
func (c *Composer) Compose(in Input) Result {
	pool := c.pools.For(in.Emotion)

	candidates := pool.Base
	if in.Before.LastBaseReply != "" {
		filtered := make([]string, 0, len(pool.Base))
		for _, base := range pool.Base {
			if base != in.Before.LastBaseReply {
				filtered = append(filtered, base)
			}
		}
		// Filtering must never leave zero candidates.
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	base := candidates[c.pick(len(candidates))]
	followUp := pool.FollowUps[c.pick(len(pool.FollowUps))]

	combined := base
	if topic, ok := c.recentTopic(in.Before.Recent); ok {
		combined += fmt.Sprintf(" Also, you mentioned your %s earlier. How is that going?", topic)
	}

	full := combined + " " + followUp
	if in.Before.LastEmotion != "" && in.Before.LastEmotion == in.Emotion {
		full = fmt.Sprintf("It sounds like you're still feeling %s. %s", in.Emotion.Base(), full)
	}

	if name := strings.TrimSpace(in.DisplayName); name != "" {
		full = name + ", " + full
	}

	return Result{
		Reply:     full,
		Tip:       c.pools.Tip(in.Emotion),
		BaseReply: base,
	}
}

// recentTopic checks the second-most-recent prior utterance for a configured
// trigger word.
func (c *Composer) recentTopic(recent []string) (string, bool) {
	if len(recent) < 2 {
		return "", false
	}
	previous := strings.ToLower(recent[len(recent)-2])
	for _, trigger := range c.triggers {
		if strings.Contains(previous, strings.ToLower(trigger)) {
			return trigger, true
		}
	}
	return "", false
}

func (c *Composer) pick(n int) int {
	if n <= 1 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}
