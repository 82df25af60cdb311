// Package reply holds the static phrasing configuration the composer draws
// from. Pools are loaded once at startup and injected; nothing mutates them.
package reply

import "github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"

// Pool groups the phrase material for one emotion label.
type Pool struct {
	Base      []string
	FollowUps []string
	Tip       string
}

// Pools maps every emotion label to its pool.
type Pools map[emotion.Label]Pool

// For resolves the pool for a label, substituting the neutral pool when the
// label is unknown. Lookups never fail.
func (p Pools) For(label emotion.Label) Pool {
	if pool, ok := p[label]; ok {
		return pool
	}
	return p[emotion.Neutral]
}

// Tip resolves the relaxation tip for a label with the same neutral fallback.
func (p Pools) Tip(label emotion.Label) string {
	return p.For(label).Tip
}

// Default returns the built-in phrase set.
func Default() Pools {
	return Pools{
		emotion.Joy: {
			Base: []string{
				"That's wonderful to hear!",
				"I'm so glad you're feeling good!",
			},
			FollowUps: []string{
				"What made today feel this way?",
				"Want to tell me more about it?",
			},
			Tip: "Keep doing what makes you feel good!",
		},
		emotion.JoyHigh: {
			Base: []string{
				"You sound absolutely delighted, and that's lovely to see!",
				"What a burst of good energy you have today!",
			},
			FollowUps: []string{
				"What's the best part of all this?",
				"Who have you shared the good news with?",
			},
			Tip: "Savor the moment: note down what made it so special.",
		},
		emotion.Sadness: {
			Base: []string{
				"I'm really sorry you're feeling this way.",
				"You are not alone. I'm here to listen.",
			},
			FollowUps: []string{
				"Would you like to talk about what happened?",
				"What usually helps you when days feel heavy?",
			},
			Tip: "Write down three small things you're grateful for.",
		},
		emotion.SadnessHigh: {
			Base: []string{
				"That sounds like a lot of pain to carry. I'm here with you.",
				"I can hear how heavy this feels right now.",
			},
			FollowUps: []string{
				"When did this feeling become so strong?",
				"Is there someone nearby who could keep you company today?",
			},
			Tip: "Try journaling your thoughts for five minutes, then step outside for fresh air.",
		},
		emotion.Anger: {
			Base: []string{
				"It's okay to feel angry. Let's try to understand what's bothering you.",
				"Take a moment to breathe before reacting.",
			},
			FollowUps: []string{
				"What set this off?",
				"What would feeling better look like right now?",
			},
			Tip: "Take a short walk and breathe deeply.",
		},
		emotion.AngerHigh: {
			Base: []string{
				"That level of frustration is exhausting. Let's slow things down together.",
				"Strong anger usually means something important was crossed.",
			},
			FollowUps: []string{
				"What part of this feels most unfair?",
				"Would it help to put the situation into words here first?",
			},
			Tip: "Take deep breaths and count to 10 before responding to anyone.",
		},
		emotion.Fear: {
			Base: []string{
				"It's okay to feel afraid. You're safe right now.",
				"Let's slow things down together.",
			},
			FollowUps: []string{
				"What's the worry that keeps coming back?",
				"What's one small thing within your control today?",
			},
			Tip: "Use the 5-4-3-2-1 grounding method.",
		},
		emotion.FearHigh: {
			Base: []string{
				"That sounds really frightening. Take a deep breath with me.",
				"When worry gets this loud, it helps to anchor to the present.",
			},
			FollowUps: []string{
				"What is the very next thing you have to face?",
				"Has anything helped even a little when it felt like this before?",
			},
			Tip: "Try the 4-7-8 breathing technique: inhale 4s, hold 7s, exhale 8s.",
		},
		emotion.Neutral: {
			Base: []string{
				"I understand. Tell me more.",
				"I'm here to listen.",
			},
			FollowUps: []string{
				"How has the rest of your day been?",
				"What's on your mind?",
			},
			Tip: "Drink some water and take a short stretch break.",
		},
	}
}
