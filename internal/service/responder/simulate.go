package responder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/inspire/internal/core"
)

const (
	longPromptChars   = 100
	shortPromptChars  = 10
	disclaimerCutoff  = 500
	disclaimerPattern = "\n\n[Note: This is a simulated %s response]"
)

// Simulator answers prompts with canned replies when no real backend is
// available. Only the filler choice is random.
type Simulator struct {
	delay time.Duration
	pick  func(n int) int
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{
		delay: delay,
		pick:  rand.IntN,
	}
}

// Simulate waits for the configured latency and returns a canned reply.
// It always succeeds.
func (s *Simulator) Simulate(ctx context.Context, serviceType, prompt string) core.ServiceResponse {
	s.wait(ctx)
	return core.ServiceResponse{
		Success:   true,
		Data:      withDisclaimer(s.Compose(prompt), serviceType),
		Simulated: true,
	}
}

// Compose builds the reply body without the simulation note.
func (s *Simulator) Compose(prompt string) string {
	topic := Match(prompt)
	switch topic {
	case TopicNone:
	case TopicQuestion:
		return questionReply
	default:
		for _, r := range topicRules {
			if r.topic == topic {
				return r.reply
			}
		}
	}

	reply := fillerReplies[s.pick(len(fillerReplies))]
	switch n := utf8.RuneCountInString(prompt); {
	case n > longPromptChars:
		reply += detailedReply
	case n < shortPromptChars:
		reply += briefReply
	}
	return reply
}

// Match returns the first topic with a keyword anywhere in the lowercased
// prompt, TopicQuestion for any other prompt containing "?", and TopicNone
// otherwise. Keywords match inside words too ("this" holds "hi"), so rule
// order decides between overlapping topics.
func Match(prompt string) Topic {
	lower := strings.ToLower(prompt)
	for _, r := range topicRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.topic
			}
		}
	}
	if strings.Contains(prompt, "?") {
		return TopicQuestion
	}
	return TopicNone
}

func withDisclaimer(reply, serviceType string) string {
	if utf8.RuneCountInString(reply) >= disclaimerCutoff {
		return reply
	}
	return reply + fmt.Sprintf(disclaimerPattern, serviceType)
}

func (s *Simulator) wait(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
