package seed

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/okian/edutrack/pkg/logger"
)

// Generation ranges.
const (
	minQuestions = 5
	maxQuestions = 40
	maxDaysBack  = 60
	dateLayout   = "2006-01-02"
)

// Generator produces reproducible practice sessions from a catalog.
type Generator struct {
	rng     *rand.Rand
	catalog []subject
	today   time.Time
}

// NewGenerator seeds a generator. The same seed, catalog and day give the
// same sessions.
func NewGenerator(seed uint64, catalog []subject, today time.Time) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		catalog: catalog,
		today:   today,
	}
}

// Next returns one session with a topic of its subject and counts summing to
// a total between minQuestions and maxQuestions.
func (g *Generator) Next() Session {
	s := g.catalog[g.rng.IntN(len(g.catalog))]
	topic := ""
	if len(s.Topics) > 0 {
		topic = s.Topics[g.rng.IntN(len(s.Topics))]
	}
	total := minQuestions + g.rng.IntN(maxQuestions-minQuestions+1)
	correct := g.rng.IntN(total + 1)
	return Session{
		Date:    g.today.AddDate(0, 0, -g.rng.IntN(maxDaysBack)).Format(dateLayout),
		Subject: s.Name,
		Topic:   topic,
		Correct: correct,
		Wrong:   total - correct,
	}
}

func generateSessions(ctx context.Context, cfg *Config, catalog []subject, stats *Stats) []Session {
	gen := NewGenerator(cfg.Seed, catalog, time.Now())
	sessions := make([]Session, cfg.Entries)
	for i := range sessions {
		sessions[i] = gen.Next()
	}
	stats.Generated = len(sessions)
	logger.Get().Info(ctx, "sessions generated",
		logger.Int("count", len(sessions)),
		logger.Any("seed", cfg.Seed))
	return sessions
}

// expectedDelta is what the dashboard summary must grow by.
func expectedDelta(sessions []Session) Summary {
	var d Summary
	for _, s := range sessions {
		d.TopicsStudied++
		d.TotalCorrect += s.Correct
		d.TotalQuestions += s.Correct + s.Wrong
	}
	return d
}
