// Package logger provides signal-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-sniper/internal/backtest"
)

// SignalLogger provides dedicated logging for classification output.
type SignalLogger struct {
	*logrus.Entry
}

// NewSignalLogger creates a new signal logger.
func NewSignalLogger(baseLogger *logrus.Logger) *SignalLogger {
	return &SignalLogger{
		Entry: baseLogger.WithField("component", "signal"),
	}
}

// LogPick logs one actionable pick with its full evaluation context.
func (sl *SignalLogger) LogPick(row backtest.Row) {
	eval := row.Evaluation
	sl.WithFields(logrus.Fields{
		"match":          row.Fixture.Label(),
		"league":         row.Fixture.LeagueOrUnknown(),
		"date":           row.Fixture.Date,
		"tier":           string(eval.Tier),
		"pick":           string(eval.Pick),
		"play_odds":      eval.PlayOdds,
		"ev_home":        eval.EVHome,
		"ev_away":        eval.EVAway,
		"home_advantage": eval.HomeAdvantage,
	}).Info("Pick emitted")
}

// LogBatch logs the result of one analysis batch.
func (sl *SignalLogger) LogBatch(total, picks int) {
	sl.WithFields(logrus.Fields{
		"fixtures_evaluated": total,
		"picks_emitted":      picks,
	}).Info("Analysis batch completed")
}
