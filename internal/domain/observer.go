package domain

// Logger matches the printf-style methods of the Nakama runtime logger.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

// Observer is notified of everything that happens at the table.
// Slices passed to an observer are copies it may keep.
type Observer interface {
	PileChanged(pile []Card)
	MovePlayed(p *Player, m Move)
	TurnPassed(p *Player, forced bool)
	TrickEnded(result TrickResult)
	PlayerFinished(p *Player, position int)
}

// NopObserver ignores every notification. Embed it to implement only some methods.
type NopObserver struct{}

func (NopObserver) PileChanged([]Card)          {}
func (NopObserver) MovePlayed(*Player, Move)    {}
func (NopObserver) TurnPassed(*Player, bool)    {}
func (NopObserver) TrickEnded(TrickResult)      {}
func (NopObserver) PlayerFinished(*Player, int) {}
