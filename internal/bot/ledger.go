package bot

import (
	"context"
	"log/slog"
	"sync"

	"obzvonbot/core/logger"
)

// Deleter removes a single chat message. Implemented by the Channel.
type Deleter interface {
	Delete(ctx context.Context, userID int64, messageID int) error
}

type ledgerEntry struct {
	userMsgs []int
	botMsgs  []int
}

// Ledger tracks outstanding message ids per user so the cleanup pass can
// keep the visible transcript down to the latest menu. Transient; a restart
// just leaves old messages visible until the next pass.
type Ledger struct {
	mu sync.Mutex
	m  map[int64]*ledgerEntry
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{m: make(map[int64]*ledgerEntry)}
}

// TrackUser records an inbound message id for later deletion.
func (l *Ledger) TrackUser(userID int64, messageID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(userID)
	e.userMsgs = append(e.userMsgs, messageID)
}

// TrackBot records an outbound message id for later deletion.
func (l *Ledger) TrackBot(userID int64, messageID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(userID)
	e.botMsgs = append(e.botMsgs, messageID)
}

// Cleanup deletes every tracked user message and every tracked bot message
// except the most recent one. Delete failures are logged and swallowed:
// worst case is extra visible history, never a stuck conversation. The
// lists are cleared regardless of individual outcomes, so a second run
// with no new messages is a no-op.
func (l *Ledger) Cleanup(ctx context.Context, userID int64, d Deleter) {
	l.mu.Lock()
	e, ok := l.m[userID]
	if !ok {
		l.mu.Unlock()
		return
	}
	userMsgs := e.userMsgs
	botMsgs := e.botMsgs
	e.userMsgs = nil
	if n := len(botMsgs); n > 0 {
		e.botMsgs = []int{botMsgs[n-1]}
		botMsgs = botMsgs[:n-1]
	}
	l.mu.Unlock()

	deleteAll(ctx, d, userID, userMsgs, "user")
	deleteAll(ctx, d, userID, botMsgs, "bot")
}

func deleteAll(ctx context.Context, d Deleter, userID int64, ids []int, kind string) {
	for _, id := range ids {
		if err := d.Delete(ctx, userID, id); err != nil {
			logger.Bot.WarnContext(ctx, "cleanup delete failed",
				slog.String("event", "cleanup.delete"),
				slog.Int64("user_id", userID),
				slog.String("kind", kind),
				slog.Int("message_id", id),
				slog.String("err", err.Error()),
			)
		}
	}
}

func (l *Ledger) entry(userID int64) *ledgerEntry {
	e, ok := l.m[userID]
	if !ok {
		e = &ledgerEntry{}
		l.m[userID] = e
	}
	return e
}
