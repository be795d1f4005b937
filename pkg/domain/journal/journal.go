package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is used for entry stamps and the receipt date.
const TimeLayout = "2006-01-02 15:04:05"

// Kind is the action an entry records.
type Kind string

const (
	KindBalanceCheck Kind = "Balance Check"
	KindDeposit      Kind = "Deposit"
	KindWithdraw     Kind = "Withdraw"
	KindTransfer     Kind = "Transfer"
)

// Entry is an immutable, timestamped record of one completed action.
type Entry struct {
	ID     uuid.UUID `json:"id"`
	Time   time.Time `json:"time"`
	Kind   Kind      `json:"kind"`
	Detail string    `json:"detail"`
}

// String renders the entry as a receipt line, e.g.
// "[2025-01-02 15:04:05] Deposit: Account 112211 deposited $250.00".
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Time.Format(TimeLayout), e.Kind, e.Detail)
}

// Log is an append-only, chronologically ordered sequence of entries.
// It is not safe for concurrent use.
type Log struct {
	entries []Entry
	now     func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// New creates an empty log.
func New(opts ...Option) *Log {
	l := &Log{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends an entry stamped with the current time and returns it.
func (l *Log) Record(kind Kind, detail string) Entry {
	e := Entry{
		ID:     uuid.New(),
		Time:   l.now(),
		Kind:   kind,
		Detail: detail,
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a copy of the recorded entries in insertion order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// IsEmpty reports whether nothing has been recorded.
func (l *Log) IsEmpty() bool {
	return len(l.entries) == 0
}
