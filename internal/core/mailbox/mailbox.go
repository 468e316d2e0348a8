// Package mailbox implements the single-slot command holder polling clients
// consume. There is intentionally no queue: a client catching up only ever
// cares about the most recent admin action.
package mailbox

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// DefaultTTL is how long a peeked command survives before the mailbox
// empties itself, so commands never accumulate when no client calls Clear.
const DefaultTTL = 5 * time.Second

// Mailbox holds at most one pending command. Publish is last-write-wins;
// Peek returns the held command and arms the expiry timer. The expiry only
// clears the slot if the command that armed it is still the one held, so a
// publish racing an older peek's timer always wins.
type Mailbox struct {
	mu   sync.Mutex
	held *domain.Command
	// seq identifies the publish that filled the slot. Expiry timers carry
	// the seq they were armed for, so a timer from an older peek can never
	// clear a newer command, even one issued in the same millisecond.
	seq    uint64
	timer  *time.Timer
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.CommandMailbox = (*Mailbox)(nil)

// New creates a mailbox with the given expiry delay; ttl <= 0 falls back to
// DefaultTTL.
func New(ttl time.Duration, logger *slog.Logger) *Mailbox {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Mailbox{
		ttl:    ttl,
		logger: logger.With("component", "command_mailbox"),
	}
}

// Publish stores the command, discarding any previously held one and
// cancelling a pending expiry.
func (m *Mailbox) Publish(cmd domain.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimerLocked()
	m.held = &cmd
	m.seq++
}

// Peek returns the held command without consuming it and (re)arms the
// expiry timer keyed to the publish that filled the slot.
func (m *Mailbox) Peek() (domain.Command, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.held == nil {
		return domain.Command{}, false
	}

	cmd := *m.held
	m.stopTimerLocked()
	seq := m.seq
	m.timer = time.AfterFunc(m.ttl, func() {
		m.expire(seq)
	})

	return cmd, true
}

// Clear unconditionally empties the mailbox. Idempotent.
func (m *Mailbox) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimerLocked()
	m.held = nil
}

// expire empties the slot only if the publish that armed the timer is still
// the one held.
func (m *Mailbox) expire(seq uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.held == nil || m.seq != seq {
		return
	}

	m.logger.Debug("pending command expired", "kind", m.held.Kind, "issued_at", m.held.IssuedAt)
	m.held = nil
	m.timer = nil
}

func (m *Mailbox) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
