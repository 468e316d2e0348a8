package domain

// CommandKind identifies the action a Command instructs clients to perform.
// The set is open-ended: the admin panel may issue custom kinds that the
// server forwards verbatim.
type CommandKind string

const (
	// CommandStartDraw triggers a synchronized draw animation on every client.
	CommandStartDraw CommandKind = "START_DRAW"
	// CommandReveal reveals the current result on every client.
	CommandReveal CommandKind = "REVEAL"
	// CommandReset returns clients to their idle screen.
	CommandReset CommandKind = "RESET"
)

// Command is a transient instruction from the admin panel to connected
// clients. It lives in the mailbox until consumed or expired; only draw
// commands that were successfully resolved carry the seed fields.
type Command struct {
	Kind    CommandKind    `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`

	// IssuedAt is a unix-millisecond stamp ordering commands for clients.
	IssuedAt int64 `json:"issuedAt"`

	// Draw enrichment, present only when Kind denotes a draw that was
	// resolved server-side.
	Seed              string `json:"seed,omitempty"`
	WinnerIndex       *int   `json:"winnerIndex,omitempty"`
	TotalParticipants int    `json:"totalParticipants,omitempty"`
}

// IsDraw reports whether the command should trigger server-side draw
// resolution before being fanned out. Older admin panels signal the draw
// through a payload action instead of the kind, so that form still counts.
func (c Command) IsDraw() bool {
	if c.Kind == CommandStartDraw {
		return true
	}
	action, _ := c.Payload["acao"].(string)
	return action == "sortear"
}

// Synchronized reports whether the command carries a resolved draw, meaning
// every client can reconstruct the same winner from the attached seed.
func (c Command) Synchronized() bool {
	return c.Seed != ""
}
