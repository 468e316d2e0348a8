package stream

import (
	"sync"

	"github.com/google/uuid"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
)

// sendBuffer is the per-connection command backlog before a client is
// considered dead.
const sendBuffer = 256

// Client is one live connection's handle inside the registry. The owning
// transport handler drains Send until it closes.
type Client struct {
	// ID is unique for the process lifetime.
	ID uuid.UUID

	// Send carries broadcast commands to the transport writer.
	Send chan domain.Command

	// closeOnce ensures the Send channel is only closed once.
	closeOnce sync.Once
}

// NewClient creates a connection handle ready to register.
func NewClient() *Client {
	return &Client{
		ID:   uuid.New(),
		Send: make(chan domain.Command, sendBuffer),
	}
}

// CloseSend safely closes the Send channel exactly once.
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}
