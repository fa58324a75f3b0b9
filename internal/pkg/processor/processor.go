// Package processor abstracts the external payment processor. The core only
// needs two capabilities: create an intent, and receive its completion signal
// through the webhook surface; everything processor-specific stays behind the
// Client interface.
package processor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type Client interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency, description string, metadata map[string]string) (*Intent, error)
}

// SandboxClient issues processor intents without an external round trip. It is
// the default in development and tests; a real gateway client satisfies the
// same interface.
type SandboxClient struct {
	prefix string
}

func NewSandboxClient() *SandboxClient {
	prefix := strings.TrimSpace(os.Getenv("PROCESSOR_INTENT_PREFIX"))
	if prefix == "" {
		prefix = "pi"
	}
	return &SandboxClient{prefix: prefix}
}

func (c *SandboxClient) CreateIntent(ctx context.Context, amountMinorUnits int64, currency, description string, metadata map[string]string) (*Intent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if amountMinorUnits <= 0 {
		return nil, fmt.Errorf("processor: amount must be positive, got %d", amountMinorUnits)
	}

	id := uuid.NewString()
	return &Intent{
		ID:           c.prefix + "_" + id,
		ClientSecret: c.prefix + "_" + id + "_secret_" + uuid.NewString(),
	}, nil
}
