// Package debug starts the Eino visual debug server when it is enabled.
package debug

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/devops"

	"github.com/dyike/TickerTalk/config"
)

type EinoDebugger struct {
	config *config.Config
}

func NewEinoDebugger(cfg *config.Config) *EinoDebugger {
	return &EinoDebugger{config: cfg}
}

// Initialize is a no-op unless EINO_DEBUG_ENABLED is set.
func (d *EinoDebugger) Initialize(ctx context.Context) error {
	if !d.IsEnabled() {
		return nil
	}

	if d.config.Debug {
		log.Printf("[EinoDebug] Initializing Eino visual debug plugin on port %d", d.config.EinoDebugPort)
	}

	if err := devops.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize Eino debug plugin: %w", err)
	}

	log.Printf("[EinoDebug] Debug server listening at %s", d.URL())
	return nil
}

func (d *EinoDebugger) IsEnabled() bool {
	return d.config != nil && d.config.EinoDebugEnabled
}

func (d *EinoDebugger) URL() string {
	if !d.IsEnabled() {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d", d.config.EinoDebugPort)
}
