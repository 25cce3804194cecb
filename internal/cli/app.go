package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dyike/TickerTalk/config"
	"github.com/dyike/TickerTalk/internal/agents"
	"github.com/dyike/TickerTalk/internal/charts"
	"github.com/dyike/TickerTalk/internal/dataflows"
	"github.com/dyike/TickerTalk/internal/debug"
	"github.com/dyike/TickerTalk/internal/dispatch"
)

// App holds everything one process needs to answer questions.
type App struct {
	Config     *config.Config
	Dispatcher *dispatch.Dispatcher
	Debugger   *debug.EinoDebugger
}

// NewApp validates cfg and wires the market-data provider, the chart
// renderer and the chat model into a Dispatcher.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	debugger := debug.NewEinoDebugger(cfg)
	if err := debugger.Initialize(ctx); err != nil {
		log.Printf("[App] Eino debug disabled: %v", err)
	}

	provider, err := dataflows.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	chatModel, err := agents.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []dispatch.Option{dispatch.WithDebug(cfg.Debug)}
	if cfg.Debug {
		opts = append(opts, dispatch.WithCallbacks(agents.NewLoggerCallback()))
	}
	d := dispatch.NewDispatcher(
		chatModel,
		dataflows.NewStockData(provider),
		charts.NewHTMLRenderer(cfg.ChartDir()),
		opts...,
	)

	if cfg.Debug {
		log.Printf("[App] LLM %s/%s, market data %s, charts in %s",
			cfg.LLMProvider, cfg.LLMModel, provider.Name(), cfg.ChartDir())
	}
	return &App{Config: cfg, Dispatcher: d, Debugger: debugger}, nil
}
