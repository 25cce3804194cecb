// Package dispatch runs one question through the chat model and the stock tools.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/models"
	"github.com/dyike/TickerTalk/internal/tools"
	"github.com/dyike/TickerTalk/internal/utils"
)

// FailureMessage is what the user sees when a question could not be answered.
const FailureMessage = "Sorry, I couldn't answer that question. Please try again."

var ErrEmptyQuestion = errors.New("question is empty")

// StockData is the market-data side of the tools.
type StockData interface {
	FetchAttribute(ctx context.Context, symbol, key string) (models.AttributeValue, error)
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error)
}

// ChartRenderer draws the price histories collected for one question and
// returns where the chart was written.
type ChartRenderer interface {
	Render(ctx context.Context, series []*models.PriceSeries) (string, error)
}

// Answer is the outcome of one question.
type Answer struct {
	Text string
	// ChartPath is empty unless historical prices were requested.
	ChartPath    string
	ChartSymbols []string
}

type Dispatcher struct {
	chatModel model.BaseChatModel
	data      StockData
	charts    ChartRenderer
	now       func() time.Time
	debug     bool
	handlers  []callbacks.Handler
}

type Option func(*Dispatcher)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

func WithDebug(debug bool) Option {
	return func(d *Dispatcher) { d.debug = debug }
}

// WithCallbacks attaches eino callback handlers to both model invocations.
func WithCallbacks(handlers ...callbacks.Handler) Option {
	return func(d *Dispatcher) { d.handlers = append(d.handlers, handlers...) }
}

// NewDispatcher wires a chat model that already knows the tool declarations
// (see tools.Infos) to the data and chart collaborators.
func NewDispatcher(chatModel model.BaseChatModel, data StockData, charts ChartRenderer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		chatModel: chatModel,
		data:      data,
		charts:    charts,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// stockInfoResult and historyResult are the two result channels of a dispatch.
type stockInfoResult struct {
	call  models.StockInfoCall
	value models.AttributeValue
}

type historyResult struct {
	call   models.HistoricalPriceCall
	series *models.PriceSeries
}

type results struct {
	infos     []stockInfoResult
	histories []historyResult
}

// Ask answers one question. Nothing is kept between calls. Any tool failure
// aborts the question; no partial answer is produced.
func (d *Dispatcher) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	queryID := uuid.NewString()[:8]
	now := d.now()
	if len(d.handlers) > 0 {
		ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
			Name:      "dispatch",
			Type:      "TickerTalk",
			Component: components.ComponentOfChatModel,
		}, d.handlers...)
	}

	messages, err := d.compose(question, now)
	if err != nil {
		return nil, err
	}

	log.Printf("[Dispatch] %s Invoking LLM: %q", queryID, question)
	aiMsg, err := d.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("first inference: %w", err)
	}
	if d.debug {
		log.Printf("[Dispatch] %s AI response: content=%q tool_calls=%d", queryID, aiMsg.Content, len(aiMsg.ToolCalls))
	}

	// With no tool calls the reply still goes back for the second inference,
	// which gives the answer.
	calls, err := models.ParseToolCalls(aiMsg.ToolCalls, now)
	if err != nil {
		log.Printf("[Dispatch] %s Rejected tool calls: %v", queryID, err)
		return nil, err
	}
	messages = append(messages, aiMsg)

	res, err := d.dispatch(ctx, queryID, calls)
	if err != nil {
		log.Printf("[Dispatch] %s Tool call failed: %v", queryID, err)
		return nil, err
	}

	for _, r := range res.infos {
		messages = append(messages, schema.ToolMessage(r.value.String(), r.call.ID))
	}

	answer := &Answer{}
	if len(res.histories) > 0 {
		series := make([]*models.PriceSeries, 0, len(res.histories))
		for _, r := range res.histories {
			series = append(series, r.series)
		}
		path, err := d.charts.Render(ctx, series)
		if err != nil {
			return nil, fmt.Errorf("render chart: %w", err)
		}
		answer.ChartPath = path
		answer.ChartSymbols = chartSymbols(res.histories)

		note, err := utils.LoadPromptWithContext("chart_generated", map[string]string{
			"Symbols": strings.Join(answer.ChartSymbols, " and "),
		})
		if err != nil {
			return nil, err
		}
		messages = append(messages, schema.ToolMessage(note, res.histories[0].call.ID))
	}

	final, err := d.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("second inference: %w", err)
	}
	answer.Text = final.Content

	log.Printf("[Dispatch] %s Answered with %d tool calls (chart: %t)", queryID, len(calls), answer.ChartPath != "")
	return answer, nil
}

func (d *Dispatcher) compose(question string, now time.Time) ([]*schema.Message, error) {
	system, err := utils.LoadPromptWithContext("system", map[string]string{
		"Today": now.Format(consts.DateLayout),
	})
	if err != nil {
		return nil, err
	}
	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(question),
	}, nil
}

// dispatch runs the calls one at a time, in the order the model emitted them.
func (d *Dispatcher) dispatch(ctx context.Context, queryID string, calls []models.ToolCall) (*results, error) {
	res := &results{}
	for _, call := range calls {
		switch c := call.(type) {
		case models.StockInfoCall:
			log.Printf("[Dispatch] %s %s symbol=%s key=%s", queryID, c.ToolName(), c.Symbol, c.Key)
			if d.debug && !tools.IsRecognizedKey(c.Key) {
				log.Printf("[Dispatch] %s key %q is not a declared stock info key", queryID, c.Key)
			}
			value, err := d.data.FetchAttribute(ctx, c.Symbol, c.Key)
			if err != nil {
				return nil, err
			}
			res.infos = append(res.infos, stockInfoResult{call: c, value: value})

		case models.HistoricalPriceCall:
			log.Printf("[Dispatch] %s %s symbol=%s start=%s end=%s", queryID, c.ToolName(), c.Symbol,
				c.Start.Format(consts.DateLayout), c.End.Format(consts.DateLayout))
			series, err := d.data.FetchHistory(ctx, c.Symbol, c.Start, c.End)
			if err != nil {
				return nil, err
			}
			res.histories = append(res.histories, historyResult{call: c, series: series})

		default:
			return nil, fmt.Errorf("%w: %T", models.ErrUnknownTool, call)
		}
	}
	return res, nil
}

// chartSymbols lists each charted symbol once, in call order.
func chartSymbols(histories []historyResult) []string {
	seen := make(map[string]bool, len(histories))
	symbols := make([]string, 0, len(histories))
	for _, r := range histories {
		symbol := r.series.Symbol
		if seen[symbol] {
			continue
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}
	return symbols
}
