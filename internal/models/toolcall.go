package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/dyike/TickerTalk/consts"
)

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

// ToolCall is a parsed model tool call. The concrete type is either
// StockInfoCall or HistoricalPriceCall.
type ToolCall interface {
	CallID() string
	ToolName() string
	isToolCall()
}

// StockInfoCall asks for one attribute of a symbol.
type StockInfoCall struct {
	ID     string
	Symbol string
	Key    string
}

func (c StockInfoCall) CallID() string   { return c.ID }
func (c StockInfoCall) ToolName() string { return consts.ToolGetStockInfo }
func (StockInfoCall) isToolCall()        {}

// HistoricalPriceCall asks for closing prices of a symbol between Start and End.
type HistoricalPriceCall struct {
	ID     string
	Symbol string
	Start  time.Time
	End    time.Time
}

func (c HistoricalPriceCall) CallID() string   { return c.ID }
func (c HistoricalPriceCall) ToolName() string { return consts.ToolGetHistoricalPrice }
func (HistoricalPriceCall) isToolCall()        {}

type stockInfoArgs struct {
	Symbol string `json:"symbol"`
	Key    string `json:"key"`
}

type historicalPriceArgs struct {
	Symbol    string `json:"symbol"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ParseToolCall maps a raw model tool call onto its typed form. Tool names
// match case-insensitively; anything else is ErrUnknownTool.
func ParseToolCall(tc schema.ToolCall, now time.Time) (ToolCall, error) {
	name := strings.ToLower(strings.TrimSpace(tc.Function.Name))
	args := strings.TrimSpace(tc.Function.Arguments)
	if args == "" {
		args = "{}"
	}

	switch name {
	case consts.ToolGetStockInfo:
		var in stockInfoArgs
		if err := json.Unmarshal([]byte(args), &in); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArguments, name, err)
		}
		if strings.TrimSpace(in.Symbol) == "" || strings.TrimSpace(in.Key) == "" {
			return nil, fmt.Errorf("%w: %s requires symbol and key", ErrInvalidArguments, name)
		}
		return StockInfoCall{
			ID:     tc.ID,
			Symbol: strings.TrimSpace(in.Symbol),
			Key:    strings.TrimSpace(in.Key),
		}, nil

	case consts.ToolGetHistoricalPrice:
		var in historicalPriceArgs
		if err := json.Unmarshal([]byte(args), &in); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArguments, name, err)
		}
		if strings.TrimSpace(in.Symbol) == "" {
			return nil, fmt.Errorf("%w: %s requires symbol", ErrInvalidArguments, name)
		}
		start, err := parseDateOr(in.StartDate, consts.DefaultHistoryStart)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date: %v", ErrInvalidArguments, err)
		}
		end, err := parseDateOr(in.EndDate, now.Format(consts.DateLayout))
		if err != nil {
			return nil, fmt.Errorf("%w: end_date: %v", ErrInvalidArguments, err)
		}
		return HistoricalPriceCall{
			ID:     tc.ID,
			Symbol: strings.TrimSpace(in.Symbol),
			Start:  start,
			End:    end,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, tc.Function.Name)
	}
}

// ParseToolCalls parses every call of a model response, in emission order.
// The first failure rejects the whole set.
func ParseToolCalls(tcs []schema.ToolCall, now time.Time) ([]ToolCall, error) {
	calls := make([]ToolCall, 0, len(tcs))
	for _, tc := range tcs {
		call, err := ParseToolCall(tc, now)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

var dateLayouts = []string{
	consts.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseDate parses the date formats a model may emit into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

func parseDateOr(s, fallback string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		s = fallback
	}
	return ParseDate(s)
}
