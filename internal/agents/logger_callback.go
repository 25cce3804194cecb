package agents

import (
	"context"
	"log"
	"strings"

	"github.com/cloudwego/eino/callbacks"
	ecmodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// LoggerCallback logs chat model traffic: the messages sent, the tool calls
// requested and the token usage of each completion.
type LoggerCallback struct {
	// Logf defaults to log.Printf.
	Logf func(format string, args ...any)
}

var _ callbacks.Handler = (*LoggerCallback)(nil)

func NewLoggerCallback() *LoggerCallback {
	return &LoggerCallback{Logf: log.Printf}
}

func (cb *LoggerCallback) logf(format string, args ...any) {
	if cb.Logf == nil {
		log.Printf(format, args...)
		return
	}
	cb.Logf(format, args...)
}

func (cb *LoggerCallback) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	in := ecmodel.ConvCallbackInput(input)
	if in == nil {
		return ctx
	}
	cb.logf("[ChatModel] %s start: %d messages, %d tools", runName(info), len(in.Messages), len(in.Tools))
	return ctx
}

func (cb *LoggerCallback) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	out := ecmodel.ConvCallbackOutput(output)
	if out == nil {
		return ctx
	}
	cb.logMessage(info, out.Message)
	if out.TokenUsage != nil {
		cb.logf("[ChatModel] %s tokens: prompt=%d completion=%d total=%d", runName(info),
			out.TokenUsage.PromptTokens, out.TokenUsage.CompletionTokens, out.TokenUsage.TotalTokens)
	}
	return ctx
}

func (cb *LoggerCallback) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	cb.logf("[ChatModel] %s error: %v", runName(info), err)
	return ctx
}

func (cb *LoggerCallback) OnStartWithStreamInput(ctx context.Context, info *callbacks.RunInfo,
	input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
	input.Close()
	return ctx
}

// OnEndWithStreamOutput only closes the stream; the dispatcher never streams.
func (cb *LoggerCallback) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo,
	output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
	output.Close()
	return ctx
}

func (cb *LoggerCallback) logMessage(info *callbacks.RunInfo, msg *schema.Message) {
	if msg == nil {
		return
	}
	if len(msg.ToolCalls) == 0 {
		cb.logf("[ChatModel] %s answered (%d chars)", runName(info), len(msg.Content))
		return
	}
	calls := make([]string, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		calls = append(calls, tc.Function.Name+tc.Function.Arguments)
	}
	cb.logf("[ChatModel] %s tool calls: %s", runName(info), strings.Join(calls, ", "))
}

func runName(info *callbacks.RunInfo) string {
	if info == nil || info.Name == "" {
		return "chat"
	}
	return info.Name
}
