package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Pilot202/skylit-logistic-backend/internal/port"
)

// ReplyFormatter turns an operation outcome into one user-facing line.
// With a model attached it asks for a single concise sentence and falls back
// to the templated message on any failure; without one it is purely
// templated. The engine's message doubles as the template.
type ReplyFormatter struct {
	llm    port.LLMClient // optional
	logger *zap.Logger
}

func NewReplyFormatter(llm port.LLMClient, logger *zap.Logger) *ReplyFormatter {
	return &ReplyFormatter{llm: llm, logger: logger}
}

func (f *ReplyFormatter) Format(ctx context.Context, res *StockResult) string {
	if f.llm == nil || res == nil {
		return f.templated(res)
	}

	outcome := "succeeded"
	if !res.Success {
		outcome = "failed because: " + res.Message
	}
	prompt := fmt.Sprintf(
		"You are an inventory assistant. The user performed a %s operation on SKU %s. The current stock is %d. The operation %s. Reply in a single concise WhatsApp-friendly sentence.",
		res.Action, res.SKU, res.Stock, outcome,
	)

	reply, err := f.llm.Complete(ctx, prompt)
	if err != nil {
		f.logger.Warn("reply generation failed, using template", zap.Error(err))
		return f.templated(res)
	}

	for _, line := range strings.Split(reply, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return f.templated(res)
}

func (f *ReplyFormatter) templated(res *StockResult) string {
	if res == nil {
		return "⚠️ Operation failed."
	}
	if res.Message != "" {
		return res.Message
	}
	if !res.Success {
		return "⚠️ Operation failed."
	}
	switch res.Action {
	case "ADD", "SHIP":
		return fmt.Sprintf("✅ %s completed. New stock for %s: %d", res.Action, res.SKU, res.Stock)
	default:
		return fmt.Sprintf("ℹ️ Current stock for %s: %d", res.SKU, res.Stock)
	}
}
