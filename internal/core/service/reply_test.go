package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestFormat_TemplatedWithoutModel(t *testing.T) {
	f := NewReplyFormatter(nil, zap.NewNop())
	res := &StockResult{Success: true, Message: "✅ Added 5 units", Action: "ADD"}

	if got := f.Format(context.Background(), res); got != res.Message {
		t.Errorf("expected the engine message, got %q", got)
	}
}

func TestFormat_NilResult(t *testing.T) {
	f := NewReplyFormatter(nil, zap.NewNop())
	if got := f.Format(context.Background(), nil); got != "⚠️ Operation failed." {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestFormat_TakesFirstNonBlankLine(t *testing.T) {
	llm := &mockLLM{reply: "\n\n  Stock updated, 60 chargers on hand.  \nAnything else?"}
	f := NewReplyFormatter(llm, zap.NewNop())
	res := &StockResult{Success: true, Message: "template", SKU: "PHN-CHG-001", Stock: 60, Action: "ADD"}

	if got := f.Format(context.Background(), res); got != "Stock updated, 60 chargers on hand." {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestFormat_ModelErrorFallsBackToTemplate(t *testing.T) {
	llm := &mockLLM{err: errors.New("deadline exceeded")}
	f := NewReplyFormatter(llm, zap.NewNop())
	res := &StockResult{Success: true, Message: "template", Action: "ADD"}

	if got := f.Format(context.Background(), res); got != "template" {
		t.Errorf("expected the template, got %q", got)
	}
}

func TestFormat_BlankModelReplyFallsBack(t *testing.T) {
	llm := &mockLLM{reply: "  \n   \n"}
	f := NewReplyFormatter(llm, zap.NewNop())
	res := &StockResult{Success: true, Message: "template", Action: "ADD"}

	if got := f.Format(context.Background(), res); got != "template" {
		t.Errorf("expected the template, got %q", got)
	}
}
