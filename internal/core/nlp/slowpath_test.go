package nlp

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
)

type mockLLM struct {
	reply string
	err   error
	calls int
}

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.reply, m.err
}

func (m *mockLLM) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	return m.reply, m.err
}

func TestClassify_ParsesPlainJSON(t *testing.T) {
	llm := &mockLLM{reply: `{"intent": "ADD_STOCK", "sku": "usb-cbl-001", "quantity": 20, "seller": "TechSupply", "destination": ""}`}
	sp := NewSlowPath(llm, zap.NewNop())

	intent := sp.Classify(context.Background(), "got twenty more cables in", "")

	add, ok := intent.(domain.AddStock)
	if !ok {
		t.Fatalf("expected AddStock, got %T", intent)
	}
	if add.SKU != "USB-CBL-001" || add.Quantity != 20 || add.Seller != "TechSupply" {
		t.Errorf("unexpected payload: %+v", add)
	}
}

func TestClassify_StripsCodeFence(t *testing.T) {
	llm := &mockLLM{reply: "```json\n{\"intent\": \"SHIP_STOCK\", \"sku\": \"PHN-CHG-001\", \"quantity\": 3, \"destination\": \"warehouse A\"}\n```"}
	sp := NewSlowPath(llm, zap.NewNop())

	intent := sp.Classify(context.Background(), "move three chargers out", "")

	ship, ok := intent.(domain.ShipStock)
	if !ok {
		t.Fatalf("expected ShipStock, got %T", intent)
	}
	if ship.Quantity != 3 || ship.Destination != "warehouse A" {
		t.Errorf("unexpected payload: %+v", ship)
	}
}

func TestClassify_QuotedQuantity(t *testing.T) {
	llm := &mockLLM{reply: `{"intent": "ADD_STOCK", "sku": "LAP-BAG-001", "quantity": "12"}`}
	sp := NewSlowPath(llm, zap.NewNop())

	add, ok := sp.Classify(context.Background(), "twelve bags arrived", "").(domain.AddStock)
	if !ok || add.Quantity != 12 {
		t.Errorf("expected quantity 12, got %+v (ok=%v)", add, ok)
	}
}

func TestClassify_MissingDestinationDefaults(t *testing.T) {
	llm := &mockLLM{reply: `{"intent": "SHIP_STOCK", "sku": "USB-CBL-001", "quantity": 2}`}
	sp := NewSlowPath(llm, zap.NewNop())

	ship, ok := sp.Classify(context.Background(), "two cables out", "").(domain.ShipStock)
	if !ok || ship.Destination != DefaultDestination {
		t.Errorf("expected default destination, got %+v (ok=%v)", ship, ok)
	}
}

func TestClassify_UnparsableReplyIsUnknown(t *testing.T) {
	llm := &mockLLM{reply: "I think you want to add stock?"}
	sp := NewSlowPath(llm, zap.NewNop())

	if intent := sp.Classify(context.Background(), "hm", ""); intent != (domain.Unknown{}) {
		t.Errorf("expected Unknown, got %#v", intent)
	}
}

func TestClassify_TransportErrorIsUnknown(t *testing.T) {
	llm := &mockLLM{err: errors.New("quota exceeded")}
	sp := NewSlowPath(llm, zap.NewNop())

	if intent := sp.Classify(context.Background(), "hm", ""); intent != (domain.Unknown{}) {
		t.Errorf("expected Unknown, got %#v", intent)
	}
}

func TestClassify_NilClientIsUnknown(t *testing.T) {
	sp := NewSlowPath(nil, zap.NewNop())
	if intent := sp.Classify(context.Background(), "hm", ""); intent != (domain.Unknown{}) {
		t.Errorf("expected Unknown, got %#v", intent)
	}
}

func TestChat_ReturnsReplyVerbatim(t *testing.T) {
	llm := &mockLLM{reply: "Your order shipped yesterday."}
	sp := NewSlowPath(llm, zap.NewNop())

	got := sp.Chat(context.Background(), "where is my order?", "")
	if got != "Your order shipped yesterday." {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestChat_FallsBackOnError(t *testing.T) {
	llm := &mockLLM{err: errors.New("unreachable")}
	sp := NewSlowPath(llm, zap.NewNop())

	if got := sp.Chat(context.Background(), "hm", ""); got != ChatFallback {
		t.Errorf("expected static fallback, got %q", got)
	}
}

func TestChatGeneral_FallsBackToHelpOffer(t *testing.T) {
	llm := &mockLLM{err: errors.New("unreachable")}
	sp := NewSlowPath(llm, zap.NewNop())

	if got := sp.ChatGeneral(context.Background(), "how are you?", ""); got != GeneralFallback {
		t.Errorf("expected the help offer, got %q", got)
	}
	if got := NewSlowPath(nil, zap.NewNop()).ChatGeneral(context.Background(), "how are you?", ""); got != GeneralFallback {
		t.Errorf("expected the help offer without a client, got %q", got)
	}
}
