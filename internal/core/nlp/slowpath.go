package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
	"github.com/Pilot202/skylit-logistic-backend/internal/port"
)

const classifySystemPrompt = `You are an inventory control assistant for Skylit Logistics.
Classify the user's WhatsApp message into exactly one intent:
ADD_STOCK, SHIP_STOCK, CHECK_STOCK or GENERAL.

Respond with a single JSON object and nothing else:
{"intent": "ADD_STOCK | SHIP_STOCK | CHECK_STOCK | GENERAL", "sku": "string", "quantity": 0, "seller": "string", "destination": "string"}

Leave fields you cannot determine empty (or 0 for quantity).`

const chatSystemPrompt = `You are a friendly WhatsApp assistant for Skylit Logistics.
Help the user with inventory questions. You can check stock, add stock and ship items.
Keep replies short and WhatsApp-friendly.`

// ChatFallback is returned when the free-form chat path fails for a message
// neither classifier could resolve.
const ChatFallback = "⚠️ I'm having trouble understanding. Please try:\n• 'Check stock'\n• 'Add 10 phone chargers'\n• 'Ship 5 USB cables to warehouse A'"

// GeneralFallback is returned when chat fails for a message already
// recognized as conversational; it offers help instead of apologizing.
const GeneralFallback = "I'm here to help! You can ask me to check stock, add inventory, or ship items. 😊"

// NoInventoryData is the sentinel snapshot used when the store is empty or
// unreachable.
const NoInventoryData = "No inventory data available."

var (
	codeFenceRe  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// SlowPath escalates messages the fast path could not resolve to the
// language model. Every failure mode collapses to domain.Unknown so the
// pipeline always has a usable result.
type SlowPath struct {
	llm    port.LLMClient
	logger *zap.Logger
}

func NewSlowPath(llm port.LLMClient, logger *zap.Logger) *SlowPath {
	return &SlowPath{llm: llm, logger: logger}
}

// flexibleInt tolerates models that quote numbers.
type flexibleInt int

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexibleInt(n)
	return nil
}

type classifyPayload struct {
	Intent      string      `json:"intent"`
	SKU         string      `json:"sku"`
	Quantity    flexibleInt `json:"quantity"`
	Seller      string      `json:"seller"`
	Destination string      `json:"destination"`
}

// Classify asks the model to label the message given the current inventory
// snapshot. It never returns an error: unparsable output, transport failure
// or a missing client all yield Unknown.
func (s *SlowPath) Classify(ctx context.Context, text, inventorySummary string) domain.Intent {
	if s.llm == nil {
		return domain.Unknown{}
	}

	if inventorySummary == "" {
		inventorySummary = NoInventoryData
	}

	userPrompt := fmt.Sprintf("Inventory snapshot:\n%s\n\nUser message: %s", inventorySummary, text)

	reply, err := s.llm.CompleteWithSystem(ctx, classifySystemPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("slow-path classify failed", zap.Error(err))
		return domain.Unknown{}
	}

	payload, ok := parseClassifyReply(reply)
	if !ok {
		s.logger.Warn("slow-path reply had no parsable JSON", zap.String("reply", reply))
		return domain.Unknown{}
	}

	switch strings.ToUpper(strings.TrimSpace(payload.Intent)) {
	case "ADD_STOCK":
		return domain.AddStock{
			SKU:      strings.ToUpper(strings.TrimSpace(payload.SKU)),
			Quantity: int(payload.Quantity),
			Seller:   strings.TrimSpace(payload.Seller),
			Conf:     domain.ConfidenceHigh,
		}
	case "SHIP_STOCK":
		dest := strings.TrimSpace(payload.Destination)
		if dest == "" {
			dest = DefaultDestination
		}
		return domain.ShipStock{
			SKU:         strings.ToUpper(strings.TrimSpace(payload.SKU)),
			Quantity:    int(payload.Quantity),
			Destination: dest,
			Conf:        domain.ConfidenceHigh,
		}
	case "CHECK_STOCK":
		return domain.CheckStock{
			SKU:  strings.ToUpper(strings.TrimSpace(payload.SKU)),
			Conf: domain.ConfidenceHigh,
		}
	case "GENERAL":
		return domain.General{Conf: domain.ConfidenceLow}
	default:
		return domain.Unknown{}
	}
}

// Chat answers an unresolved message verbatim via the model, with a static
// fallback independent of Classify's.
func (s *SlowPath) Chat(ctx context.Context, text, inventorySummary string) string {
	return s.chat(ctx, text, inventorySummary, ChatFallback)
}

// ChatGeneral answers a message already recognized as conversational.
func (s *SlowPath) ChatGeneral(ctx context.Context, text, inventorySummary string) string {
	return s.chat(ctx, text, inventorySummary, GeneralFallback)
}

func (s *SlowPath) chat(ctx context.Context, text, inventorySummary, fallback string) string {
	if s.llm == nil {
		return fallback
	}

	if inventorySummary == "" {
		inventorySummary = NoInventoryData
	}

	userPrompt := fmt.Sprintf("Inventory snapshot:\n%s\n\nUser message: %s", inventorySummary, text)

	reply, err := s.llm.CompleteWithSystem(ctx, chatSystemPrompt, userPrompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.logger.Warn("free-form chat failed", zap.Error(err))
		return fallback
	}
	return strings.TrimSpace(reply)
}

// parseClassifyReply extracts a JSON object from the model reply, stripping
// a Markdown code fence when present.
func parseClassifyReply(reply string) (classifyPayload, bool) {
	var payload classifyPayload

	candidate := reply
	if m := codeFenceRe.FindStringSubmatch(reply); m != nil {
		candidate = m[1]
	}
	if err := json.Unmarshal([]byte(candidate), &payload); err == nil {
		return payload, true
	}
	if m := jsonObjectRe.FindString(candidate); m != "" {
		if err := json.Unmarshal([]byte(m), &payload); err == nil {
			return payload, true
		}
	}
	return payload, false
}
