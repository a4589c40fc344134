package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
	"github.com/Pilot202/skylit-logistic-backend/internal/core/nlp"
	"github.com/Pilot202/skylit-logistic-backend/internal/port"
)

const (
	addGuidance     = "⚠️ Please specify both product and quantity. Example: 'Add 10 phone chargers from Acme'"
	shipGuidance    = "⚠️ Please specify both product and quantity. Example: 'Ship 5 USB cables to warehouse B'"
	genericApology  = "⚠️ Something went wrong on our side. Please try again in a moment."
	operationFailed = "❌ Operation failed. Please try again."
)

// MessagePipeline runs the per-message state machine: fast path first,
// engine execution when confident, LLM escalation only as a fallback. Model
// calls are strictly a cost/latency optimization boundary - a deterministic
// match never reaches the model.
type MessagePipeline struct {
	repo        port.InventoryRepository
	inventory   *InventoryService
	slow        *nlp.SlowPath
	replies     *ReplyFormatter
	messenger   port.Messenger
	broadcaster port.Broadcaster // optional
	logger      *zap.Logger
}

func NewMessagePipeline(
	repo port.InventoryRepository,
	inventory *InventoryService,
	slow *nlp.SlowPath,
	replies *ReplyFormatter,
	messenger port.Messenger,
	broadcaster port.Broadcaster,
	logger *zap.Logger,
) *MessagePipeline {
	return &MessagePipeline{
		repo:        repo,
		inventory:   inventory,
		slow:        slow,
		replies:     replies,
		messenger:   messenger,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Handle processes one inbound message end to end. It never returns an
// error and never panics out: collaborator failures degrade to their
// designed fallbacks and anything unexpected becomes a generic apology.
func (p *MessagePipeline) Handle(ctx context.Context, sender, text string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panic", zap.Any("panic", r), zap.String("sender", sender))
			p.deliver(ctx, sender, genericApology)
		}
	}()

	p.logger.Info("incoming message", zap.String("sender", sender), zap.String("text", text))
	p.logConversation(ctx, sender, domain.DirectionIn, text)

	staffID := p.staffIDFor(ctx, sender)
	summary := p.inventory.Summary(ctx)

	intent := nlp.ClassifyFast(text)

	var (
		reply  string
		result *StockResult
	)

	switch it := intent.(type) {
	case domain.AddStock, domain.ShipStock, domain.CheckStock:
		reply, result = p.execute(ctx, intent, staffID)

	case domain.General:
		if it.Canned != "" {
			reply = it.Canned
		} else {
			reply = p.slow.ChatGeneral(ctx, text, summary)
		}

	case domain.Unknown:
		// Guidance replies belong to the fast path; a model result that
		// lacks its entities is treated as nothing actionable.
		escalated := p.slow.Classify(ctx, text, summary)
		if actionable(escalated) {
			reply, result = p.execute(ctx, escalated, staffID)
		} else if _, ok := escalated.(domain.General); ok {
			reply = p.slow.ChatGeneral(ctx, text, summary)
		} else {
			reply = p.slow.Chat(ctx, text, summary)
		}
	}

	if reply == "" {
		reply = p.slow.Chat(ctx, text, summary)
	}

	p.deliver(ctx, sender, reply)

	if result != nil && result.Mutated {
		p.broadcast(ctx, result)
	}
}

// actionable reports whether an intent carries enough entities to execute.
func actionable(intent domain.Intent) bool {
	switch it := intent.(type) {
	case domain.AddStock:
		return it.SKU != "" && it.Quantity > 0
	case domain.ShipStock:
		return it.SKU != "" && it.Quantity > 0
	case domain.CheckStock:
		return true
	default:
		return false
	}
}

// execute validates the intent's entities and invokes the matching engine
// operation. Missing entities produce a guidance reply; store breakage
// produces a generic failure, never a raw error string.
func (p *MessagePipeline) execute(ctx context.Context, intent domain.Intent, staffID *int64) (string, *StockResult) {
	var (
		result *StockResult
		err    error
	)

	switch it := intent.(type) {
	case domain.AddStock:
		if it.SKU == "" || it.Quantity <= 0 {
			return addGuidance, nil
		}
		result, err = p.inventory.AddStock(ctx, it.SKU, it.Quantity, it.Seller, staffID)

	case domain.ShipStock:
		if it.SKU == "" || it.Quantity <= 0 {
			return shipGuidance, nil
		}
		result, err = p.inventory.RemoveStock(ctx, it.SKU, it.Quantity, it.Destination, staffID)

	case domain.CheckStock:
		result, err = p.inventory.CheckStock(ctx, it.SKU)

	default:
		return "", nil
	}

	if err != nil {
		p.logger.Error("stock operation failed", zap.Error(err))
		return operationFailed, nil
	}

	return p.replies.Format(ctx, result), result
}

func (p *MessagePipeline) deliver(ctx context.Context, sender, reply string) {
	if err := p.messenger.Send(ctx, sender, reply); err != nil {
		p.logger.Error("message delivery failed", zap.String("sender", sender), zap.Error(err))
	} else {
		p.logger.Info("sent reply", zap.String("sender", sender), zap.String("reply", reply))
	}
	p.logConversation(ctx, sender, domain.DirectionOut, reply)
}

func (p *MessagePipeline) broadcast(ctx context.Context, res *StockResult) {
	if p.broadcaster == nil {
		return
	}
	ev := domain.StockEvent{
		ID:        uuid.NewString(),
		SKU:       res.SKU,
		Product:   res.Product,
		Stock:     res.Stock,
		Seller:    res.Seller,
		Action:    res.Action,
		Timestamp: time.Now().UTC(),
	}
	if err := p.broadcaster.Publish(ctx, ev); err != nil {
		p.logger.Warn("stock event broadcast failed", zap.String("sku", ev.SKU), zap.Error(err))
	}
}

// logConversation is best-effort: a failed log never aborts the pipeline.
func (p *MessagePipeline) logConversation(ctx context.Context, sender string, dir domain.Direction, msg string) {
	err := p.repo.LogConversation(ctx, domain.Conversation{
		Sender:    sender,
		Direction: dir,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Error("conversation log failed", zap.Error(err))
	}
}

// staffIDFor resolves the sender phone to a staff record. Unknown senders
// are fine; transactions simply carry no staff reference.
func (p *MessagePipeline) staffIDFor(ctx context.Context, sender string) *int64 {
	staff, err := p.repo.StaffByPhone(ctx, sender)
	if err != nil || staff == nil {
		return nil
	}
	return &staff.ID
}
