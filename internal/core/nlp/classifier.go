package nlp

import (
	"regexp"
	"strings"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
)

// Keyword cascades for the fast path. Category priority is policy, not an
// accident: ADD before SHIP before CHECK before GENERAL, first match wins
// even when a later category's keywords also appear.
var (
	addPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\badd\b`),
		regexp.MustCompile(`\brestock\b`),
		regexp.MustCompile(`\binbound\b`),
		regexp.MustCompile(`\breceived?\b`),
		regexp.MustCompile(`\bnew\s+stock\b`),
	}
	shipPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bship\b`),
		regexp.MustCompile(`\bsend\b`),
		regexp.MustCompile(`\boutbound\b`),
		regexp.MustCompile(`\bdispatch\b`),
		regexp.MustCompile(`\bremove\b`),
		regexp.MustCompile(`\btake\s+out\b`),
	}
	checkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bcheck\b`),
		regexp.MustCompile(`\bstock\b`),
		regexp.MustCompile(`\binventory\b`),
		regexp.MustCompile(`\bhow\s+many\b`),
		regexp.MustCompile(`\bavailable\b`),
		regexp.MustCompile(`\bwhat.*in\s+stock\b`),
		regexp.MustCompile(`\bshow\s+me\b`),
		regexp.MustCompile(`\blist\b`),
	}
	generalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bhello\b`),
		regexp.MustCompile(`\bhi\b`),
		regexp.MustCompile(`\bhey\b`),
		regexp.MustCompile(`\bhelp\b`),
		regexp.MustCompile(`\bthanks?\b`),
		regexp.MustCompile(`\bbye\b`),
	}
)

const (
	greetingReply = "👋 Hello! I'm your Skylit Logistics assistant. I can help you:\n• Check inventory: 'What's in stock?'\n• Add stock: 'Add 10 phone chargers from Acme'\n• Ship items: 'Ship 5 USB cables to warehouse B'\n\nHow can I help you today?"
	helpReply     = "📦 I can help you manage inventory:\n\n✅ Check Stock: 'Check phone chargers' or 'What's in stock?'\n✅ Add Stock: 'Add 20 USB cables from TechSupply'\n✅ Ship Items: 'Ship 15 keyboards to warehouse A'\n\nJust tell me what you need!"
	thanksReply   = "You're welcome! Let me know if you need anything else. 😊"
	farewellReply = "Goodbye! Feel free to message anytime you need inventory help. 👋"
)

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ClassifyFast labels a message without any model call. ADD/SHIP/CHECK
// results carry high confidence and pre-extracted entities; anything that
// matches no cascade is Unknown and triggers escalation.
func ClassifyFast(text string) domain.Intent {
	lower := strings.ToLower(text)

	if matchesAny(lower, addPatterns) {
		sku, _ := ExtractSKU(text)
		qty, _ := ExtractQuantity(text)
		seller, _ := ExtractSeller(text)
		return domain.AddStock{SKU: sku, Quantity: qty, Seller: seller, Conf: domain.ConfidenceHigh}
	}

	if matchesAny(lower, shipPatterns) {
		sku, _ := ExtractSKU(text)
		qty, _ := ExtractQuantity(text)
		return domain.ShipStock{
			SKU:         sku,
			Quantity:    qty,
			Destination: ExtractDestination(text),
			Conf:        domain.ConfidenceHigh,
		}
	}

	if matchesAny(lower, checkPatterns) {
		sku, _ := ExtractSKU(text)
		return domain.CheckStock{SKU: sku, Conf: domain.ConfidenceHigh}
	}

	if matchesAny(lower, generalPatterns) {
		canned, _ := CannedResponse(text)
		return domain.General{Canned: canned, Conf: domain.ConfidenceHigh}
	}

	return domain.Unknown{}
}

// CannedResponse answers simple greetings without a model call. A false
// return means the general query needs the free-form chat path.
func CannedResponse(text string) (string, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "hello"), strings.Contains(lower, "hi"), strings.Contains(lower, "hey"):
		return greetingReply, true
	case strings.Contains(lower, "help"):
		return helpReply, true
	case strings.Contains(lower, "thanks"), strings.Contains(lower, "thank you"):
		return thanksReply, true
	case strings.Contains(lower, "bye"), strings.Contains(lower, "goodbye"):
		return farewellReply, true
	}
	return "", false
}
