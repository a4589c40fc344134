// Package nlp turns free-text WhatsApp messages into structured intents:
// lexical entity extraction, a deterministic keyword classifier (fast path)
// and an LLM-backed classifier (slow path).
package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	skuMarkerRe = regexp.MustCompile(`(?i)sku[:\s]+([A-Z0-9\-]+)`)
	skuCodeRe   = regexp.MustCompile(`(?i)\b([A-Z]{3}-[A-Z]{3}-\d{3})\b`)

	bareNumberRe = regexp.MustCompile(`\b(\d+)\b`)

	sellerTrailerRe = regexp.MustCompile(`(?i)\s+(to|at|in)$`)
)

// productMapping maps a known product-name phrase to its SKU. Order matters:
// the first matching phrase wins.
type productMapping struct {
	pattern *regexp.Regexp
	sku     string
}

var productMappings = []productMapping{
	{regexp.MustCompile(`(?i)phone\s*charger`), "PHN-CHG-001"},
	{regexp.MustCompile(`(?i)usb\s*cable`), "USB-CBL-001"},
	{regexp.MustCompile(`(?i)hdmi\s*cable`), "HDM-CBL-001"},
	{regexp.MustCompile(`(?i)laptop\s*bag`), "LAP-BAG-001"},
	{regexp.MustCompile(`(?i)wireless\s*mouse`), "MSE-WRL-001"},
	{regexp.MustCompile(`(?i)mechanical\s*keyboard`), "KBD-MEC-001"},
}

// quantityPatterns are tried in priority order before the bare-number fallback.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*units?`),
	regexp.MustCompile(`(?i)add\s+(\d+)`),
	regexp.MustCompile(`(?i)ship\s+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s+(?:of|x)\b`),
	regexp.MustCompile(`(?i)quantity[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)unit[:\s]+(\d+)`),
}

var sellerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)seller[:\s]+([A-Za-z][A-Za-z\s]*?)(?:\s|$)`),
	regexp.MustCompile(`(?i)\bfrom\s+([A-Za-z][A-Za-z\s]*?)(?:\s|$)`),
	regexp.MustCompile(`(?i)\bby\s+([A-Za-z][A-Za-z\s]*?)(?:\s|$)`),
}

var destinationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bto\s+([A-Za-z0-9][A-Za-z0-9\s]*)`),
	regexp.MustCompile(`(?i)destination[:\s]+([A-Za-z0-9][A-Za-z0-9\s]*)`),
	regexp.MustCompile(`(?i)\bwarehouse\s+([A-Za-z0-9]+)`),
}

// DefaultDestination is used when a SHIP message names no destination.
// It is a deliberate default, not an absence signal.
const DefaultDestination = "warehouse"

// ExtractSKU pulls a SKU out of text. Tiers, first match wins: explicit
// "sku:" marker, the LLL-LLL-DDD code shape, then known product names.
func ExtractSKU(text string) (string, bool) {
	if m := skuMarkerRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), true
	}
	if m := skuCodeRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), true
	}
	for _, pm := range productMappings {
		if pm.pattern.MatchString(text) {
			return pm.sku, true
		}
	}
	return "", false
}

// ExtractQuantity finds a quantity in text, falling back to the first bare
// integer anywhere. Returns false only when the text has no digits at all.
func ExtractQuantity(text string) (int, bool) {
	for _, re := range quantityPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	if m := bareNumberRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}

// ExtractSeller finds a seller name introduced by "seller:", "from" or "by",
// stripping a trailing to/at/in token from the capture.
func ExtractSeller(text string) (string, bool) {
	for _, re := range sellerPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			seller := strings.TrimSpace(m[1])
			seller = sellerTrailerRe.ReplaceAllString(seller, "")
			if seller != "" {
				return seller, true
			}
		}
	}
	return "", false
}

// ExtractDestination finds a shipping destination, defaulting to
// DefaultDestination when nothing matches.
func ExtractDestination(text string) string {
	for _, re := range destinationPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if dest := strings.TrimSpace(m[1]); dest != "" {
				return dest
			}
		}
	}
	return DefaultDestination
}
