package domain

// Confidence is the coarse label controlling whether the orchestrator
// executes a fast-path result directly or escalates to the LLM.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// Intent is the contract between the classifiers and the pipeline. Each
// variant carries only the fields meaningful for that intent, so callers
// type-switch instead of probing optional map keys.
type Intent interface {
	Confidence() Confidence
	intent()
}

// AddStock requests an inbound stock movement.
type AddStock struct {
	SKU      string
	Quantity int
	Seller   string
	Conf     Confidence
}

// ShipStock requests an outbound stock movement.
type ShipStock struct {
	SKU         string
	Quantity    int
	Destination string
	Conf        Confidence
}

// CheckStock requests a stock report. An empty SKU means the full inventory.
type CheckStock struct {
	SKU  string
	Conf Confidence
}

// General is a conversational message. Canned is the pre-built response when
// one of the known greetings matched; empty means the LLM should answer.
type General struct {
	Canned string
	Conf   Confidence
}

// Unknown means neither classifier produced anything actionable.
type Unknown struct{}

func (a AddStock) Confidence() Confidence   { return a.Conf }
func (s ShipStock) Confidence() Confidence  { return s.Conf }
func (c CheckStock) Confidence() Confidence { return c.Conf }
func (g General) Confidence() Confidence    { return g.Conf }
func (Unknown) Confidence() Confidence      { return ConfidenceLow }

func (AddStock) intent()   {}
func (ShipStock) intent()  {}
func (CheckStock) intent() {}
func (General) intent()    {}
func (Unknown) intent()    {}
