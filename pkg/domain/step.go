package domain

// PositionUnset is the wire sentinel for "no position". It never survives past the tool boundary.
const PositionUnset = -1

// DefaultDOMDepth is the number of DOM levels returned when the caller omits depth.
const DefaultDOMDepth = 30

// StepRequest describes a single automation step independently of any engine.
type StepRequest struct {
	// Command is interpreted by the engine; the core never validates its vocabulary.
	Command string
	// Selectors are candidate element selectors in caller preference order.
	Selectors []string
	// Position picks one element among several selector matches. Nil means absent.
	Position *int
	Value    string
	Operator string
}

// NormalizePosition maps the wire sentinel to "absent".
func NormalizePosition(p *int) *int {
	if p == nil || *p == PositionUnset {
		return nil
	}
	v := *p
	return &v
}
