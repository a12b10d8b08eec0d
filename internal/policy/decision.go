package policy

// Decision is the outcome for a single container or stream property: either
// the source data passes through untouched, or it is converted to a concrete
// target. Depending on the subject the target is a codec name, a "W:H" scale
// spec, or a container extension.
type Decision struct {
	target string
}

// Copy returns the pass-through decision.
func Copy() Decision {
	return Decision{}
}

// Convert returns a decision carrying the conversion target.
func Convert(target string) Decision {
	return Decision{target: target}
}

// IsCopy reports whether the subject is kept as-is.
func (d Decision) IsCopy() bool {
	return d.target == ""
}

// Target returns the conversion target, or the empty string for a copy.
func (d Decision) Target() string {
	return d.target
}

func (d Decision) String() string {
	if d.IsCopy() {
		return "copy"
	}
	return "convert to " + d.target
}
