package data

// RefState tells where a symbolic reference stands in resolution.
type RefState uint8

const (
	RefAbsent RefState = iota
	RefUnresolved
	RefResolved
	RefFailed
)

func (s RefState) String() string {
	switch s {
	case RefUnresolved:
		return "unresolved"
	case RefResolved:
		return "resolved"
	case RefFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Ref is a field that is supplied as a symbol S (a name, code or SKU) and
// later replaced by the database id V it stands for.
// The zero value is an absent field.
type Ref[S, V any] struct {
	state   RefState
	symbol  S
	value   V
	message string
}

// Unresolved returns a field that still carries its symbol.
func Unresolved[S, V any](symbol S) Ref[S, V] {
	return Ref[S, V]{state: RefUnresolved, symbol: symbol}
}

// Resolved returns a field that already holds an id.
func Resolved[S, V any](value V) Ref[S, V] {
	return Ref[S, V]{state: RefResolved, value: value}
}

func (r Ref[S, V]) State() RefState { return r.state }

func (r Ref[S, V]) IsUnresolved() bool { return r.state == RefUnresolved }

func (r Ref[S, V]) IsResolved() bool { return r.state == RefResolved }

// Symbol returns the symbol while the field is unresolved.
func (r Ref[S, V]) Symbol() (S, bool) {
	return r.symbol, r.state == RefUnresolved
}

// Value returns the id once the field is resolved.
func (r Ref[S, V]) Value() (V, bool) {
	return r.value, r.state == RefResolved
}

// Message returns the resolution failure, if any.
func (r Ref[S, V]) Message() string { return r.message }

// Resolve replaces the symbol by its id.
func (r *Ref[S, V]) Resolve(value V) {
	var zero S
	r.state = RefResolved
	r.symbol = zero
	r.value = value
	r.message = ""
}

// Fail marks the field as unresolvable. Symbol and value are both cleared so
// no half-resolved data reaches storage.
func (r *Ref[S, V]) Fail(message string) {
	var zeroS S
	var zeroV V
	r.state = RefFailed
	r.symbol = zeroS
	r.value = zeroV
	r.message = message
}
