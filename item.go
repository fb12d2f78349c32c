package abikit

// Kind identifies which ABI item variant an Item is.
type Kind uint8

const (
	// KindFunction is a callable function with selector-prefixed call data.
	KindFunction Kind = iota

	// KindEvent is a log event encoded as topics plus data.
	KindEvent

	// KindError is a custom error with selector-prefixed revert data.
	KindError

	// KindConstructor is a constructor whose arguments follow the creation bytecode.
	KindConstructor

	// KindTuple is a bare parameter list with no keyword.
	KindTuple
)

// String returns the ABI JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindEvent:
		return "event"
	case KindError:
		return "error"
	case KindConstructor:
		return "constructor"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// ParseKind converts an ABI JSON type name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "function":
		return KindFunction, true
	case "event":
		return KindEvent, true
	case "error":
		return KindError, true
	case "constructor":
		return KindConstructor, true
	case "tuple":
		return KindTuple, true
	default:
		return 0, false
	}
}

// Parameter is one declared input, output or tuple component.
// Tuple types are spelled "tuple", "tuple[]" or "tuple[N]" and carry Components.
type Parameter struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Components []Parameter `json:"components,omitempty"`
	Indexed    bool        `json:"indexed,omitempty"`
}

// Item is a parsed ABI declaration.
// This is a sealed interface - only types within this package can implement it.
type Item interface {
	// isItem is unexported to seal the interface.
	isItem()

	// Kind returns the variant of this item.
	Kind() Kind
}

// Function is a contract function declaration.
type Function struct {
	Name            string
	Inputs          []Parameter
	Outputs         []Parameter
	StateMutability string
}

func (*Function) isItem() {}

// Kind returns KindFunction.
func (*Function) Kind() Kind { return KindFunction }

// Event is a log event declaration.
type Event struct {
	Name      string
	Inputs    []Parameter
	Anonymous bool
}

func (*Event) isItem() {}

// Kind returns KindEvent.
func (*Event) Kind() Kind { return KindEvent }

// CustomError is a custom error declaration.
type CustomError struct {
	Name   string
	Inputs []Parameter
}

func (*CustomError) isItem() {}

// Kind returns KindError.
func (*CustomError) Kind() Kind { return KindError }

// Constructor is a contract constructor declaration.
type Constructor struct {
	Inputs          []Parameter
	StateMutability string
}

func (*Constructor) isItem() {}

// Kind returns KindConstructor.
func (*Constructor) Kind() Kind { return KindConstructor }

// Tuple is a bare, keyword-less parameter list such as "(uint256,address)".
type Tuple struct {
	Components []Parameter
}

func (*Tuple) isItem() {}

// Kind returns KindTuple.
func (*Tuple) Kind() Kind { return KindTuple }

// Parameters returns the positional parameters of an item: the inputs of a
// function, event, error or constructor, or the components of a tuple.
// The returned slice is the item's own; callers must not modify it.
func Parameters(item Item) []Parameter {
	switch it := item.(type) {
	case *Function:
		return it.Inputs
	case *Event:
		return it.Inputs
	case *CustomError:
		return it.Inputs
	case *Constructor:
		return it.Inputs
	case *Tuple:
		return it.Components
	default:
		return nil
	}
}

// Name returns the declared name of an item, or "" for constructors and tuples.
func Name(item Item) string {
	switch it := item.(type) {
	case *Function:
		return it.Name
	case *Event:
		return it.Name
	case *CustomError:
		return it.Name
	default:
		return ""
	}
}
