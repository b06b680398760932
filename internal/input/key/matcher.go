package key

// MatchResult describes how an event compares to a binding.
type MatchResult int

const (
	// NoMatch means the key codes differ.
	NoMatch MatchResult = iota

	// ModMismatch means the code matched but the modifiers did not.
	ModMismatch

	// Exact means both code and modifiers matched.
	Exact
)

// String returns the result name.
func (r MatchResult) String() string {
	switch r {
	case NoMatch:
		return "no-match"
	case ModMismatch:
		return "mod-mismatch"
	case Exact:
		return "exact"
	default:
		return "unknown"
	}
}

// Matcher compares events against bindings.
//
// Press events record their modifiers per key code; release events are
// compared using the recorded press-time modifiers instead of their own.
// A Matcher is not safe for concurrent use.
type Matcher struct {
	pressMods map[Code]Modifier
}

// NewMatcher creates a matcher with an empty press cache.
func NewMatcher() *Matcher {
	return &Matcher{pressMods: make(map[Code]Modifier)}
}

// Compare tests ev against b.
func (m *Matcher) Compare(ev Event, b Binding) MatchResult {
	mods := m.effectiveMods(ev)
	if b.Code != ev.Code {
		return NoMatch
	}
	if b.Mods != mods {
		return ModMismatch
	}
	return Exact
}

// Index returns the 1-based position of the binding in list that ev
// matches, along with the match quality. An exact match anywhere in the
// list wins over an earlier modifier mismatch. Zero means no match.
func (m *Matcher) Index(ev Event, list []Binding) (int, MatchResult) {
	loose := 0
	for i, b := range list {
		switch m.Compare(ev, b) {
		case Exact:
			return i + 1, Exact
		case ModMismatch:
			if loose == 0 {
				loose = i + 1
			}
		}
	}
	if loose > 0 {
		return loose, ModMismatch
	}
	return 0, NoMatch
}

func (m *Matcher) effectiveMods(ev Event) Modifier {
	if ev.Pressed {
		m.pressMods[ev.Code] = ev.Mods
		return ev.Mods
	}
	return m.pressMods[ev.Code]
}
