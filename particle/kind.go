package particle

// Kind is the visual kind of a particle. It selects the draw routine and the
// default motion pattern, and never changes during a particle's lifetime.
type Kind int

const (
	KindMote      Kind = iota // drifting pollen / light mote
	KindLeaf                  // falling leaf
	KindSnowflake             // snowflake
	KindPetal                 // blossom petal
	KindBird                  // bird silhouette
	KindWisp                  // mist or cloud wisp
)

var kindNames = [...]string{
	KindMote:      "mote",
	KindLeaf:      "leaf",
	KindSnowflake: "snowflake",
	KindPetal:     "petal",
	KindBird:      "bird",
	KindWisp:      "wisp",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Pattern selects the update rule applied to a particle every tick.
type Pattern int

const (
	// PatternDefault resolves to the kind's default pattern.
	PatternDefault Pattern = iota
	// PatternLinearFall falls along Y with a sinusoidal lateral wobble.
	PatternLinearFall
	// PatternSineCruise travels along X on a sine wave around a baseline.
	PatternSineCruise
	// PatternBreathing drifts slowly while its opacity breathes.
	PatternBreathing
	// PatternFlapGlide cruises like PatternSineCruise and randomly glides.
	PatternFlapGlide
)

var patternNames = [...]string{
	PatternDefault:    "default",
	PatternLinearFall: "linear-fall",
	PatternSineCruise: "sine-cruise",
	PatternBreathing:  "breathing",
	PatternFlapGlide:  "flap-glide",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return "unknown"
	}
	return patternNames[p]
}

// ParsePattern returns the pattern with the given name.
func ParsePattern(name string) (Pattern, bool) {
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), true
		}
	}
	return 0, false
}

// DefaultPattern returns the motion pattern a kind uses when the config does
// not pick one.
func DefaultPattern(k Kind) Pattern {
	switch k {
	case KindBird:
		return PatternFlapGlide
	case KindWisp:
		return PatternBreathing
	default:
		return PatternLinearFall
	}
}

// falls reports whether the pattern recycles across the bottom edge.
func (p Pattern) falls() bool {
	return p == PatternLinearFall
}

// cruises reports whether the pattern follows a sine path along X.
func (p Pattern) cruises() bool {
	return p == PatternSineCruise || p == PatternFlapGlide
}

// Side tags a wisp with the direction it is pushed during a parting transition.
type Side int

const (
	SideCenter Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "center"
	}
}
