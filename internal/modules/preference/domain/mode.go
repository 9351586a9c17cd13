package domain

// PreferenceKey is the single persisted key holding the chosen mode.
const PreferenceKey = "preferredMode"

type Mode string

const (
	Serious Mode = "serious"
	Playful Mode = "playful"
)

// ParseMode accepts exactly the two persisted spellings.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case Serious:
		return Serious, true
	case Playful:
		return Playful, true
	default:
		return "", false
	}
}

func (m Mode) Other() Mode {
	if m == Playful {
		return Serious
	}
	return Playful
}

func (m Mode) Valid() bool {
	return m == Serious || m == Playful
}

func (m Mode) String() string {
	return string(m)
}
