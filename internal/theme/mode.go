package theme

// Mode says where the resolved theme comes from: the clock or the user.
type Mode interface {
	isMode()
	String() string
}

type autoMode struct{}

type manualMode struct {
	theme Theme
}

func (autoMode) isMode()   {}
func (manualMode) isMode() {}

func (autoMode) String() string     { return "auto" }
func (m manualMode) String() string { return m.theme.String() }

// Auto follows the clock.
func Auto() Mode { return autoMode{} }

// Manual pins the palette to t.
func Manual(t Theme) Mode { return manualMode{theme: t} }

// ManualTheme returns the pinned theme when m is manual.
func ManualTheme(m Mode) (Theme, bool) {
	if mm, ok := m.(manualMode); ok {
		return mm.theme, true
	}
	return Dark, false
}

// ParseMode accepts "auto" (or empty) plus anything ParseTheme accepts.
func ParseMode(value string) (Mode, error) {
	switch value {
	case "", "auto":
		return Auto(), nil
	}
	t, err := ParseTheme(value)
	if err != nil {
		return nil, err
	}
	return Manual(t), nil
}
