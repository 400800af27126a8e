package core

// Mode is a feature category selecting the system instructions used for a
// session (chat, code, presentation, research, multimodal).
type Mode string

const (
	// ModeChat is general conversation. It is also the fallback every
	// unrecognized mode resolves to.
	ModeChat Mode = "chat"
	// ModeCode is the programming assistant mode.
	ModeCode Mode = "code"
	// ModePPT is the presentation authoring mode.
	ModePPT Mode = "ppt"
	// ModeResearch is the deep research mode.
	ModeResearch Mode = "research"
	// ModeMultimodal is the mixed-media mode.
	ModeMultimodal Mode = "multimodal"
)

// Modes lists all known feature modes in display order.
func Modes() []Mode {
	return []Mode{ModeChat, ModeCode, ModePPT, ModeResearch, ModeMultimodal}
}

// Valid reports whether m is one of the known feature modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeChat, ModeCode, ModePPT, ModeResearch, ModeMultimodal:
		return true
	}
	return false
}
