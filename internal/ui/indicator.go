package ui

// IndicatorMode represents the current input mode.
type IndicatorMode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal IndicatorMode = iota

	// ModeCommand switches views (: prefix).
	ModeCommand

	// ModeFilter narrows the active table (/ prefix).
	ModeFilter

	// ModeSend composes a chat message (> prefix).
	ModeSend
)

// Mode indicators.
const (
	IndicatorNormal  = "🏷 "
	IndicatorCommand = "🏷 "
	IndicatorFilter  = "🔍"
	IndicatorSend    = "💬"
)

// Prefix returns the prompt prefix of the mode.
func (m IndicatorMode) Prefix() string {
	switch m {
	case ModeCommand:
		return ":"
	case ModeFilter:
		return "/"
	case ModeSend:
		return "✎"
	default:
		return ">"
	}
}

// Icon returns the prompt icon of the mode.
func (m IndicatorMode) Icon() string {
	switch m {
	case ModeFilter:
		return IndicatorFilter
	case ModeSend:
		return IndicatorSend
	case ModeCommand:
		return IndicatorCommand
	default:
		return IndicatorNormal
	}
}
