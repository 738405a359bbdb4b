package audio

// ChannelEventType identifies a channel lifecycle transition.
type ChannelEventType uint8

const (
	ChannelStarted ChannelEventType = iota // IsRunning went false -> true
	ChannelStopped                         // IsRunning went true -> false
	ChannelEnded                           // reached Length without looping
	ChannelRemoved                         // dropped from the manager's active set
)

func (t ChannelEventType) String() string {
	switch t {
	case ChannelStarted:
		return "started"
	case ChannelStopped:
		return "stopped"
	case ChannelEnded:
		return "ended"
	case ChannelRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ChannelEvent is forwarded to an EventSink.
type ChannelEvent struct {
	Type    ChannelEventType
	Name    string
	Time    float64 // channel position when the event fired
	Channel *Channel
}

// EventSink receives lifecycle events for every channel a Manager owns.
type EventSink interface {
	EmitChannelEvent(event ChannelEvent)
}
