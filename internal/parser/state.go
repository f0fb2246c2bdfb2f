package parser

// State enumerates the packet-lifecycle states of the parser. Exactly one
// packet occupies the parsing stages at a time; a new packet cannot begin
// admission until the machine has returned to StateIdle.
type State int

const (
	StateIdle State = iota
	StateParseHeader
	StateStreamPayload
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateParseHeader:
		return "PARSE_HEADER"
	case StateStreamPayload:
		return "STREAM_PAYLOAD"
	default:
		return "UNKNOWN"
	}
}
