package packet

import "strings"

// Client-to-server commands.
const (
	C_HANDSHAKE  = "HI" // hdid
	C_VERSION    = "ID" // client name, version
	C_JOIN       = "RD" // done loading, join default area
	C_CHAR_PICK  = "CC" // char id
	C_OOC        = "CT" // name, message (slash commands parsed server-side)
	C_AREA       = "MC" // area name (doubles as music in the stock protocol)
	C_KEEPALIVE  = "CH"
	C_CHAR_LIST  = "RC"
	C_MUSIC_LIST = "RM"
)

// Server-to-client commands.
const (
	S_HANDSHAKE   = "ID" // client id, server software, version
	S_OOC         = "CT" // name, message
	S_AREA_LIST   = "FA"
	S_CHAR_LIST   = "SC"
	S_MUSIC       = "MC"
	S_BACKGROUND  = "BN"
	S_HEALTH      = "HP" // side, value
	S_EVIDENCE    = "LE"
	S_TIME_OF_DAY = "CL"
	S_AMBIENT     = "MA"
	S_ATTENTION   = "RT" // "attention" or "attention_ding"
	S_PLAYER_LIST = "PL" // area id, then (client id, showname) pairs
	S_CHAR_PICKED = "PV"
	S_JOINED      = "DONE"
	S_BANNED      = "BD" // reason
)

// Message is one decoded protocol message.
type Message struct {
	Cmd  string
	Args []string
}

// Field escaping. The frame delimiters must never appear inside a field;
// the substitutions follow the AO text protocol.
var fieldEscaper = strings.NewReplacer(
	"#", "<num>",
	"%", "<percent>",
	"$", "<dollar>",
	"&", "<and>",
)

var fieldUnescaper = strings.NewReplacer(
	"<num>", "#",
	"<percent>", "%",
	"<dollar>", "$",
	"<and>", "&",
)

// Escape substitutes frame delimiter characters inside a field.
func Escape(s string) string {
	return fieldEscaper.Replace(s)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return fieldUnescaper.Replace(s)
}

// Build encodes a message as a wire frame: CMD#arg1#arg2#%
func Build(cmd string, args ...string) []byte {
	var b strings.Builder
	b.WriteString(cmd)
	b.WriteByte('#')
	for _, a := range args {
		b.WriteString(Escape(a))
		b.WriteByte('#')
	}
	b.WriteByte('%')
	return []byte(b.String())
}

// Parse decodes a wire frame (without the trailing '%') into a Message.
func Parse(frame string) Message {
	parts := strings.Split(frame, "#")
	msg := Message{Cmd: parts[0]}
	// A well-formed frame ends with a '#' before the terminator, leaving a
	// trailing empty part. Tolerate its absence.
	rest := parts[1:]
	if n := len(rest); n > 0 && rest[n-1] == "" {
		rest = rest[:n-1]
	}
	for _, p := range rest {
		msg.Args = append(msg.Args, Unescape(p))
	}
	return msg
}

// Arg returns the i-th argument or the empty string.
func (m Message) Arg(i int) string {
	if i < 0 || i >= len(m.Args) {
		return ""
	}
	return m.Args[i]
}
