package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"plain",
		"50% off #1 deal",
		"$5 & rising",
		"",
	} {
		assert.Equal(t, s, Unescape(Escape(s)))
	}
}

func TestEscapeHidesDelimiters(t *testing.T) {
	out := Escape("a#b%c")
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "%")
}

func TestBuild(t *testing.T) {
	assert.Equal(t, "CT#mod#hello#%", string(Build("CT", "mod", "hello")))
	assert.Equal(t, "CH#%", string(Build("CH")))
}

func TestBuildEscapesArgs(t *testing.T) {
	frame := string(Build("CT", "name", "100% sure"))
	assert.Equal(t, "CT#name#100<percent> sure#%", frame)
}

func TestParse(t *testing.T) {
	msg := Parse("CT#mod#hello#")
	require.Equal(t, "CT", msg.Cmd)
	require.Len(t, msg.Args, 2)
	assert.Equal(t, "mod", msg.Args[0])
	assert.Equal(t, "hello", msg.Args[1])
}

func TestParseUnescapes(t *testing.T) {
	msg := Parse("CT#name#100<percent> sure#")
	assert.Equal(t, "100% sure", msg.Arg(1))
}

func TestParseNoTrailingSeparator(t *testing.T) {
	msg := Parse("HI#abcdef")
	assert.Equal(t, "HI", msg.Cmd)
	assert.Equal(t, []string{"abcdef"}, msg.Args)
}

func TestParseBareCommand(t *testing.T) {
	msg := Parse("CH#")
	assert.Equal(t, "CH", msg.Cmd)
	assert.Empty(t, msg.Args)
}

func TestArgOutOfRange(t *testing.T) {
	msg := Message{Cmd: "HI", Args: []string{"a"}}
	assert.Equal(t, "a", msg.Arg(0))
	assert.Equal(t, "", msg.Arg(1))
	assert.Equal(t, "", msg.Arg(-1))
}

func TestBuildParseRoundTrip(t *testing.T) {
	frame := Build("MC", "Basement #2", "50%")
	// Strip the terminator the way the reader does.
	msg := Parse(string(frame[:len(frame)-1]))
	assert.Equal(t, "MC", msg.Cmd)
	assert.Equal(t, []string{"Basement #2", "50%"}, msg.Args)
}
