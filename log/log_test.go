package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracefOnlyForEnabledTags(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	oldWriter := TraceWriter
	TraceWriter = &buf
	defer func() { TraceWriter = oldWriter }()

	TraceEnabled("x") // make sure the env has been loaded first
	TraceSetting["fifo"] = true
	defer delete(TraceSetting, "fifo")

	Tracef("fifo", "consumed %d lots", 2)
	Tracef("not-a-tag", "hidden")
	rq.Equal("TR fifo consumed 2 lots\n", buf.String())
}

func TestFverbosef(t *testing.T) {
	rq := require.New(t)
	var buf bytes.Buffer

	Fverbosef(&buf, "quiet %s", "please")
	rq.Equal("", buf.String())

	VerboseEnabled = true
	defer func() { VerboseEnabled = false }()
	Fverbosef(&buf, "loud %s", "now")
	rq.Equal("loud now", buf.String())
}

func TestBufErrorPrinter(t *testing.T) {
	rq := require.New(t)
	p := &BufErrorPrinter{}
	p.Ln("Error:", "boom")
	p.F("line %d\n", 3)
	rq.Equal("Error: boom\nline 3\n", p.Buf.String())
}
