package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/value"
)

func TestParseWithHeader(t *testing.T) {
	t.Parallel()
	src := "---\n" +
		"timeout_ms: 500\n" +
		"auto_exceptions:\n" +
		"  - \"^fatal:\"\n" +
		"variables:\n" +
		"  greeting: hello\n" +
		"  count: 3\n" +
		"---\n" +
		"\"hi\" -> log\n"

	doc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, 500, doc.Config.TimeoutMS)
	assert.Equal(t, []string{"^fatal:"}, doc.Config.AutoExceptions)
	assert.Equal(t, "\"hi\" -> log\n", doc.Body)

	vars := doc.Config.RuntimeVariables()
	assert.Equal(t, value.Str("hello"), vars["greeting"])
	assert.Equal(t, value.Num(3), vars["count"])
}

func TestParseWithoutHeader(t *testing.T) {
	t.Parallel()
	src := "\"hi\" -> log\n"
	doc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, doc.Body)
	assert.Equal(t, Config{}, doc.Config)
}

func TestParseUnterminatedHeaderErrors(t *testing.T) {
	t.Parallel()
	src := "---\ntimeout_ms: 500\n"
	_, err := Parse(src)
	assert.Error(t, err)
}

func TestParseEmptyHeader(t *testing.T) {
	t.Parallel()
	src := "---\n---\n\"hi\" -> log\n"
	doc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, Config{}, doc.Config)
	assert.Equal(t, "\"hi\" -> log\n", doc.Body)
}
