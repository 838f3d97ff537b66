package highlight

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestBuildTerms(t *testing.T) {
	tests := []struct {
		name     string
		single   string
		multiple []string
		want     []string
	}{
		{"nothing", "", nil, nil},
		{"empty entries skipped", "", []string{"", ""}, nil},
		{"single only", "foo", nil, []string{"foo"}},
		{"single first then multiple", "a", []string{"b", "c"}, []string{"a", "b", "c"}},
		{"encoded twin follows raw", "a<b", nil, []string{"a<b", "a&lt;b"}},
		{"twins in multiple", "", []string{"x&y", "z"}, []string{"x&y", "x&amp;y", "z"}},
		{"quotes encoded", `say "hi"`, nil, []string{`say "hi"`, "say &quot;hi&quot;"}},
		{"apostrophe encoded", "it's", nil, []string{"it's", "it&#39;s"}},
		{"duplicates kept", "a", []string{"a"}, []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildTerms(tt.single, tt.multiple))
		})
	}
}

func TestEncodeHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt; &amp; &quot;q&quot; &#39;s&#39;", EncodeHTML(`<b> & "q" 's'`))
	assert.Equal(t, "&amp;amp;", EncodeHTML("&amp;"))
	assert.Equal(t, "plain", EncodeHTML("plain"))
}

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		name     string
		terms    []string
		boundary bool
		want     string
	}{
		{"no terms", nil, false, ""},
		{"only empty terms", []string{""}, true, ""},
		{"single term", []string{"foo"}, false, "((?:foo))"},
		{"alternation", []string{"foo", "bar"}, false, "((?:foo)|(?:bar))"},
		{"metacharacters escaped", []string{"a.b", "c+d"}, false, `((?:a\.b)|(?:c\+d))`},
		{"empty entries skipped", []string{"", "x", ""}, false, "((?:x))"},
		{"until next boundary", []string{"foo", "bar"}, true, `((?:foo.*?\b)|(?:bar.*?\b))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompilePattern(tt.terms, tt.boundary))
		})
	}
}

func TestCompilePattern_CaseModeNotInPattern(t *testing.T) {
	pattern := CompilePattern([]string{"Foo"}, false)
	assert.NotContains(t, pattern, "(?i)")

	re, err := compileRegexp(pattern, false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("FOO"))

	re, err = compileRegexp(pattern, true)
	require.NoError(t, err)
	assert.False(t, re.MatchString("FOO"))
}

func TestCompilePattern_ReusesScratchBuffer(t *testing.T) {
	CompilePattern([]string{"warm"}, false)
	buf := cachedBuffer.Load()
	require.NotNil(t, buf)
	assert.Zero(t, buf.Len())

	CompilePattern([]string{"again"}, false)
	assert.Same(t, buf, cachedBuffer.Load())
}

func TestCompilePattern_ConcurrentCallsDoNotShareBuffers(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 200; i++ {
		g.Go(func() error {
			terms := []string{fmt.Sprintf("term%d", i), fmt.Sprintf("other%d", i)}
			want := fmt.Sprintf("((?:term%d)|(?:other%d))", i, i)
			for j := 0; j < 50; j++ {
				if got := CompilePattern(terms, false); got != want {
					return fmt.Errorf("got %q, want %q", got, want)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestFragmentType_JSON(t *testing.T) {
	data, err := json.Marshal([]Fragment{{Content: "a", Type: FragmentHighlightedText}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"content":"a","type":"highlighted"}]`, string(data))

	var decoded []Fragment
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, FragmentHighlightedText, decoded[0].Type)

	var bad FragmentType
	assert.Error(t, json.Unmarshal([]byte(`"bold"`), &bad))
}

func TestFragmentType_String(t *testing.T) {
	assert.Equal(t, "text", FragmentText.String())
	assert.Equal(t, "highlighted", FragmentHighlightedText.String())
	assert.Equal(t, "markup", FragmentMarkup.String())
	assert.Equal(t, "FragmentType(9)", FragmentType(9).String())
}
