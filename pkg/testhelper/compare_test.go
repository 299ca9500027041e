package testhelper

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCompareCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		actual   string
		opts     CompareOptions
		want     bool
		wantDiff string
	}{
		{
			name:     "identical",
			expected: "a{b:c}",
			actual:   "a{b:c}",
			opts:     DefaultOptions(),
			want:     true,
		},
		{
			name:     "trailing newline ignored by default",
			expected: "a{b:c}\n",
			actual:   "a{b:c}",
			opts:     DefaultOptions(),
			want:     true,
		},
		{
			name:     "trailing newline significant",
			expected: "a{b:c}\n",
			actual:   "a{b:c}",
			opts:     CompareOptions{},
			want:     false,
			wantDiff: `line 1, column 7: expected "\n", got ""`,
		},
		{
			name:     "whitespace collapsed",
			expected: "a {\n  b: c;\n}",
			actual:   "a { b: c; }\n",
			opts:     CompareOptions{IgnoreWhitespace: true},
			want:     true,
		},
		{
			name:     "value differs",
			expected: "a{color:red}",
			actual:   "a{color:#f00}",
			opts:     DefaultOptions(),
			want:     false,
			wantDiff: `line 1, column 9: expected "red}", got "#f00}"`,
		},
		{
			name:     "second line",
			expected: "a {\n  b: c;\n}",
			actual:   "a {\n  b: d;\n}",
			opts:     DefaultOptions(),
			want:     false,
			wantDiff: "line 2, column 6",
		},
		{
			name:     "multibyte character differs",
			expected: `a { content: "→" }`,
			actual:   `a { content: "←" }`,
			opts:     DefaultOptions(),
			want:     false,
			wantDiff: `line 1, column 15: expected "→\" }", got "←\" }"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, diff := CompareCSS(tt.expected, tt.actual, tt.opts)
			if got != tt.want {
				t.Fatalf("CompareCSS() = %v (%s), want %v", got, diff, tt.want)
			}
			if tt.want && diff != "" {
				t.Errorf("diff = %q, want empty", diff)
			}
			if !strings.Contains(diff, tt.wantDiff) {
				t.Errorf("diff = %q, want it to contain %q", diff, tt.wantDiff)
			}
		})
	}
}

func TestSnippet_Truncates(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("x", 50)
	if got := snippet(s, 10); len(got) != snippetLen {
		t.Errorf("len(snippet) = %d, want %d", len(got), snippetLen)
	}
	if got := snippet(s, 50); got != "" {
		t.Errorf("snippet at end = %q, want empty", got)
	}

	// A rune straddling the cut is dropped rather than split.
	s = strings.Repeat("x", snippetLen-1) + "→→"
	if got := snippet(s, 0); got != strings.Repeat("x", snippetLen-1) || !utf8.ValidString(got) {
		t.Errorf("snippet = %q, want %d x's", got, snippetLen-1)
	}
}

func BenchmarkCompareCSS(b *testing.B) {
	css := strings.Repeat(".a{color:red;margin:0}", 500)
	other := css[:len(css)-1] + "!"
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CompareCSS(css, other, opts)
	}
}
