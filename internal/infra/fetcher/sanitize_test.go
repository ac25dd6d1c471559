package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_Sanitize(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name        string
		in          string
		contains    []string
		notContains []string
	}{
		{
			name:        "script removed",
			in:          `<p>hello</p><script>alert(1)</script>`,
			contains:    []string{"<p>hello</p>"},
			notContains: []string{"script", "alert"},
		},
		{
			name:        "event handler removed",
			in:          `<p onclick="steal()">text</p>`,
			contains:    []string{"<p>text</p>"},
			notContains: []string{"onclick"},
		},
		{
			name:     "external link gets nofollow and blank target",
			in:       `<a href="https://example.org/x">x</a>`,
			contains: []string{`rel="nofollow`, `target="_blank"`, `href="https://example.org/x"`},
		},
		{
			name:        "javascript url dropped",
			in:          `<a href="javascript:alert(1)">x</a>`,
			notContains: []string{"javascript"},
		},
		{
			name:     "images kept",
			in:       `<img src="https://img.example.com/a.jpg" alt="lead">`,
			contains: []string{`src="https://img.example.com/a.jpg"`, `alt="lead"`},
		},
		{
			name:        "iframe removed",
			in:          `<iframe src="https://evil.example.com"></iframe><p>ok</p>`,
			contains:    []string{"<p>ok</p>"},
			notContains: []string{"iframe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.Sanitize(tt.in)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, c := range tt.notContains {
				assert.NotContains(t, out, c)
			}
		})
	}
}
