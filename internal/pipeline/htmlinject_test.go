package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no escape needed",
			input:    "body { color: red; }",
			expected: "body { color: red; }",
		},
		{
			name:     "escapes style close",
			input:    "</style>",
			expected: `<\/style>`,
		},
		{
			name:     "escapes script close",
			input:    "</script>",
			expected: `<\/script>`,
		},
		{
			name:     "multiple occurrences",
			input:    "</a></b>",
			expected: `<\/a><\/b>`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeCSS(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	injector := &CSSInjection{}
	ctx := context.Background()

	t.Run("empty CSS returns HTML unchanged", func(t *testing.T) {
		t.Parallel()

		html := "<html><head></head><body>content</body></html>"
		got := injector.InjectCSS(ctx, html, "")
		if got != html {
			t.Errorf("expected unchanged HTML, got %q", got)
		}
	})

	t.Run("inserts before head close", func(t *testing.T) {
		t.Parallel()

		html := "<html><head><title>T</title></head><body>content</body></html>"
		got := injector.InjectCSS(ctx, html, "body{margin:0}")

		want := "<style>body{margin:0}</style></head>"
		if !strings.Contains(got, want) {
			t.Errorf("style block not before </head>: %q", got)
		}
	})

	t.Run("inserts after body when no head", func(t *testing.T) {
		t.Parallel()

		html := `<body class="doc">content</body>`
		got := injector.InjectCSS(ctx, html, "p{}")

		want := `<body class="doc"><style>p{}</style>`
		if !strings.Contains(got, want) {
			t.Errorf("style block not after <body>: %q", got)
		}
	})

	t.Run("prepends when no head or body", func(t *testing.T) {
		t.Parallel()

		got := injector.InjectCSS(ctx, "<p>bare</p>", "p{}")
		if !strings.HasPrefix(got, "<style>p{}</style>") {
			t.Errorf("style block not prepended: %q", got)
		}
	})

	t.Run("sanitizes injected CSS", func(t *testing.T) {
		t.Parallel()

		html := "<html><head></head><body></body></html>"
		got := injector.InjectCSS(ctx, html, "</style><script>alert(1)</script>")
		if strings.Contains(got, "</style><script>") {
			t.Error("unsanitized CSS escaped the style block")
		}
	})

	t.Run("cancelled context returns HTML unchanged", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		html := "<html><head></head></html>"
		got := injector.InjectCSS(cancelled, html, "p{}")
		if got != html {
			t.Errorf("expected unchanged HTML on cancellation, got %q", got)
		}
	})
}
