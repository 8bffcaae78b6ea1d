package statemod

import (
	"strings"
	"testing"
	"time"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/stretchr/testify/require"
)

func sp(n int) string { return strings.Repeat(" ", n) }

func testHeader() fixedformat.HeaderOptions {
	return fixedformat.HeaderOptions{
		Now:     func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		Program: "statemod test",
		User:    "tester",
	}
}

// dataLines returns the lines of a written file that are not comments.
func dataLines(t *testing.T, text string) []string {
	t.Helper()
	var out []string
	for _, l := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if strings.HasPrefix(l, "#") {
			continue
		}
		out = append(out, l)
	}
	require.NotNil(t, out)
	return out
}
