package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadge_Render(t *testing.T) {
	var buf bytes.Buffer
	b := NewBadge(&buf)

	b.Render(3, true)
	require.Contains(t, buf.String(), "3")

	buf.Reset()
	b.Render(0, false)
	require.Contains(t, buf.String(), "cart is empty")
}
