package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#E4572E")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8A8F98"))
)

// Badge dibuja el contador del carrito en una terminal. Implementa cart.Badge.
type Badge struct {
	out io.Writer
}

// NewBadge: out nil => stderr.
func NewBadge(out io.Writer) *Badge {
	if out == nil {
		out = os.Stderr
	}
	return &Badge{out: out}
}

func (b *Badge) Render(count int, visible bool) {
	if !visible {
		fmt.Fprintln(b.out, labelStyle.Render("cart is empty"))
		return
	}
	fmt.Fprintln(b.out, labelStyle.Render("cart")+" "+badgeStyle.Render(fmt.Sprintf("%d", count)))
}
