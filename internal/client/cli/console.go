package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console shows notifications on the terminal and asks confirmations.
// Views may notify from several goroutines at once.
type Console struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in *bufio.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

func (c *Console) Success(_ context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "ok:", msg)
}

func (c *Console) Error(_ context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "error:", msg)
}

// Confirm answers true only for an explicit yes. EOF reads as no.
func (c *Console) Confirm(_ context.Context, prompt string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ans, err := GetSimpleText(c.in, prompt+" [y/N]", c.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(ans) {
	case "y", "yes":
		return true
	}
	return false
}
