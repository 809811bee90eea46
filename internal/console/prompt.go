package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/zgs/booking-client/internal/controller"
)

var _ controller.Confirmer = (*Prompt)(nil)

// ErrClosed is returned once the input is exhausted.
var ErrClosed = errors.New("input closed")

// Prompt owns the terminal: commands and confirmations are read from the
// same line stream.
type Prompt struct {
	mu  sync.Mutex
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewScanner(in), out: out}
}

func (p *Prompt) ReadLine(prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", ErrClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Confirm accepts y or yes; anything else, including end of input, declines.
func (p *Prompt) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	line, err := p.ReadLine(question + " [y/N] ")
	if errors.Is(err, ErrClosed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompt) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompt) Writer() io.Writer {
	return p.out
}
