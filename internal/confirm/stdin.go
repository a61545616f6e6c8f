package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Nico-ST/SvenSwipe/pkg/logger"
)

// StdinConfirmer prompts on the interactive shell's reader/writer pair.
type StdinConfirmer struct {
	In     *bufio.Reader
	Out    io.Writer
	Logger logger.Logger
}

// NewStdinConfirmer shares the reader with the interactive shell so prompts
// and commands consume the same buffered stream.
func NewStdinConfirmer(in *bufio.Reader, out io.Writer, log logger.Logger) *StdinConfirmer {
	return &StdinConfirmer{
		In:     in,
		Out:    out,
		Logger: log,
	}
}

func (c *StdinConfirmer) ConfirmAuthorization(ctx context.Context) (bool, error) {
	return c.ask(ctx, "Allow access to the photo library? [y/N] ")
}

func (c *StdinConfirmer) ConfirmDeletion(ctx context.Context, count int) (bool, error) {
	return c.ask(ctx, fmt.Sprintf("Delete %d photo(s)? This cannot be undone. [y/N] ", count))
}

func (c *StdinConfirmer) ask(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprint(c.Out, prompt)

	line, err := c.In.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

var _ Confirmer = (*StdinConfirmer)(nil)
