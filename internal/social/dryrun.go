package social

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// DryRunPoster writes status updates to w instead of publishing them.
type DryRunPoster struct {
	mu sync.Mutex
	w  io.Writer
	n  int
}

func NewDryRunPoster(w io.Writer) *DryRunPoster {
	return &DryRunPoster{w: w}
}

func (d *DryRunPoster) Post(_ context.Context, message string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.n++
	if _, err := fmt.Fprintf(d.w, "%s\n", message); err != nil {
		return "", err
	}
	return fmt.Sprintf("dry-run-%d", d.n), nil
}
