package mkvtoolnix

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"mkvcleaner/internal/logging"
	"mkvcleaner/internal/services"
)

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "mkvtoolnix")
	}
}

// WithTimeouts bounds each operation; zero leaves an operation unbounded.
func WithTimeouts(identify, extract, mux time.Duration) Option {
	return func(c *Client) {
		c.identifyTimeout = identify
		c.extractTimeout = extract
		c.muxTimeout = mux
	}
}

// Client wraps mkvmerge and mkvextract interactions.
type Client struct {
	mkvmerge        string
	mkvextract      string
	identifyTimeout time.Duration
	extractTimeout  time.Duration
	muxTimeout      time.Duration
	exec            Executor
	logger          *slog.Logger
}

// New constructs a client. mkvextract may be empty when extraction is never
// requested.
func New(mkvmerge, mkvextract string, opts ...Option) (*Client, error) {
	mkvmerge = strings.TrimSpace(mkvmerge)
	if mkvmerge == "" {
		return nil, services.Wrap(services.ErrConfiguration, "mkvtoolnix", "new client", "mkvmerge binary required", nil)
	}
	client := &Client{
		mkvmerge:   mkvmerge,
		mkvextract: strings.TrimSpace(mkvextract),
		exec:       commandExecutor{},
		logger:     logging.NewComponentLogger(nil, "mkvtoolnix"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Version returns the first line of `mkvmerge --version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	ctx, cancel := withTimeout(ctx, c.identifyTimeout)
	defer cancel()
	out, err := c.exec.Output(ctx, c.mkvmerge, []string{"--version"})
	if err != nil {
		return "", c.toolError(ctx, "version", c.mkvmerge, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// Extract writes track trackID of path to dest with `mkvextract tracks`.
func (c *Client) Extract(ctx context.Context, path string, trackID int, dest string) error {
	if c.mkvextract == "" {
		return services.Wrap(services.ErrConfiguration, "extract", "mkvextract", "mkvextract binary not configured", nil)
	}
	ctx, cancel := withTimeout(ctx, c.extractTimeout)
	defer cancel()

	args := []string{"tracks", path, strconv.Itoa(trackID) + ":" + dest}
	c.logger.Debug("executing mkvextract",
		logging.String("source", path),
		logging.Int(logging.FieldTrackID, trackID),
		logging.String("destination", dest),
	)
	if err := c.exec.Run(ctx, c.mkvextract, args, nil); err != nil {
		return c.toolError(ctx, "extract", c.mkvextract, err)
	}
	if _, err := os.Stat(dest); err != nil {
		return services.Wrap(services.ErrExternalTool, "extract", "mkvextract", fmt.Sprintf("track %d produced no output", trackID), err)
	}
	return nil
}

// Mux runs mkvmerge for plan. progress, when set, receives each percentage
// mkvmerge reports; it may be called from two goroutines, one per output
// stream, and must synchronize its own state.
func (c *Client) Mux(ctx context.Context, plan MuxPlan, progress func(int)) error {
	if err := plan.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, "mux", "mkvmerge", "invalid mux plan", err)
	}
	ctx, cancel := withTimeout(ctx, c.muxTimeout)
	defer cancel()

	args := plan.Args()
	c.logger.Debug("executing mkvmerge",
		logging.String("output", plan.Output),
		logging.Int("external_subtitles", len(plan.External)),
		logging.String("args", strings.Join(args, " ")),
	)
	err := c.exec.Run(ctx, c.mkvmerge, args, func(line string) {
		if progress == nil {
			return
		}
		if percent, ok := ParseProgress(line); ok {
			progress(percent)
		}
	})
	if err != nil {
		_ = os.Remove(plan.Output)
		return c.toolError(ctx, "mux", c.mkvmerge, err)
	}
	return nil
}

func (c *Client) toolError(ctx context.Context, stage, binary string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return services.Wrap(services.ErrTimeout, stage, binary, "timed out", err)
	case isMissingBinary(err):
		return services.Wrap(services.ErrExternalTool, stage, binary, "binary not found", err)
	default:
		return services.Wrap(services.ErrExternalTool, stage, binary, "command failed", err)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
