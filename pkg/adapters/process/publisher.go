package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ErrCommandNotRegistered is returned when the selected command is not in the allow-list.
var ErrCommandNotRegistered = errors.New("publish command not registered")

// IPFSAddCommand publishes through a local Kubo CLI, printing only the CID.
var IPFSAddCommand = CommandConfig{
	Name:        "ipfs",
	Command:     "ipfs",
	Args:        []string{"add", "-Q", "--pin=true"},
	Description: "Add the document to the local IPFS node",
}

// Publisher implements ports.Publisher by piping the document into a local process.
// Only registered commands can run; the document is passed on stdin, never as arguments.
type Publisher struct {
	registry map[string]CommandConfig
	selected string
	baseDir  string
	timeout  time.Duration
}

// Option configures the publisher.
type Option func(*Publisher)

// WithRegistry populates the allow-list from a loaded config.
func WithRegistry(commands map[string]CommandConfig) Option {
	return func(p *Publisher) {
		for _, c := range commands {
			p.Register(c)
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) Option {
	return func(p *Publisher) {
		p.baseDir = dir
	}
}

// WithTimeout bounds each run.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.timeout = d
	}
}

// New creates a publisher running the registered command named selected.
// IPFSAddCommand is always registered.
func New(selected string, opts ...Option) *Publisher {
	p := &Publisher{
		registry: make(map[string]CommandConfig),
		selected: selected,
		timeout:  time.Minute,
	}
	p.Register(IPFSAddCommand)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register adds a trusted command to the allow-list.
func (p *Publisher) Register(c CommandConfig) {
	if c.Name == "" {
		return
	}
	p.registry[c.Name] = c
}

// Publish runs the selected command with text on stdin and returns the last
// non-empty line of its stdout, trimmed.
func (p *Publisher) Publish(ctx context.Context, text string) (string, error) {
	c, ok := p.registry[p.selected]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCommandNotRegistered, p.selected)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Command, c.Args...)
	cmd.Dir = p.baseDir
	cmd.Stdin = strings.NewReader(text)

	env := []string{"SEMTOKEN_DOCUMENT_BYTES=" + strconv.Itoa(len(text))}
	for k, v := range c.Environment {
		env = append(env, k+"="+v)
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("publish command %s: %w", c.Name, ctxErr)
		}
		return "", fmt.Errorf("publish command %s failed: %w. Stderr: %s", c.Name, err, strings.TrimSpace(stderr.String()))
	}

	address := lastLine(stdout.String())
	if address == "" {
		return "", fmt.Errorf("publish command %s printed no address", c.Name)
	}
	return address, nil
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
