package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"decimal-calc/internal/calculation"
)

var (
	// ErrCrashed reports a worker that panicked, exited non-zero or replied
	// with something that is not a Response.
	ErrCrashed = errors.New("worker crashed")

	// ErrTimeout reports a worker that did not finish within its deadline.
	ErrTimeout = errors.New("worker timed out")
)

// Runner executes a calculation and returns its result.
type Runner interface {
	Run(ctx context.Context, calc calculation.Calculation) (decimal.Decimal, error)
}

// Inline runs calculations in the calling goroutine.
type Inline struct{}

func (Inline) Run(ctx context.Context, calc calculation.Calculation) (result decimal.Decimal, err error) {
	if err := ctx.Err(); err != nil {
		return decimal.Decimal{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			result = decimal.Decimal{}
			err = fmt.Errorf("%w: %v", ErrCrashed, r)
		}
	}()

	return calc.Perform()
}

// Process runs each calculation in a freshly spawned worker process and waits
// for it. The worker receives a Request on stdin and answers on stdout.
type Process struct {
	Path    string
	Args    []string
	Env     []string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewProcess returns a Process that re-executes the running binary with the
// "worker" subcommand.
func NewProcess(timeout time.Duration, logger *zap.Logger) (*Process, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Process{
		Path:    exe,
		Args:    []string{"worker"},
		Timeout: timeout,
		Logger:  logger,
	}, nil
}

func (p *Process) Run(ctx context.Context, calc calculation.Calculation) (decimal.Decimal, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(newRequest(calc))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("encode request: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Path, p.Args...)
	cmd.Env = append(append(os.Environ(), p.Env...), traceEnv(ctx)...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()

	logger := p.logger().With(
		zap.String("calculation_id", calc.ID()),
		zap.Duration("duration", time.Since(start)),
	)

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		logger.Error("worker timed out", zap.Duration("timeout", p.Timeout))
		return decimal.Decimal{}, fmt.Errorf("%w after %s", ErrTimeout, p.Timeout)
	case ctx.Err() != nil:
		return decimal.Decimal{}, ctx.Err()
	case runErr != nil:
		logger.Error("worker exited abnormally",
			zap.Error(runErr),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
		)
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrCrashed, runErr)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		logger.Error("worker reply not decodable", zap.Error(err), zap.ByteString("stdout", stdout.Bytes()))
		return decimal.Decimal{}, fmt.Errorf("%w: decode reply: %v", ErrCrashed, err)
	}

	logger.Debug("worker finished", zap.Int("pid", cmd.ProcessState.Pid()))
	return resp.outcome()
}

func (p *Process) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
