package executor

import (
	"bytes"
	"io"
	"os"
	"os/exec"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides a module to inject using fx.
var Module = fx.Provide(func(logger *zap.SugaredLogger) Executor {
	return NewExecutor(WithLogger(logger.With("component", "executor")))
})

// Executor wraps the execution of "os/exec".Cmd's to allow adding logs/metrics to
// each exec and makes it easier to test.
type Executor interface {
	// Start - logs and starts the Cmd specified without waiting for it to complete.
	Start(cmd *exec.Cmd) error
	// Run - logs and executes the Cmd specified, overriding its Stdout to return its content.
	// Stderr is left as configured by the caller.
	Run(cmd *exec.Cmd) (stdout []byte, exitCode int, err error)
}

// executorImp implements Executor
type executorImp struct {
	Logger *zap.SugaredLogger
	// ExecFunc may be nil to use executorImp in tests.
	ExecFunc func(e *exec.Cmd) error
	// StartFunc may be nil to use executorImp in tests.
	StartFunc func(e *exec.Cmd) error
}

// Option defines options to customize executorImp's behavior
type Option func(*executorImp)

// WithLogger overrides the default noop logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(executor *executorImp) {
		executor.Logger = logger
	}
}

// WithExecFunc provides customized exec behavior for executorImp
func WithExecFunc(execFunc func(e *exec.Cmd) error) Option {
	return func(executor *executorImp) {
		executor.ExecFunc = execFunc
	}
}

// WithStartFunc provides customized start behavior for executorImp
func WithStartFunc(startFunc func(e *exec.Cmd) error) Option {
	return func(executor *executorImp) {
		executor.StartFunc = startFunc
	}
}

// NewExecutor - creates a new executorImp with a noop logger and default exec and start functions
func NewExecutor(opts ...Option) Executor {
	executor := &executorImp{
		Logger:    zap.NewNop().Sugar(),
		ExecFunc:  func(cmd *exec.Cmd) error { return cmd.Run() },
		StartFunc: func(cmd *exec.Cmd) error { return cmd.Start() },
	}
	for _, opt := range opts {
		opt(executor)
	}
	return executor
}

// Start - logs the Path/Args and calls StartFunc if it is set.
func (l *executorImp) Start(cmd *exec.Cmd) error {
	if err := l.logCommand(cmd); err != nil {
		return err
	}

	if l.StartFunc == nil {
		l.Logger.Warn("missing StartFunc - skipped start")
		return nil
	}
	return l.StartFunc(cmd)
}

// Run - logs the Path/Args and calls ExecFunc if it is set.
func (l *executorImp) Run(cmd *exec.Cmd) (stdout []byte, exitCode int, err error) {
	if err := l.logCommand(cmd); err != nil {
		return nil, -1, err
	}

	if l.ExecFunc == nil {
		l.Logger.Warn("missing ExecFunc - skipped execution")
		return nil, 0, nil
	}

	var stdoutB bytes.Buffer
	cmd.Stdout = &stdoutB
	err = l.ExecFunc(cmd)

	return stdoutB.Bytes(), cmd.ProcessState.ExitCode(), err
}

// Logs the command specified: Path, Dir, Args, Stdin (if available)
func (l *executorImp) logCommand(cmd *exec.Cmd) error {
	logKeysAndValues := []interface{}{
		"Path", cmd.Path,
		"Dir", cmd.Dir,
		"Args", cmd.Args[1:], // First arg is always the command itself
	}

	// Files, including the read end of StdinPipe, belong to the process and are not consumed here.
	if _, isFile := cmd.Stdin.(*os.File); cmd.Stdin != nil && !isFile {
		stdinBytes, err := io.ReadAll(cmd.Stdin)
		if err != nil {
			return err
		}
		logKeysAndValues = append(logKeysAndValues, "Stdin", string(stdinBytes))
		cmd.Stdin = bytes.NewReader(stdinBytes)
	}

	l.Logger.Infow("Exec", logKeysAndValues...)
	return nil
}
