package executor

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Instantiates the new Executor through fx provider
func fxExecutor(t *testing.T) (Executor, *observer.ObservedLogs) {
	var e Executor
	core, recorded := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	fxtest.New(t,
		fx.Supply(logger),
		Module,
		fx.Populate(&e),
	).RequireStart().RequireStop()

	return e, recorded
}

func TestRun(t *testing.T) {
	e, recorded := fxExecutor(t)

	t.Run("captures stdout", func(t *testing.T) {
		binPath, err := exec.LookPath("echo")
		if errors.Is(err, exec.ErrNotFound) {
			t.Skip("no echo available")
		}
		require.NoError(t, err)

		cmd := exec.Command("echo", "hello")
		cmd.Dir = "/"
		stdout, exitCode, err := e.Run(cmd)
		require.NoError(t, err)
		assert.Equal(t, 0, exitCode)
		assert.Equal(t, "hello\n", string(stdout))

		logs := recorded.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, map[string]interface{}{
			"component": "executor",
			"Path":      binPath,
			"Dir":       "/",
			"Args":      []interface{}{"hello"},
		}, logs[0].ContextMap())
	})

	t.Run("logs stdin", func(t *testing.T) {
		if _, err := exec.LookPath("cat"); errors.Is(err, exec.ErrNotFound) {
			t.Skip("no cat available")
		}

		cmd := exec.Command("cat")
		cmd.Stdin = strings.NewReader("SomeInput")
		stdout, _, err := e.Run(cmd)
		require.NoError(t, err)
		assert.Equal(t, "SomeInput", string(stdout))

		logs := recorded.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "SomeInput", logs[0].ContextMap()["Stdin"])
	})

	t.Run("non-zero exit", func(t *testing.T) {
		if _, err := exec.LookPath("false"); errors.Is(err, exec.ErrNotFound) {
			t.Skip("no false available")
		}

		stdout, exitCode, err := e.Run(exec.Command("false"))
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 1, exitCode)
		assert.Empty(t, stdout)
		recorded.TakeAll()
	})
}

func TestStart(t *testing.T) {
	e, recorded := fxExecutor(t)

	if _, err := exec.LookPath("cat"); errors.Is(err, exec.ErrNotFound) {
		t.Skip("no cat available")
	}

	cmd := exec.Command("cat")
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)

	require.NoError(t, e.Start(cmd))
	require.NoError(t, stdin.Close())
	require.NoError(t, cmd.Wait())

	logs := recorded.TakeAll()
	require.Len(t, logs, 1)
	_, hasStdin := logs[0].ContextMap()["Stdin"]
	assert.False(t, hasStdin)
}

func TestInjectedFuncs(t *testing.T) {
	var ran, started bool
	e := NewExecutor(
		WithExecFunc(func(cmd *exec.Cmd) error {
			ran = true
			_, err := cmd.Stdout.Write([]byte("{}"))
			return err
		}),
		WithStartFunc(func(cmd *exec.Cmd) error {
			started = true
			return nil
		}),
	)

	stdout, exitCode, err := e.Run(exec.Command("cargo", "check"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(stdout))
	assert.Equal(t, -1, exitCode)
	assert.True(t, ran)

	require.NoError(t, e.Start(exec.Command("rust-analyzer")))
	assert.True(t, started)
}

func TestMissingFuncs(t *testing.T) {
	e := &executorImp{Logger: zap.NewNop().Sugar()}

	stdout, exitCode, err := e.Run(exec.Command("cargo"))
	assert.NoError(t, err)
	assert.Nil(t, stdout)
	assert.Equal(t, 0, exitCode)
	assert.NoError(t, e.Start(exec.Command("cargo")))
}
