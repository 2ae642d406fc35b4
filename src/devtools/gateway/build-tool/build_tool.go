package buildtool

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/tidwall/gjson"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/internal/executor"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKey = "buildTool"

	_backtraceOn  = "full"
	_backtraceOff = "0"
	_noCapture    = "--nocapture"
)

// Reasons tagging each structured output line.
const (
	ReasonCompilerArtifact    = "compiler-artifact"
	ReasonBuildScriptExecuted = "build-script-executed"
	ReasonCompilerMessage     = "compiler-message"
	ReasonBuildFinished       = "build-finished"
)

// Module provides the build tool runner.
var Module = fx.Provide(New)

// Config of the build tool invocation.
type Config struct {
	Command              string `yaml:"command"`
	StructuredOutputFlag string `yaml:"structuredOutputFlag"`
	BacktraceEnv         string `yaml:"backtraceEnv"`
}

// Runner spawns the build tool in a project and parses its output.
type Runner interface {
	// Run executes the build tool with the structured output flag appended to args.
	Run(ctx context.Context, project entity.Project, args []string, backtrace bool) (*Output, error)
	// Check returns the errors and warnings of a check run that carry at least one span.
	Check(ctx context.Context, project entity.Project) ([]entity.Diagnostic, error)
	// CheckRendered is Check reduced to the rendered text of each diagnostic.
	CheckRendered(ctx context.Context, project entity.Project) ([]string, error)
	// Test runs the tests of the project, or the ones matching name, and returns the unstructured output lines.
	Test(ctx context.Context, project entity.Project, name string, backtrace bool) ([]string, error)
}

// Params are inbound parameters to initialize the runner.
type Params struct {
	fx.In

	Config   config.Provider
	Logger   *zap.SugaredLogger
	Executor executor.Executor
}

type runner struct {
	cfg      Config
	logger   *zap.SugaredLogger
	executor executor.Executor
}

// New creates a build tool runner.
func New(p Params) (Runner, error) {
	cfg := Config{}
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting build tool configuration: %w", err)
	}
	if cfg.Command == "" {
		return nil, errors.New("build tool command is not configured")
	}
	return &runner{
		cfg:      cfg,
		logger:   p.Logger.With("component", "build-tool"),
		executor: p.Executor,
	}, nil
}

// Output is the parsed standard output of one build tool run.
type Output struct {
	// Messages are the lines that decoded as structured messages.
	Messages []Message
	// Lines are the non-empty lines that did not, kept verbatim and in order.
	Lines []string
	// ExitCode of the process.
	ExitCode int
}

// Message is one structured output line.
type Message struct {
	Reason string
	// CompilerMessage is set for ReasonCompilerMessage.
	CompilerMessage *CompilerMessage
	// Success is set for ReasonBuildFinished.
	Success bool
	Raw     json.RawMessage
}

// CompilerMessage is the diagnostic payload of a compiler-message line.
type CompilerMessage struct {
	Rendered string         `json:"rendered"`
	Message  string         `json:"message"`
	Level    string         `json:"level"`
	Code     *CompilerCode  `json:"code"`
	Spans    []CompilerSpan `json:"spans"`
}

// CompilerCode identifies the diagnostic, e.g. E0308.
type CompilerCode struct {
	Code string `json:"code"`
}

// CompilerSpan is a source span of a compiler message.
type CompilerSpan struct {
	FileName    string `json:"file_name"`
	LineStart   uint32 `json:"line_start"`
	LineEnd     uint32 `json:"line_end"`
	ColumnStart uint32 `json:"column_start"`
	ColumnEnd   uint32 `json:"column_end"`
	IsPrimary   bool   `json:"is_primary"`
}

func (r *runner) Run(ctx context.Context, project entity.Project, args []string, backtrace bool) (*Output, error) {
	cmdArgs := append([]string{}, args...)
	cmdArgs = insertBeforeSeparator(cmdArgs, r.cfg.StructuredOutputFlag)

	cmd := exec.CommandContext(ctx, r.cfg.Command, cmdArgs...)
	cmd.Dir = project.Root
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), fmt.Sprintf("%s=%s", r.cfg.BacktraceEnv, backtraceValue(backtrace)))

	stdout, exitCode, err := r.executor.Run(cmd)
	if err != nil {
		// A failing check or test exits non-zero while still reporting through stdout.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || len(stdout) == 0 {
			return nil, fmt.Errorf("running %s in %s: %w", r.cfg.Command, project.Root, err)
		}
		r.logger.Debugw("build tool exited with failure", "root", project.Root, "exitCode", exitCode)
	}

	out := ParseOutput(stdout)
	out.ExitCode = exitCode
	return out, nil
}

func (r *runner) Check(ctx context.Context, project entity.Project) ([]entity.Diagnostic, error) {
	args := []string{"check"}
	if len(project.IgnoreCrates) > 0 {
		args = append(args, "--workspace")
		for _, name := range project.IgnoreCrates {
			args = append(args, "--exclude", name)
		}
	}

	out, err := r.Run(ctx, project, args, false)
	if err != nil {
		return nil, err
	}
	return out.Diagnostics(), nil
}

func (r *runner) CheckRendered(ctx context.Context, project entity.Project) ([]string, error) {
	diagnostics, err := r.Check(ctx, project)
	if err != nil {
		return nil, err
	}
	rendered := make([]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		rendered = append(rendered, d.Rendered)
	}
	return rendered, nil
}

func (r *runner) Test(ctx context.Context, project entity.Project, name string, backtrace bool) ([]string, error) {
	args := []string{"test"}
	if name != "" {
		args = append(args, "--", _noCapture, name)
	}
	out, err := r.Run(ctx, project, args, backtrace)
	if err != nil {
		return nil, err
	}
	return out.Lines, nil
}

// ParseOutput splits stdout into structured messages and unstructured lines.
// A line that fails to decode is kept as an unstructured line and never fails the parse.
func ParseOutput(stdout []byte) *Output {
	out := &Output{
		Messages: []Message{},
		Lines:    []string{},
	}
	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSuffix(scanner.Bytes(), []byte("\r"))
		if len(line) == 0 {
			continue
		}
		if msg, ok := parseMessage(line); ok {
			out.Messages = append(out.Messages, msg)
			continue
		}
		out.Lines = append(out.Lines, string(line))
	}
	return out
}

func parseMessage(line []byte) (Message, bool) {
	if !gjson.ValidBytes(line) {
		return Message{}, false
	}
	reason := gjson.GetBytes(line, "reason")
	if reason.Type != gjson.String {
		return Message{}, false
	}

	msg := Message{
		Reason: reason.String(),
		Raw:    append(json.RawMessage{}, line...),
	}
	switch msg.Reason {
	case ReasonCompilerArtifact, ReasonBuildScriptExecuted:
	case ReasonBuildFinished:
		success := gjson.GetBytes(line, "success")
		if !success.IsBool() {
			return Message{}, false
		}
		msg.Success = success.Bool()
	case ReasonCompilerMessage:
		var payload struct {
			Message *CompilerMessage `json:"message"`
		}
		if err := json.Unmarshal(line, &payload); err != nil || payload.Message == nil {
			return Message{}, false
		}
		msg.CompilerMessage = payload.Message
	default:
		return Message{}, false
	}
	return msg, true
}

// Diagnostics returns the errors and warnings that carry at least one span.
func (o *Output) Diagnostics() []entity.Diagnostic {
	diagnostics := make([]entity.Diagnostic, 0)
	for _, m := range o.Messages {
		if m.CompilerMessage == nil {
			continue
		}
		cm := m.CompilerMessage
		if cm.Level != entity.SeverityError && cm.Level != entity.SeverityWarning {
			continue
		}
		if len(cm.Spans) == 0 {
			continue
		}
		diagnostics = append(diagnostics, toDiagnostic(cm))
	}
	return diagnostics
}

func toDiagnostic(cm *CompilerMessage) entity.Diagnostic {
	d := entity.Diagnostic{
		Severity: cm.Level,
		Rendered: cm.Rendered,
		Message:  cm.Message,
		Spans:    make([]entity.Span, 0, len(cm.Spans)),
	}
	if cm.Code != nil {
		d.Code = cm.Code.Code
	}
	for _, s := range cm.Spans {
		d.Spans = append(d.Spans, entity.Span{
			File:      s.FileName,
			LineStart: s.LineStart,
			ColStart:  s.ColumnStart,
			LineEnd:   s.LineEnd,
			ColEnd:    s.ColumnEnd,
			IsPrimary: s.IsPrimary,
		})
	}
	return d
}

// insertBeforeSeparator places flag ahead of a "--" separator so that it reaches the build tool and not the test binary.
func insertBeforeSeparator(args []string, flag string) []string {
	if flag == "" {
		return args
	}
	for i, a := range args {
		if a == "--" {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, flag)
			return append(out, args[i:]...)
		}
	}
	return append(args, flag)
}

func backtraceValue(enabled bool) string {
	if enabled {
		return _backtraceOn
	}
	return _backtraceOff
}
