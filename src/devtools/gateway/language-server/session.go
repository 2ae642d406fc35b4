// Package languageserver manages language server subprocesses, one session per project.
package languageserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/internal/clock"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"github.com/uber/devtools-mcp/src/devtools/internal/executor"
	"github.com/uber/devtools-mcp/src/devtools/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	_configKey     = "languageServer"
	_clientVersion = "0.1.0"
	_eventBuffer   = 64
)

// Module provides the session factory.
var Module = fx.Provide(NewFactory)

// Config of the language server subprocess.
type Config struct {
	Command         string        `yaml:"command"`
	Args            []string      `yaml:"args"`
	LanguageID      string        `yaml:"languageId"`
	StageTokens     []string      `yaml:"stageTokens"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	WatchExtensions []string      `yaml:"watchExtensions"`
	WatchFiles      []string      `yaml:"watchFiles"`
	WatchSkipDirs   []string      `yaml:"watchSkipDirs"`
	WatchDebounce   time.Duration `yaml:"watchDebounce"`
}

// Session is a handshaken connection to the language server of one project.
// Requests are serialized: concurrent callers queue until the previous request completes.
type Session interface {
	// Root is the project root the server was started in.
	Root() string
	// Events carries the indexing updates of the session. It is closed once the connection terminates.
	Events() <-chan entity.Notification
	// OpenFile notifies the server of a file opened with text, then waits for indexing to complete once.
	OpenFile(ctx context.Context, relativePath string, text string) error
	// WaitIndexed blocks until the first indexing stage completes. Only one waiter is ever released.
	WaitIndexed(ctx context.Context) error
	// Hover returns the documentation at a position as markdown.
	Hover(ctx context.Context, file string, position protocol.Position) (string, error)
	// References returns the locations referencing the symbol at a position, including its declaration.
	References(ctx context.Context, file string, position protocol.Position) ([]protocol.Location, error)
	// WorkspaceSymbols searches the workspace for symbols matching query.
	WorkspaceSymbols(ctx context.Context, query string) ([]entity.SymbolCandidate, error)
	// CodeActions returns the fixes available in a range.
	CodeActions(ctx context.Context, file string, rng protocol.Range) ([]entity.CodeFix, error)
	// Rename returns the edit renaming the symbol at a position. A nil edit means nothing to rename.
	Rename(ctx context.Context, file string, position protocol.Position, newName string) (*protocol.WorkspaceEdit, error)
	// Shutdown stops the server and waits for its process to exit. A second call returns AlreadyShutDownError.
	Shutdown(ctx context.Context) error
}

// Factory starts sessions.
type Factory interface {
	// New spawns a language server in the project root and completes the handshake before returning.
	New(ctx context.Context, project entity.Project) (Session, error)
}

// Params are inbound parameters to initialize the factory.
type Params struct {
	fx.In

	Config   config.Provider
	Logger   *zap.SugaredLogger
	Executor executor.Executor
	Clock    clock.Clock
}

// process is a running language server reachable over its standard streams.
type process struct {
	stream io.ReadWriteCloser
	wait   func() error
	kill   func() error
}

type spawnFunc func(ctx context.Context, root string) (*process, error)

type factory struct {
	cfg      Config
	logger   *zap.SugaredLogger
	executor executor.Executor
	clock    clock.Clock
	spawn    spawnFunc
}

// NewFactory creates a session factory.
func NewFactory(p Params) (Factory, error) {
	cfg := Config{}
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting language server configuration: %w", err)
	}
	if cfg.Command == "" {
		return nil, errors.New("language server command is not configured")
	}
	f := &factory{
		cfg:      cfg,
		logger:   p.Logger.With("component", "language-server"),
		executor: p.Executor,
		clock:    p.Clock,
	}
	f.spawn = f.spawnProcess
	return f, nil
}

func (f *factory) New(ctx context.Context, project entity.Project) (Session, error) {
	proc, err := f.spawn(ctx, project.Root)
	if err != nil {
		return nil, &errors.ProtocolError{Method: "spawn", Err: err}
	}
	return start(ctx, project.Root, proc, f.cfg, f.logger.With("root", project.Root), f.clock)
}

func (f *factory) spawnProcess(ctx context.Context, root string) (*process, error) {
	// The process outlives ctx, so it is not bound to it.
	cmd := exec.Command(f.cfg.Command, f.cfg.Args...)
	cmd.Dir = root
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := f.executor.Start(cmd); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, fmt.Errorf("starting %s: %w", f.cfg.Command, err)
	}
	return &process{
		stream: &pipeStream{Reader: stdout, stdin: stdin, stdout: stdout},
		wait:   cmd.Wait,
		kill: func() error {
			if cmd.Process == nil {
				return nil
			}
			return cmd.Process.Kill()
		},
	}, nil
}

// pipeStream joins the standard streams of a subprocess into one connection.
type pipeStream struct {
	io.Reader
	stdin  io.WriteCloser
	stdout io.Closer
}

func (p *pipeStream) Write(b []byte) (int, error) {
	return p.stdin.Write(b)
}

func (p *pipeStream) Close() error {
	return multierr.Append(p.stdin.Close(), p.stdout.Close())
}

type session struct {
	root    string
	cfg     Config
	logger  *zap.SugaredLogger
	proc    *process
	tracker *progressTracker
	events  chan entity.Notification

	// handle admits one request at a time.
	handle *semaphore.Weighted

	mu       sync.Mutex
	conn     jsonrpc2.Conn
	notifier *changeNotifier

	stopping chan struct{}
	exited   chan struct{}
	waitErr  error
}

// start runs the connection on proc and performs the handshake. The session is only returned once it is usable.
func start(ctx context.Context, root string, proc *process, cfg Config, logger *zap.SugaredLogger, clk clock.Clock) (*session, error) {
	s := &session{
		root:     root,
		cfg:      cfg,
		logger:   logger,
		proc:     proc,
		tracker:  newProgressTracker(root, cfg.StageTokens, logger),
		events:   make(chan entity.Notification, _eventBuffer),
		handle:   semaphore.NewWeighted(1),
		stopping: make(chan struct{}),
		exited:   make(chan struct{}),
	}

	handler := &clientHandler{
		root:     root,
		tracker:  s.tracker,
		logger:   logger,
		events:   s.events,
		shutdown: s.stopping,
	}
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(proc.stream))
	conn.Go(context.Background(), handler.Handle)
	s.conn = conn

	go func() {
		<-conn.Done()
		close(s.events)
	}()
	go func() {
		s.waitErr = proc.wait()
		close(s.exited)
	}()

	if err := s.handshake(ctx, conn); err != nil {
		s.abort()
		return nil, err
	}

	notifier, err := newChangeNotifier(root, cfg, clk, logger, s.notifyChanges)
	if err != nil {
		// Without file watching the server still answers from its initial index.
		logger.Warnw("watching project files", "error", err)
	} else {
		s.notifier = notifier
	}
	return s, nil
}

func (s *session) handshake(ctx context.Context, conn jsonrpc2.Conn) error {
	var result json.RawMessage
	if _, err := conn.Call(ctx, protocol.MethodInitialize, initializeParams(s.root, _clientVersion), &result); err != nil {
		return &errors.ProtocolError{Method: protocol.MethodInitialize, Err: err}
	}
	s.logger.Infow("language server initialized",
		"server", gjson.GetBytes(result, "serverInfo.name").String(),
		"version", gjson.GetBytes(result, "serverInfo.version").String())

	if err := conn.Notify(ctx, protocol.MethodInitialized, struct{}{}); err != nil {
		return &errors.ProtocolError{Method: protocol.MethodInitialized, Err: err}
	}
	return nil
}

// abort tears down a session whose handshake failed.
func (s *session) abort() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	close(s.stopping)
	if err := s.proc.kill(); err != nil {
		s.logger.Warnw("killing language server", "error", err)
	}
	if conn != nil {
		conn.Close()
		<-conn.Done()
	}
	<-s.exited
}

func (s *session) Root() string {
	return s.root
}

func (s *session) Events() <-chan entity.Notification {
	return s.events
}

func (s *session) OpenFile(ctx context.Context, relativePath string, text string) error {
	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri.File(filepath.Join(s.root, relativePath)),
			LanguageID: protocol.LanguageIdentifier(s.cfg.LanguageID),
			Version:    0,
			Text:       text,
		},
	}
	if err := s.notify(ctx, protocol.MethodTextDocumentDidOpen, params); err != nil {
		return err
	}
	return s.WaitIndexed(ctx)
}

func (s *session) WaitIndexed(ctx context.Context) error {
	select {
	case <-s.tracker.Indexed():
		return nil
	case <-s.stopping:
		return &errors.AlreadyShutDownError{Root: s.root}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *session) Hover(ctx context.Context, file string, position protocol.Position) (string, error) {
	params := &protocol.HoverParams{
		TextDocumentPositionParams: positionParams(file, position),
	}
	var result json.RawMessage
	if err := s.call(ctx, protocol.MethodTextDocumentHover, params, &result); err != nil {
		return "", err
	}
	return mapper.HoverToMarkdown(result), nil
}

func (s *session) References(ctx context.Context, file string, position protocol.Position) ([]protocol.Location, error) {
	params := &protocol.ReferenceParams{
		TextDocumentPositionParams: positionParams(file, position),
		Context:                    protocol.ReferenceContext{IncludeDeclaration: true},
	}
	var result []protocol.Location
	if err := s.call(ctx, protocol.MethodTextDocumentReferences, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *session) WorkspaceSymbols(ctx context.Context, query string) ([]entity.SymbolCandidate, error) {
	params := &protocol.WorkspaceSymbolParams{Query: query}
	var result json.RawMessage
	if err := s.call(ctx, protocol.MethodWorkspaceSymbol, params, &result); err != nil {
		return nil, err
	}
	candidates, err := mapper.WorkspaceSymbolsToCandidates(result)
	if err != nil {
		return nil, &errors.ProtocolError{Method: protocol.MethodWorkspaceSymbol, Err: err}
	}
	return candidates, nil
}

func (s *session) CodeActions(ctx context.Context, file string, rng protocol.Range) ([]entity.CodeFix, error) {
	params := &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri.File(file)},
		Range:        rng,
		Context:      protocol.CodeActionContext{Diagnostics: []protocol.Diagnostic{}},
	}
	var result json.RawMessage
	if err := s.call(ctx, protocol.MethodTextDocumentCodeAction, params, &result); err != nil {
		return nil, err
	}
	fixes, err := mapper.CodeActionsToFixes(result)
	if err != nil {
		return nil, &errors.ProtocolError{Method: protocol.MethodTextDocumentCodeAction, Err: err}
	}
	return fixes, nil
}

func (s *session) Rename(ctx context.Context, file string, position protocol.Position, newName string) (*protocol.WorkspaceEdit, error) {
	params := &protocol.RenameParams{
		TextDocumentPositionParams: positionParams(file, position),
		NewName:                    newName,
	}
	var result *protocol.WorkspaceEdit
	if err := s.call(ctx, protocol.MethodTextDocumentRename, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *session) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	notifier := s.notifier
	s.mu.Unlock()

	if conn == nil {
		return &errors.AlreadyShutDownError{Root: s.root}
	}
	// Updates emitted from here on are dropped so that the read loop never blocks on a departed consumer.
	close(s.stopping)

	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	if notifier != nil {
		if err := notifier.Close(); err != nil {
			s.logger.Warnw("closing file watcher", "error", err)
		}
	}

	// Let the request in flight complete.
	if err := s.handle.Acquire(ctx, 1); err != nil {
		return s.forceStop(conn, err)
	}
	defer s.handle.Release(1)

	var errs error
	if _, err := conn.Call(ctx, protocol.MethodShutdown, nil, nil); err != nil {
		errs = multierr.Append(errs, &errors.ProtocolError{Method: protocol.MethodShutdown, Err: err})
	}
	if err := conn.Notify(ctx, protocol.MethodExit, nil); err != nil {
		errs = multierr.Append(errs, &errors.ProtocolError{Method: protocol.MethodExit, Err: err})
	}

	select {
	case <-s.exited:
	case <-ctx.Done():
		return s.forceStop(conn, multierr.Append(errs, ctx.Err()))
	}
	conn.Close()
	<-conn.Done()

	s.logger.Infow("language server stopped", "error", s.waitErr)
	return errs
}

// forceStop kills a server that did not exit within the shutdown deadline.
func (s *session) forceStop(conn jsonrpc2.Conn, cause error) error {
	s.logger.Warnw("killing language server", "error", cause)
	err := multierr.Append(cause, s.proc.kill())
	conn.Close()
	<-conn.Done()
	<-s.exited
	return err
}

func (s *session) call(ctx context.Context, method string, params, result interface{}) error {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if _, err := conn.Call(ctx, method, params, result); err != nil {
		return &errors.ProtocolError{Method: method, Err: err}
	}
	return nil
}

func (s *session) notify(ctx context.Context, method string, params interface{}) error {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := conn.Notify(ctx, method, params); err != nil {
		return &errors.ProtocolError{Method: method, Err: err}
	}
	return nil
}

// acquire takes the exclusive request handle.
func (s *session) acquire(ctx context.Context) (jsonrpc2.Conn, func(), error) {
	if err := s.handle.Acquire(ctx, 1); err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		s.handle.Release(1)
		return nil, nil, &errors.AlreadyShutDownError{Root: s.root}
	}
	return conn, func() { s.handle.Release(1) }, nil
}

func (s *session) notifyChanges(changes []*protocol.FileEvent) {
	params := &protocol.DidChangeWatchedFilesParams{Changes: changes}
	if err := s.notify(context.Background(), protocol.MethodWorkspaceDidChangeWatchedFiles, params); err != nil {
		s.logger.Warnw("notifying file changes", "count", len(changes), "error", err)
	}
}

func positionParams(file string, position protocol.Position) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri.File(file)},
		Position:     position,
	}
}
