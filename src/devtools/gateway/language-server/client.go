package languageserver

import (
	"context"
	"encoding/json"

	"github.com/uber/devtools-mcp/src/devtools/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// clientHandler answers the traffic a language server initiates towards its client.
type clientHandler struct {
	root     string
	tracker  *progressTracker
	logger   *zap.SugaredLogger
	events   chan<- entity.Notification
	shutdown <-chan struct{}
}

type progressParams struct {
	Token json.RawMessage `json:"token"`
	Value json.RawMessage `json:"value"`
}

type configurationParams struct {
	Items []json.RawMessage `json:"items"`
}

// Handle implements jsonrpc2.Handler. It runs on the connection's read loop.
func (h *clientHandler) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case protocol.MethodProgress:
		var params progressParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			h.logger.Warnw("decoding progress", "error", err)
			return reply(ctx, nil, nil)
		}
		if update, ok := h.tracker.Handle(params.Token, params.Value); ok {
			h.emit(update)
		}
		return reply(ctx, nil, nil)

	case protocol.MethodWorkDoneProgressCreate,
		protocol.MethodClientRegisterCapability,
		protocol.MethodClientUnregisterCapability:
		return reply(ctx, nil, nil)

	case protocol.MethodWorkspaceConfiguration:
		// One null per requested item lets the server fall back to its defaults.
		var params configurationParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, err)
		}
		return reply(ctx, make([]interface{}, len(params.Items)), nil)

	case protocol.MethodWindowShowMessage, protocol.MethodWindowLogMessage:
		var params protocol.ShowMessageParams
		if err := json.Unmarshal(req.Params(), &params); err == nil {
			h.logger.Debugw("language server message", "type", params.Type.String(), "message", params.Message)
		}
		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentPublishDiagnostics:
		return reply(ctx, nil, nil)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// emit forwards an update unless the session is shutting down.
func (h *clientHandler) emit(update entity.IndexingUpdate) {
	select {
	case h.events <- update:
	case <-h.shutdown:
		h.logger.Debugw("dropping indexing update after shutdown", "root", h.root)
	}
}
