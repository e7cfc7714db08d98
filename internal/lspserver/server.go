// Package lspserver hosts the linter as a Language Server Protocol server.
//
// The editor drives document lifecycle through textDocument/didOpen,
// didChange, didSave and didClose; annotations come back as
// textDocument/publishDiagnostics. Settings arrive through initialization
// options, workspace/didChangeConfiguration, or are pulled with
// workspace/configuration when the client supports it.
//
// Transport: stdio only (--stdio).
// Protocol: LSP 3.16 types via go.lsp.dev/protocol, JSON-RPC via go.lsp.dev/jsonrpc2.
package lspserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/tinovyatkin/writegood/internal/config"
	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/host"
	"github.com/tinovyatkin/writegood/internal/store"
	"github.com/tinovyatkin/writegood/internal/version"
)

const (
	serverName = "write-good"
	hostName   = "lsp"

	configurationTimeout = 5 * time.Second
)

// ErrExitWithoutShutdown is returned by Serve when the client sent exit
// without a preceding shutdown request.
var ErrExitWithoutShutdown = errors.New("lsp: exit received before shutdown")

// Server is the write-good LSP server. It implements host.Host.
type Server struct {
	conn        jsonrpc2.Conn
	documents   *DocumentStore
	diagnostics *Collection
	config      *config.Source
	handlers    host.Handlers
	log         logrus.FieldLogger

	supportsConfiguration bool
	pushedSettings        bool

	shutdown atomic.Bool
	exitOnce sync.Once
	exited   chan struct{}
}

var _ host.Host = (*Server)(nil)

// New creates a new LSP server reading settings from cfg.
func New(cfg *config.Source, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithField("host", hostName)
	return &Server{
		documents:   NewDocumentStore(),
		diagnostics: NewCollection(logger),
		config:      cfg,
		log:         logger,
		exited:      make(chan struct{}),
	}
}

// Name implements host.Host.
func (s *Server) Name() string { return hostName }

// Config implements host.Host. It returns nil when the server has no
// configuration source.
func (s *Server) Config() config.Reader {
	if s.config == nil {
		return nil
	}
	return s.config
}

// Collection implements host.Host.
func (s *Server) Collection() store.Sink { return s.diagnostics }

// Run implements host.Host by serving on stdin/stdout.
func (s *Server) Run(ctx context.Context, h host.Handlers) error {
	return s.Serve(ctx, stdioReadWriteCloser{}, h)
}

// Serve runs the server over rwc until the client exits, the stream ends
// or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser, h host.Handlers) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	s.conn = conn
	s.handlers = h
	s.diagnostics.attach(conn)

	conn.Go(ctx, jsonrpc2.AsyncHandler(jsonrpc2.ReplyHandler(s.handle)))

	select {
	case <-ctx.Done():
		return conn.Close()
	case <-s.exited:
		_ = conn.Close()
		if !s.shutdown.Load() {
			return ErrExitWithoutShutdown
		}
		return nil
	case <-conn.Done():
		if err := conn.Err(); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// handle dispatches incoming JSON-RPC messages to the appropriate handler.
func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if s.shutdown.Load() && req.Method() != protocol.MethodExit {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidRequest, "server is shutting down"))
	}

	switch req.Method() {
	// Lifecycle
	case protocol.MethodInitialize:
		return s.handleInitialize(ctx, reply, req)
	case protocol.MethodInitialized:
		return s.handleInitialized(ctx, reply)
	case protocol.MethodShutdown:
		s.shutdown.Store(true)
		if err := s.diagnostics.Reset(ctx); err != nil {
			s.log.WithError(err).Warn("lsp: failed to clear diagnostics on shutdown")
		}
		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		err := reply(ctx, nil, nil)
		// A client may repeat exit before the connection is torn down.
		s.exitOnce.Do(func() { close(s.exited) })
		return err
	case protocol.MethodSetTrace:
		return reply(ctx, nil, nil)

	// Document sync
	case protocol.MethodTextDocumentDidOpen:
		return s.handleDidOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidChange:
		return s.handleDidChange(ctx, reply, req)
	case protocol.MethodTextDocumentDidSave:
		return s.handleDidSave(ctx, reply, req)
	case protocol.MethodTextDocumentDidClose:
		return s.handleDidClose(ctx, reply, req)

	// Workspace
	case protocol.MethodWorkspaceDidChangeConfiguration:
		return s.handleDidChangeConfiguration(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// handleInitialize responds to the initialize request with server capabilities.
func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	s.log.WithField("client", clientInfoString(params.ClientInfo)).Info("lsp: initialize")

	if ws := params.Capabilities.Workspace; ws != nil {
		s.supportsConfiguration = ws.Configuration
	}
	s.applySettings(params.InitializationOptions, "initializationOptions")

	result := protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save: &protocol.SaveOptions{
					IncludeText: true,
				},
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: version.RawVersion(),
		},
	}

	return reply(ctx, result, nil)
}

// handleInitialized pulls settings when the client did not push any.
func (s *Server) handleInitialized(ctx context.Context, reply jsonrpc2.Replier) error {
	if s.supportsConfiguration && !s.pushedSettings {
		s.pullConfiguration(ctx)
	}
	return reply(ctx, nil, nil)
}

// handleDidOpen handles textDocument/didOpen by linting the opened document.
func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	item := params.TextDocument
	doc := s.documents.Open(document.FromURI(string(item.URI)), string(item.LanguageID), item.Version, item.Text)
	s.dispatch(ctx, "open", doc.ID, func() error { return s.handlers.Open(ctx, doc.Snapshot()) })
	return reply(ctx, nil, nil)
}

// handleDidChange handles textDocument/didChange by updating the document and re-linting.
func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	id := document.FromURI(string(params.TextDocument.URI))
	// With full sync, the last content change holds the full text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc, ok := s.documents.Update(id, params.TextDocument.Version, text)
	if !ok {
		s.log.WithField("document", id).Warn("lsp: change for a document that is not open")
		return reply(ctx, nil, nil)
	}
	s.dispatch(ctx, "change", id, func() error { return s.handlers.Change(ctx, doc.Snapshot()) })
	return reply(ctx, nil, nil)
}

// handleDidSave handles textDocument/didSave by re-linting.
func (s *Server) handleDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	id := document.FromURI(string(params.TextDocument.URI))
	doc, ok := s.documents.Get(id)
	if ok && params.Text != "" {
		doc, ok = s.documents.Update(id, doc.Version, params.Text)
	}
	if !ok {
		s.log.WithField("document", id).Warn("lsp: save for a document that is not open")
		return reply(ctx, nil, nil)
	}
	s.dispatch(ctx, "save", id, func() error { return s.handlers.Save(ctx, doc.Snapshot()) })
	return reply(ctx, nil, nil)
}

// handleDidClose handles textDocument/didClose by clearing diagnostics and removing the document.
func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	id := document.FromURI(string(params.TextDocument.URI))
	s.documents.Close(id)
	s.dispatch(ctx, "close", id, func() error { return s.handlers.Close(ctx, id) })
	return reply(ctx, nil, nil)
}

// handleDidChangeConfiguration applies pushed settings, or pulls them when
// the notification carries none.
func (s *Server) handleDidChangeConfiguration(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeConfigurationParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	if !s.applySettings(params.Settings, "didChangeConfiguration") && s.supportsConfiguration {
		s.pullConfiguration(ctx)
	}
	return reply(ctx, nil, nil)
}

// applySettings hands client settings to the configuration. It reports
// whether v carried write-good settings.
func (s *Server) applySettings(v any, origin string) bool {
	if s.config == nil {
		return false
	}
	ok, err := s.config.SetClientSettings(v)
	if err != nil {
		s.log.WithError(err).WithField("origin", origin).Warn("lsp: failed to apply settings")
		return false
	}
	if ok {
		s.pushedSettings = true
		s.log.WithField("origin", origin).Debug("lsp: applied client settings")
	}
	return ok
}

// pullConfiguration requests the write-good section with workspace/configuration.
func (s *Server) pullConfiguration(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, configurationTimeout)
	defer cancel()

	var result []any
	_, err := s.conn.Call(ctx, protocol.MethodWorkspaceConfiguration, &protocol.ConfigurationParams{
		Items: []protocol.ConfigurationItem{{Section: config.Section}},
	}, &result)
	if err != nil {
		s.log.WithError(err).Warn("lsp: workspace/configuration failed")
		return
	}
	if len(result) == 0 {
		return
	}
	if section, ok := result[0].(map[string]any); ok {
		s.applySettings(map[string]any{config.Section: section}, "workspace/configuration")
	}
}

// dispatch runs a lifecycle handler. Failures are reported to the client
// log and never fail the notification.
func (s *Server) dispatch(ctx context.Context, event string, id document.ID, fn func() error) {
	if err := fn(); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"event": event, "document": id}).Error("lsp: handler failed")
		if nerr := s.conn.Notify(ctx, protocol.MethodWindowLogMessage, &protocol.LogMessageParams{
			Type:    protocol.MessageTypeError,
			Message: fmt.Sprintf("write-good: %s %s: %v", event, id.Display(), err),
		}); nerr != nil {
			s.log.WithError(nerr).Warn("lsp: failed to send log message")
		}
	}
}

// replyParseError sends a JSON-RPC parse error.
func replyParseError(ctx context.Context, reply jsonrpc2.Replier, err error) error {
	return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.ParseError, "invalid params: %v", err))
}

// clientInfoString formats client info for logging.
func clientInfoString(info *protocol.ClientInfo) string {
	if info == nil {
		return "unknown"
	}
	if info.Version != "" {
		return info.Name + " " + info.Version
	}
	return info.Name
}

// stdioReadWriteCloser wraps stdin/stdout as an io.ReadWriteCloser for JSON-RPC.
type stdioReadWriteCloser struct{}

func (stdioReadWriteCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioReadWriteCloser) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioReadWriteCloser) Close() error                { return nil }
