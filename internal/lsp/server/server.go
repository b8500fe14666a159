package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	iLsp "github.com/jwtly10/litweave/internal/lsp"
)

// Server is a language server for spin-style scripts. On every open,
// change and save it converts the buffer, publishes diagnostics for
// malformed comment spans, and maintains a shadow preview of the
// literate output for the editor to display.
type Server struct {
	conn *jsonrpc2.Conn

	// tracks canceled request IDs
	cancelMap sync.Map

	// tracking for method request counts
	trackRequestCount sync.Map

	// abstraction for conversion and shadow preview operations
	docService *iLsp.DocumentService
}

type Options struct {
	DocService iLsp.DocumentServiceOptions
}

var DefaultServerOptions = Options{
	DocService: iLsp.DefaultDocumentServiceOptions,
}

func (o Options) Validate() error {
	if o.DocService.ShadowRoot == "" {
		// zero options fall back to defaults in NewServer
		return nil
	}
	return o.DocService.Validate()
}

func NewServer(options Options) (*Server, error) {
	if options.DocService.ShadowRoot == "" {
		options.DocService = DefaultServerOptions.DocService
	}

	dService, err := iLsp.NewDocumentService(options.DocService)
	if err != nil {
		return nil, err
	}

	return &Server{
		docService: dService,
	}, nil
}

func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (result interface{}, err error) {
	if s.conn == nil {
		s.conn = conn
	}
	slog.Info("received request", "method", req.Method, "id", req.ID)
	reqCount, _ := s.trackRequestCount.LoadOrStore(req.Method, 1)
	if count, ok := reqCount.(int); ok {
		s.trackRequestCount.Store(req.Method, count+1)
	}

	if _, ok := s.cancelMap.Load(req.ID.String()); ok {
		slog.Debug("request was canceled", "id", req.ID)
		s.cancelMap.Delete(req.ID.String())
		return nil, nil
	}

	switch req.Method {
	case "initialize":
		slog.Info("initializing lsp server")

		var initParams lsp.InitializeParams
		if err := json.Unmarshal(*req.Params, &initParams); err != nil {
			return nil, err
		}

		kind := lsp.TDSKFull
		return lsp.InitializeResult{
			Capabilities: lsp.ServerCapabilities{
				TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
					Kind: &kind,
				},
			},
		}, nil

	case "initialized":
		slog.Info("server initialized")
		return nil, nil

	case "shutdown":
		slog.Info("shutting down")

		if err := s.docService.CleanupShadowFiles(); err != nil {
			slog.Error("failed to remove shadow workspace", "error", err)
		}

		s.printDebugStats()

		return nil, nil

	case "exit":
		slog.Info("exiting")

		os.Exit(0)
		return nil, nil

	// Biz logic
	case "textDocument/didOpen":
		// The file is converted on open, so diagnostics and the shadow
		// preview are available immediately
		var params lsp.DidOpenTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		return nil, s.preview(ctx, params.TextDocument.URI, params.TextDocument.Text)

	case "textDocument/didChange":
		var params lsp.DidChangeTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		if len(params.ContentChanges) == 0 {
			return nil, nil
		}

		// full sync: the last change carries the whole buffer
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		return nil, s.preview(ctx, params.TextDocument.URI, text)

	case "textDocument/didSave":
		var params lsp.DidSaveTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		fsPath, err := s.docService.URIToPath(params.TextDocument.URI)
		if err != nil {
			return nil, err
		}

		content, err := os.ReadFile(fsPath)
		if err != nil {
			return nil, err
		}

		return nil, s.preview(ctx, params.TextDocument.URI, string(content))

	case "$/cancelRequest":
		var params lsp.CancelParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		slog.Debug("canceling request", "id", params.ID)
		s.cancelMap.Store(params.ID.String(), struct{}{})
		return nil, nil

	default:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", req.Method),
		}
	}
}

// preview converts the buffer and publishes the outcome: an empty
// diagnostics list on success, an error diagnostic when the script has
// unbalanced comment delimiters.
func (s *Server) preview(ctx context.Context, uri lsp.DocumentURI, text string) error {
	_, convErr := s.docService.PreviewDocument(text, uri)

	diags, handled := iLsp.DiagnosticsForError(convErr)
	if !handled {
		return convErr
	}

	if err := s.SendDiagnostics(ctx, lsp.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	}); err != nil {
		return fmt.Errorf("publishing diagnostics: %w", err)
	}

	return nil
}

func (s *Server) SendDiagnostics(ctx context.Context, params lsp.PublishDiagnosticsParams) error {
	if s.conn == nil {
		return fmt.Errorf("no active connection")
	}
	return s.conn.Notify(ctx, "textDocument/publishDiagnostics", params)
}

func (s *Server) printDebugStats() {
	s.trackRequestCount.Range(func(key, value interface{}) bool {
		msg := fmt.Sprintf("Method: %-30s Count: %d", key.(string), value.(int))
		slog.Debug(msg)
		return true
	})
}
