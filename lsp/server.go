// Package lsp implements a language server for writedown documents.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/writedown/parser"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "writedown"

var log = commonlog.GetLogger("writedown.lsp")

type Server struct {
	docs    *Store
	opts    []parser.Option
	handler protocol.Handler
	server  *server.Server
	version string
}

// NewServer returns a server that parses documents with opts.
func NewServer(version string, opts ...parser.Option) *Server {
	ls := &Server{
		docs:    NewStore(),
		opts:    opts,
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	log.Infof("shutting down with %d open documents", ls.docs.Len())
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := ls.docs.Put(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		log.Warningf("ignoring incremental change to %s", params.TextDocument.URI)
		return nil
	}
	doc := ls.docs.Put(params.TextDocument.URI, textChange.Text, params.TextDocument.Version)
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.docs.Delete(params.TextDocument.URI)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	doc, ok := ls.docs.Get(params.TextDocument.URI)
	if params.Text != nil {
		version := protocol.Integer(0)
		if ok {
			version = doc.Version
		}
		doc = ls.docs.Put(params.TextDocument.URI, *params.Text, version)
	} else if !ok {
		return nil
	}
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := ls.docs.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return Outline(doc.Text), nil
}

func (ls *Server) publish(ctx *glsp.Context, doc Document) {
	opts := append([]parser.Option{parser.WithFile(uriToPath(doc.URI))}, ls.opts...)
	diagnostics := Diagnose(doc.Text, opts...)
	log.Debugf("%s: %d diagnostics", doc.URI, len(diagnostics))

	version := protocol.UInteger(doc.Version)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return uri
		}
		return filepath.Clean(parsed.Path)
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
