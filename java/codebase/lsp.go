package codebase

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/scribe/classpath"
	"github.com/dhamidi/scribe/project"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "scribe"

const (
	CommandMapJavadoc   = "scribe.mapJavadoc"
	CommandMapParameter = "scribe.mapParameter"
	CommandDescribe     = "scribe.describe"
)

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:              ls.initialize,
		Initialized:             ls.initialized,
		Shutdown:                ls.shutdown,
		SetTrace:                ls.setTrace,
		TextDocumentDidOpen:     ls.textDocumentDidOpen,
		TextDocumentDidChange:   ls.textDocumentDidChange,
		TextDocumentDidClose:    ls.textDocumentDidClose,
		TextDocumentDidSave:     ls.textDocumentDidSave,
		TextDocumentHover:       ls.textDocumentHover,
		WorkspaceExecuteCommand: ls.workspaceExecuteCommand,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	p, err := project.FindAndLoad(rootDir)
	if err != nil {
		return nil, err
	}
	ls.codebase = New(p, nil)
	log.Infof("initializing for %s", p.RootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandMapJavadoc, CommandMapParameter, CommandDescribe},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(); err != nil {
		log.Errorf("scan failed: %s", err)
	}
	ls.loadClasspath()
	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.Start()
	return nil
}

// loadClasspath registers the classes on the configured classpath so that
// on-demand imports of library packages resolve.
func (ls *LSPServer) loadClasspath() {
	paths, err := ls.codebase.Project().ClasspathPaths()
	if err != nil {
		log.Warningf("%s", err)
		return
	}
	if len(paths) == 0 {
		return
	}
	cp, err := classpath.Open(paths)
	if err != nil {
		log.Warningf("%s", err)
		return
	}
	defer cp.Close()

	names, err := cp.ClassNames()
	if err != nil {
		log.Warningf("%s", err)
		return
	}
	ls.codebase.SetExternals(names)
	log.Infof("loaded %d classes from the classpath", len(names))
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.OpenFile(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.CloseFile(path)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.codebase.ScanFile(path)
	}
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	col := int(params.Position.Character) + 1

	desc, ok := ls.codebase.Snapshot().DescribeAt(path, line, col)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: desc.Markdown(),
		},
	}, nil
}

// workspaceExecuteCommand runs the mapping commands. All of them take a
// document URI and a zero-based line and character as their first
// arguments.
func (ls *LSPServer) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	args := params.Arguments
	if len(args) < 3 {
		return nil, fmt.Errorf("%s: expected uri, line and character", params.Command)
	}
	uri, err := argString(args, 0)
	if err != nil {
		return nil, err
	}
	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	line, err := argInt(args, 1)
	if err != nil {
		return nil, err
	}
	col, err := argInt(args, 2)
	if err != nil {
		return nil, err
	}
	line, col = line+1, col+1

	snapshot := ls.codebase.Snapshot()
	switch params.Command {
	case CommandDescribe:
		desc, ok := snapshot.DescribeAt(path, line, col)
		if !ok {
			return nil, nil
		}
		return desc.Key(), desc.Err
	case CommandMapJavadoc:
		text, err := argString(args, 3)
		if err != nil {
			return nil, err
		}
		return nil, snapshot.MapJavadoc(path, line, col, text)
	case CommandMapParameter:
		index, err := argInt(args, 3)
		if err != nil {
			return nil, err
		}
		name, err := argString(args, 4)
		if err != nil {
			return nil, err
		}
		return nil, snapshot.MapParameter(path, line, col, index, name)
	}
	return nil, fmt.Errorf("unknown command %s", params.Command)
}

func argString(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing argument %d", i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("argument %d: expected a string, got %T", i, args[i])
	}
	return s, nil
}

// argInt accepts the float64 that JSON numbers decode to.
func argInt(args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i)
	}
	switch v := args[i].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	}
	return 0, fmt.Errorf("argument %d: expected a number, got %T", i, args[i])
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
