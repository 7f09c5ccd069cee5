// Package datapack implements the lexer's output sink: the maps and
// lists that accumulate function bodies, JSON resources, and load/tick
// sequences as the Lexer Driver works through a project's source files.
//
// Per the revised component ownership (generalizing the original's
// cyclic Lexer<->Datapack borrowing, where Datapack held a back-reference
// into the very Lexer that owned it), Datapack holds no reference to the
// Lexer at all. Where the original lazily re-enters the lexer to parse a
// function body, PreMcFunction instead carries a ParseFuncBody closure
// supplied by whoever constructs it.
package datapack

import (
	"go.uber.org/zap"

	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/header"
	"github.com/jmc-lang/jmc/internal/compile/packversion"
	"github.com/jmc-lang/jmc/internal/compile/sourcefragment"
	"github.com/jmc-lang/jmc/internal/compile/token"
	"github.com/jmc-lang/jmc/internal/compile/tokenizer"
)

// CallSite anchors a diagnostic back to the token and file that first
// produced a definition, for duplicate-definition errors.
type CallSite struct {
	Token token.Token
	Path  string
}

// McFunction is a fully lowered function body: the flat Minecraft
// commands that make up a .mcfunction file.
type McFunction struct {
	Commands []string
}

// Extend appends additional commands, used when decorators or later
// passes add commands after the function's own body (e.g. an
// after_func entry).
func (f *McFunction) Extend(commands []string) {
	f.Commands = append(f.Commands, commands...)
}

// ParseFuncBody lowers a function body's tokenized statements into
// Minecraft commands. It replaces the original's lazy callback into the
// owning Lexer: the Lexer Driver supplies this closure when constructing
// a PreMcFunction so Datapack never needs to reach back into it.
type ParseFuncBody func(statements []token.Statement, prefix string, isLoad bool) ([]string, *diag.Error)

// PreMcFunction is a function definition whose body text has been
// recognized but not yet tokenized/lowered; Parse does both. The Lexer
// Driver calls Parse as soon as it has built the PreMcFunction, before
// moving on to the next statement.
type PreMcFunction struct {
	FuncContent string
	FilePath    string
	FullText    string
	Line, Col   int
	FuncPath    string
	Prefix      string
	IsLoad      bool
	ParseBody   ParseFuncBody
	// Logger receives Debug-level macro-expansion tracing while
	// tokenizing this function's body; a nil Logger falls back to a
	// no-op one.
	Logger *zap.Logger
}

// Parse tokenizes FuncContent and lowers it via ParseBody, returning the
// resulting McFunction and its function path.
func (p *PreMcFunction) Parse(hdr *header.Header) (*McFunction, string, *diag.Error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	frag := sourcefragment.NewNested(p.FilePath, p.FuncContent, p.FullText, p.Line, p.Col)
	tz := tokenizer.New(frag, hdr, true, false).WithLogger(logger)
	statements, err := tz.Run()
	if err != nil {
		return nil, "", err
	}
	commands, err := p.ParseBody(statements, p.Prefix, p.IsLoad)
	if err != nil {
		return nil, "", err
	}
	return &McFunction{Commands: commands}, p.FuncPath, nil
}

// Datapack accumulates everything the Lexer Driver produces while
// walking a project's source files.
type Datapack struct {
	Version   packversion.PackVersion
	Namespace string

	Functions        map[string]*McFunction
	FunctionsCalled  map[string]CallSite
	JSONs            map[string]interface{}
	PrivateFunctions map[string]map[string]*McFunction
	Scoreboards      map[string]string

	Loads      []string
	Ticks      []string
	AfterLoads []string
	AfterTicks []string

	AfterFunc      map[string][]string
	AfterFuncToken map[string]CallSite

	UsedCommand    map[string]string
	DefinedFilePos map[string]CallSite
	LazyFunc       map[string]*PreMcFunction
}

// New builds an empty Datapack for namespace under the given pack
// version.
func New(namespace string, version packversion.PackVersion) *Datapack {
	return &Datapack{
		Version:          version,
		Namespace:        namespace,
		Functions:        make(map[string]*McFunction),
		FunctionsCalled:  make(map[string]CallSite),
		JSONs:            make(map[string]interface{}),
		PrivateFunctions: make(map[string]map[string]*McFunction),
		Scoreboards:      make(map[string]string),
		AfterFunc:        make(map[string][]string),
		AfterFuncToken:   make(map[string]CallSite),
		UsedCommand:      make(map[string]string),
		DefinedFilePos:   make(map[string]CallSite),
		LazyFunc:         make(map[string]*PreMcFunction),
	}
}

// DefineFunction registers a fully lowered function at path, recording
// its CallSite for future duplicate-definition diagnostics. ok is false
// (and the datapack is left unmodified) if path already has a recorded
// CallSite — the caller is expected to turn that into a
// JMCSyntaxException referencing the prior definition.
func (d *Datapack) DefineFunction(path string, fn *McFunction, site CallSite) (ok bool) {
	if _, exists := d.DefinedFilePos[path]; exists {
		return false
	}
	d.Functions[path] = fn
	d.DefinedFilePos[path] = site
	return true
}

// DefineJSON registers a resource's parsed JSON body at path, with the
// same duplicate-definition protection as DefineFunction.
func (d *Datapack) DefineJSON(path string, body interface{}, site CallSite) (ok bool) {
	if _, exists := d.DefinedFilePos[path]; exists {
		return false
	}
	d.JSONs[path] = body
	d.DefinedFilePos[path] = site
	return true
}
