package lexer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jmc-lang/jmc/internal/compile/datapack"
	"github.com/jmc-lang/jmc/internal/compile/decorator"
	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/sourcefragment"
	"github.com/jmc-lang/jmc/internal/compile/token"
	"github.com/jmc-lang/jmc/internal/compile/tokenizer"
	"github.com/jmc-lang/jmc/internal/compile/vanilla"
)

// parseFunctionDefinition handles the `function NAME() { BODY }` shape.
// save controls whether the lowered function is actually registered in
// the datapack's function map (false for a NoSave decorator, which still
// wants the body parsed and validated, just withheld from the output).
func (p *parseState) parseFunctionDefinition(stmt token.Statement, save bool) *diag.Error {
	if len(stmt) != 4 || stmt[1].Kind != token.Keyword || stmt[2].Kind != token.RoundParen || stmt[2].String != "()" || stmt[3].Kind != token.CurlyParen {
		return diag.NewJMCSyntaxException("Expected a function definition: function NAME() { BODY }", &stmt[0], p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	nameTok := stmt[1]
	// The function's own name is being declared, not referenced, so
	// "this." substitution does not apply here (prefix=""); the
	// enclosing class scope's prefix is instead prepended below, to
	// every nested function path uniformly.
	name, err := conventionJMCToMC(nameTok.String, &nameTok, p.frag, p.lex.sess.Logger, "", true)
	if err != nil {
		return err
	}
	name = p.prefix + name

	cfg := p.lex.sess.Config
	switch {
	case name == cfg.LoadName:
		return diag.NewJMCSyntaxException(fmt.Sprintf("Function name %q is reserved for the load function", name), &nameTok, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	case name == cfg.PrivateName:
		return diag.NewJMCSyntaxException(fmt.Sprintf("Function name %q is reserved for private functions", name), &nameTok, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	case strings.HasPrefix(name, cfg.PrivateName+"/"):
		p.lex.sess.Logger.Warn("function lies under private namespace prefix", zap.String("name", name), zap.String("private_name", cfg.PrivateName))
		return diag.NewJMCSyntaxWarning(fmt.Sprintf("Function %q lies under the private namespace prefix %q", name, cfg.PrivateName), &nameTok, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	fullPath := cfg.Namespace + ":" + name
	if prior, exists := p.lex.sess.Datapack.DefinedFilePos[fullPath]; exists {
		return diag.NewJMCSyntaxException(
			fmt.Sprintf("Function %q is already defined (first defined in %s:%d:%d)", fullPath, prior.Path, prior.Token.Line, prior.Token.Col),
			&nameTok, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	bodyTok := stmt[3]
	pre := &datapack.PreMcFunction{
		FuncContent: bodyTok.String[1 : len(bodyTok.String)-1],
		FilePath:    p.path,
		FullText:    p.frag.ContextText(),
		Line:        bodyTok.Line,
		Col:         bodyTok.Col + 1,
		FuncPath:    fullPath,
		Prefix:      p.prefix,
		IsLoad:      false,
		ParseBody:   p.lex.content.Parse,
		Logger:      p.lex.sess.Logger,
	}
	fn, fpath, perr := pre.Parse(p.lex.sess.Header)
	if perr != nil {
		return perr
	}

	if !save {
		return nil
	}

	site := datapack.CallSite{Token: nameTok, Path: p.path}
	p.lex.sess.Datapack.DefineFunction(fpath, fn, site)
	return nil
}

// parseResourceDeclaration handles `new TYPE(PATH) { JSON }`, with an
// optional trailing `extends "other.json"` clause that shallow-merges
// another JSON file's top-level keys underneath this declaration's body
// (this declaration's own keys take precedence on conflict — the core
// spec mentions the clause but leaves its merge semantics unspecified,
// so this follows the common "parent resource" convention).
func (p *parseState) parseResourceDeclaration(stmt token.Statement) *diag.Error {
	if len(stmt) < 4 || stmt[1].Kind != token.Keyword || stmt[2].Kind != token.RoundParen || stmt[3].Kind != token.CurlyParen {
		return diag.NewJMCSyntaxException("Expected a resource declaration: new TYPE(PATH) { JSON }", &stmt[0], p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}
	typeTok, parenTok, bodyTok := stmt[1], stmt[2], stmt[3]
	if !isConnected(typeTok, parenTok) {
		return diag.NewJMCSyntaxException("Expected no space between the resource type and its path", &parenTok, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	vanillaType, ok := vanilla.ResolveJSONFileType(typeTok.String)
	if !ok {
		return diag.NewJMCSyntaxException(fmt.Sprintf("Unrecognized resource type %q", typeTok.String), &typeTok, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	pathInner := parenTok.String[1 : len(parenTok.String)-1]
	resourcePath, err := conventionJMCToMC(pathInner, &parenTok, p.frag, p.lex.sess.Logger, p.prefix, false)
	if err != nil {
		return err
	}

	var body map[string]interface{}
	if jsonErr := json.Unmarshal([]byte(bodyTok.FullString()), &body); jsonErr != nil {
		return diag.NewJMCDecodeJSONError(p.path, jsonErr)
	}

	if len(stmt) >= 6 && stmt[4].Kind == token.Keyword && stmt[4].String == "extends" && stmt[5].Kind == token.String {
		parentPath := filepath.Join(filepath.Dir(p.path), stmt[5].String)
		merged, merr := mergeExtends(parentPath, body)
		if merr != nil {
			return diag.NewJMCDecodeJSONError(parentPath, merr)
		}
		body = merged
	}

	namespacedPath := fmt.Sprintf("%s/%s/%s.json", p.lex.sess.Config.Namespace, vanillaType, resourcePath)
	if prior, exists := p.lex.sess.Datapack.DefinedFilePos[namespacedPath]; exists {
		return diag.NewJMCSyntaxException(
			fmt.Sprintf("Resource %q is already defined (first defined in %s:%d:%d)", namespacedPath, prior.Path, prior.Token.Line, prior.Token.Col),
			&typeTok, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	site := datapack.CallSite{Token: typeTok, Path: p.path}
	p.lex.sess.Datapack.DefineJSON(namespacedPath, body, site)
	return nil
}

// parseClass handles `class NAME { BODY }`: BODY is re-tokenized with
// its own starting line/column so nested diagnostics still point at
// original source coordinates, and with a prefix (the lowercased class
// name plus a trailing '/') that every function path inside it inherits.
func (p *parseState) parseClass(stmt token.Statement) *diag.Error {
	if len(stmt) != 3 || stmt[1].Kind != token.Keyword || stmt[2].Kind != token.CurlyParen {
		return diag.NewJMCSyntaxException("Expected a class scope: class NAME { BODY }", &stmt[0], p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	nameTok := stmt[1]
	classPrefix := p.prefix + strings.ToLower(nameTok.String) + "/"

	bodyTok := stmt[2]
	nested := sourcefragment.NewNested(p.path, bodyTok.String[1:len(bodyTok.String)-1], p.frag.ContextText(), bodyTok.Line, bodyTok.Col+1)
	tz := tokenizer.New(nested, p.lex.sess.Header, true, false).WithLogger(p.lex.sess.Logger)
	statements, terr := tz.Run()
	if terr != nil {
		return terr
	}

	child := newParseState(p.lex, nested, p.path, classPrefix, p.isLoad, statements)
	return child.run()
}

// parseImport handles `import "path";`. A path ending in `/*` or `\*`
// glob-imports every `.jmc` file under that directory (recursively);
// otherwise path is treated as a relative `.jmc` file (the extension is
// appended if missing) and recursively parsed. Import is rejected inside
// a class scope.
func (p *parseState) parseImport(stmt token.Statement) *diag.Error {
	if p.prefix != "" {
		return diag.NewJMCSyntaxException("import is not allowed inside a class scope", &stmt[0], p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}
	if len(stmt) != 2 || stmt[1].Kind != token.String {
		return diag.NewJMCSyntaxException(`Expected import "path"`, &stmt[0], p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	raw := stmt[1].String
	dir := filepath.Dir(p.path)

	if strings.HasSuffix(raw, "/*") || strings.HasSuffix(raw, `\*`) {
		root := filepath.Join(dir, raw[:len(raw)-2])
		matches, walkErr := globJMC(root)
		if walkErr != nil || len(matches) == 0 {
			return diag.NewJMCFileNotFound(raw)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if err := p.lex.ParseFile(m, false); err != nil {
				return err
			}
		}
		return nil
	}

	target := raw
	if !strings.HasSuffix(target, ".jmc") {
		target += ".jmc"
	}
	return p.lex.ParseFile(filepath.Join(dir, target), false)
}

// parseDecoratedFunction handles `@name(args) function NAME() { BODY }`.
// The decorator's optional argument list uses the same paren grammar as
// macro arguments; its Effect runs for side effects (no return value),
// and its Save flag decides whether the resulting function is actually
// registered in the datapack.
func (p *parseState) parseDecoratedFunction(stmt token.Statement) *diag.Error {
	first := stmt[0]
	name := strings.TrimPrefix(first.String, "@")
	desc, ok := decorator.Lookup(name)
	if !ok {
		return diag.NewJMCSyntaxException(fmt.Sprintf("Unknown decorator %q", name), &first, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	rest := stmt[1:]
	var args []tokenizer.Arg
	if len(rest) > 0 && rest[0].Kind == token.RoundParen {
		paren := rest[0]
		parsed, perr := tokenizer.ParseArgumentList(p.frag, p.lex.sess.Header, paren.String[1:len(paren.String)-1], paren.Line, paren.Col+1, false)
		if perr != nil {
			return perr
		}
		args = parsed
		rest = rest[1:]
	}

	if len(rest) == 0 || rest[0].Kind != token.Keyword || rest[0].String != "function" {
		return diag.NewJMCSyntaxException("Expected a function definition after the decorator", &first, p.frag, diag.RenderOptions{IsDisplayColLength: true}, "")
	}

	flatArgs := make([]token.Token, 0, len(args))
	for _, a := range args {
		flatArgs = append(flatArgs, a.Value...)
	}
	desc.Effect(flatArgs, p.prefix)

	return p.parseFunctionDefinition(rest, desc.Save)
}

// globJMC walks root collecting every .jmc file beneath it
// (filepath.Glob has no "**" support, so a plain directory walk stands
// in for it).
func globJMC(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".jmc") {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// mergeExtends reads a parent JSON resource file and shallow-merges
// child's keys over it.
func mergeExtends(parentPath string, child map[string]interface{}) (map[string]interface{}, error) {
	raw, err := os.ReadFile(parentPath)
	if err != nil {
		return nil, err
	}
	var parent map[string]interface{}
	if err := json.Unmarshal(raw, &parent); err != nil {
		return nil, err
	}
	for k, v := range child {
		parent[k] = v
	}
	return parent, nil
}
