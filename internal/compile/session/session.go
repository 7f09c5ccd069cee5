// Package session owns the single mutable compilation-run value the
// Lexer Driver holds by pointer: the project Configuration, the shared
// Header, and the Datapack output sink. The Lexer Driver hands the Header
// and Logger on to each Tokenizer it builds; the FuncContent collaborator
// receives only statements. This avoids the cyclic Lexer<->Datapack
// ownership described in internal/compile/datapack's package doc by
// giving both a single shared owner constructed once per compile.
package session

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmc-lang/jmc/internal/cli/config"
	"github.com/jmc-lang/jmc/internal/compile/datapack"
	"github.com/jmc-lang/jmc/internal/compile/header"
	"github.com/jmc-lang/jmc/internal/compile/packversion"
)

// Session is the compilation-wide owner the Lexer holds by pointer.
type Session struct {
	Config   config.Configuration
	Datapack *datapack.Datapack
	Header   *header.Header
	Logger   *zap.Logger
	// RunID identifies one compilation run. It is not attached to the
	// Logger's fields or to any log entry this module writes.
	RunID uuid.UUID
}

// New builds a Session with a no-op logger; callers that want real
// output attach one afterward via WithLogger.
func New(cfg config.Configuration) *Session {
	return &Session{
		Config:   cfg,
		Datapack: datapack.New(cfg.Namespace, packversion.New(cfg.PackFormat)),
		Header:   header.New(),
		Logger:   zap.NewNop(),
		RunID:    uuid.New(),
	}
}

// WithLogger replaces the Session's logger, returning the Session for
// chaining (e.g. session.New(cfg).WithLogger(prodLogger)).
func (s *Session) WithLogger(logger *zap.Logger) *Session {
	s.Logger = logger
	return s
}
