// Package favorites keeps per-session favorite table lists in sync with an
// optional persistent backend.
package favorites

import (
	"context"
	"fmt"

	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/rs/zerolog"
)

// Options configures a Service.
type Options struct {
	// User is the identity favorites are persisted under.
	User string
	// Server identifies the server the session talks to.
	Server string
	// MaxSize bounds the length of every list. Negative means zero.
	MaxSize int
}

// Service hands out the favorites list of a session.
type Service struct {
	sessions favorite.SessionStore
	backend  favorite.Backend
	opts     Options
	log      zerolog.Logger
}

// New creates a new Service. backend may be nil, in which case lists only
// live as long as their session.
func New(sessions favorite.SessionStore, backend favorite.Backend, opts Options, log zerolog.Logger) *Service {
	return &Service{
		sessions: sessions,
		backend:  backend,
		opts:     opts,
		log:      log,
	}
}

// Persistent reports whether lists are written through to a backend.
func (s *Service) Persistent() bool {
	return s.backend != nil
}

// Open returns the list for session on the configured server. The first
// Open of a session hydrates the cache from the backend; later calls reuse
// the cached list without touching the backend.
func (s *Service) Open(ctx context.Context, session string) (*List, error) {
	l := &List{
		key:      favorite.SessionKey{Session: session, Server: s.opts.Server},
		user:     s.opts.User,
		maxSize:  s.opts.MaxSize,
		sessions: s.sessions,
		backend:  s.backend,
		log:      s.log.With().Str("session", session).Str("server", s.opts.Server).Logger(),
	}

	if _, err := l.current(ctx); err != nil {
		return nil, err
	}

	return l, nil
}

// End drops every list cached for session.
func (s *Service) End(ctx context.Context, session string) (int, error) {
	n, err := s.sessions.Drop(ctx, session)
	if err != nil {
		return 0, fmt.Errorf("drop session cache: %w", err)
	}
	s.log.Debug().Str("session", session).Int("lists", n).Msg("session ended")
	return n, nil
}
