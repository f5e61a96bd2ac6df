package party

import (
	"context"
	"fmt"
	mrand "math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"colonnes/game"
)

// Options règle le registre.
type Options struct {
	Tick       time.Duration // période de la boucle de contrôle
	Seed       int64         // 0 : graine dérivée de l'horloge
	MaxParties int           // 0 : illimité
	Rules      func(game.Mode) game.Rules
	Clock      game.Clock
}

// Registry garde les parties en cours, indexées par code.
type Registry struct {
	mu      sync.Mutex
	parties map[string]*Party
	opts    Options
	seeds   int64
	codes   *mrand.Rand // tirage des codes, protégé par mu
	logger  *zap.Logger
}

// NewRegistry crée un registre vide.
func NewRegistry(opts Options, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Tick <= 0 {
		opts.Tick = 50 * time.Millisecond
	}
	if opts.Rules == nil {
		opts.Rules = func(m game.Mode) game.Rules {
			r := game.DefaultRules()
			r.Mode = m
			return r
		}
	}
	if opts.Clock == nil {
		opts.Clock = game.ClockFunc(time.Now)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Registry{
		parties: make(map[string]*Party),
		opts:    opts,
		codes:   mrand.New(mrand.NewSource(seed)),
		logger:  logger,
	}
}

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateCode tire un code de partie de six caractères.
func generateCode(src game.Source) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = codeCharset[src.Intn(len(codeCharset))]
	}
	return string(b)
}

func (r *Registry) nextGenerator() *game.Generator {
	if r.opts.Seed == 0 {
		return game.NewGenerator(time.Now().UnixNano())
	}
	r.seeds++
	return game.NewGenerator(r.opts.Seed + r.seeds - 1)
}

// Create démarre une nouvelle partie et sa boucle de contrôle.
func (r *Registry) Create(ctx context.Context, mode game.Mode) (*Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opts.MaxParties > 0 && len(r.parties) >= r.opts.MaxParties {
		return nil, ErrTooManyParties
	}
	code := generateCode(r.codes)
	for r.parties[code] != nil {
		code = generateCode(r.codes)
	}
	eng := game.NewEngine(r.opts.Rules(mode), r.nextGenerator(), r.opts.Clock)
	p := newParty(code, eng, r.opts.Clock, r.logger)

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	go p.run(loopCtx, r.opts.Tick)

	r.parties[code] = p
	p.logger.Info("party created", zap.String("mode", string(mode)))
	return p, nil
}

// Get retourne la partie de code donné.
func (r *Registry) Get(code string) (*Party, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	r.mu.Lock()
	p, ok := r.parties[code]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("party %q: %w", code, ErrPartyNotFound)
	}
	return p, nil
}

// Remove arrête et oublie une partie.
func (r *Registry) Remove(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	r.mu.Lock()
	p, ok := r.parties[code]
	delete(r.parties, code)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("party %q: %w", code, ErrPartyNotFound)
	}
	p.close()
	p.logger.Info("party closed")
	return nil
}

// Len retourne le nombre de parties.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parties)
}

// Close arrête toutes les parties.
func (r *Registry) Close() {
	r.mu.Lock()
	all := make([]*Party, 0, len(r.parties))
	for code, p := range r.parties {
		all = append(all, p)
		delete(r.parties, code)
	}
	r.mu.Unlock()
	for _, p := range all {
		p.close()
	}
}
