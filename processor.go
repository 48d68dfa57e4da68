package expanse

import "log/slog"

// ProcessorOption can be used to customise the behaviour of a [Processor].
type ProcessorOption func(*Processor)

// Processor expands JSON documents.
//
// Your application should only ever need one of them. Create one with
// [NewProcessor] and pass any [ProcessorOption] to configure it.
type Processor struct {
	logger *slog.Logger
	store  *Store
}

// NewProcessor creates a new expansion processor.
//
// By default:
//   - No store is configured; every call to [Processor.Expand] uses a fresh
//     store without caching. Set one with [WithStore] to share resolved
//     remote contexts across calls.
//   - Logger is [slog.DiscardHandler]. Set it with [WithLogger]. The logger
//     is only used to emit warnings.
func NewProcessor(options ...ProcessorOption) *Processor {
	p := &Processor{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// WithStore sets the context store shared by all expansion calls.
func WithStore(s *Store) ProcessorOption {
	return func(p *Processor) {
		p.store = s
	}
}

// WithLogger sets the logger that'll be used to emit warnings during
// processing.
//
// Without a logger no warnings are emitted when malformed context entries or
// unresolvable terms are dropped.
func WithLogger(l *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = l
	}
}
