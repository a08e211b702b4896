package sessiontrack

import (
	"errors"

	"github.com/mzkv/sessiontrack/store"
)

// Builder defines a public type used by sessiontrack APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config  Config
	storage store.Storage
	clock   Clock
	nav     Navigator

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage describes the withstorage operation and its observable behavior.
func (b *Builder) WithStorage(s store.Storage) *Builder {
	b.storage = s
	return b
}

// WithClock describes the withclock operation and its observable behavior.
func (b *Builder) WithClock(c Clock) *Builder {
	b.clock = c
	return b
}

// WithNavigator describes the withnavigator operation and its observable behavior.
func (b *Builder) WithNavigator(n Navigator) *Builder {
	b.nav = n
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithAuditEnabled describes the withauditenabled operation and its observable behavior.
func (b *Builder) WithAuditEnabled(enabled bool) *Builder {
	b.config.Audit.Enabled = enabled
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation fails or a required
// collaborator is missing. A Builder can be used once.
func (b *Builder) Build() (*Tracker, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.storage == nil {
		return nil, ErrStorageRequired
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := b.clock
	if clock == nil {
		clock = SystemClock()
	}

	nav := b.nav
	if nav == nil {
		nav = NoOpNavigator{}
	}

	b.built = true

	return &Tracker{
		config:  cfg,
		storage: b.storage,
		clock:   clock,
		nav:     nav,
		metrics: NewMetrics(cfg.Metrics),
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
	}, nil
}
