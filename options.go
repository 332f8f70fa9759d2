package treediff

import (
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// MatchOption allows configuring the behavior of the Match function.
type MatchOption interface {
	applyMatch(*matchConfig)
}

type matchOptionFunc func(*matchConfig)

func (f matchOptionFunc) applyMatch(c *matchConfig) {
	f(c)
}

type matchConfig struct {
	filter    Filter
	rules     []PruneRule
	remote    [2]bool
	readOnly  [2]bool
	logger    logr.Logger
	sessionID uuid.UUID
}

func newMatchConfig(opts []MatchOption) *matchConfig {
	config := &matchConfig{
		filter: AcceptAll,
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt.applyMatch(config)
	}
	if config.sessionID == uuid.Nil {
		config.sessionID = uuid.New()
	}
	return config
}

// WithFilter returns an option that selects the properties taking part in
// the match. A nil filter accepts everything.
func WithFilter(f Filter) MatchOption {
	return matchOptionFunc(func(c *matchConfig) {
		if f == nil {
			f = AcceptAll
		}
		c.filter = f
	})
}

// WithPruneRules returns an option that adds rules consulted by BuildDiff.
func WithPruneRules(rules ...PruneRule) MatchOption {
	return matchOptionFunc(func(c *matchConfig) {
		c.rules = append(c.rules, rules...)
	})
}

// WithRemote returns an option that marks side as a non-local resource.
func WithRemote(side Side) MatchOption {
	return matchOptionFunc(func(c *matchConfig) {
		c.remote[side] = true
	})
}

// WithReadOnly returns an option that marks side as read-only. Write never
// commits a read-only side and CanUpdate refuses updates towards it.
func WithReadOnly(side Side) MatchOption {
	return matchOptionFunc(func(c *matchConfig) {
		c.readOnly[side] = true
	})
}

// WithLogger returns an option that sets the logger of the session.
func WithLogger(l logr.Logger) MatchOption {
	return matchOptionFunc(func(c *matchConfig) {
		c.logger = l
	})
}

// WithSessionID returns an option that sets the session identifier instead
// of generating a random one.
func WithSessionID(id uuid.UUID) MatchOption {
	return matchOptionFunc(func(c *matchConfig) {
		c.sessionID = id
	})
}
