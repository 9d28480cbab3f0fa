package xmlcore

import "github.com/wilkmaciej/xml-streamer/internal/xlog"

// Config enumerates the reader's boolean well-formedness knobs.
// Defaults match strict XML 1.0 reading. Built with functional
// options, the pattern a generic streaming decoder's Option type
// carries.
type Config struct {
	ExpandEmptyElements           bool
	TrimTextStart                 bool
	TrimTextEnd                   bool
	TrimMarkupNamesInClosingTags  bool
	CheckEndNames                 bool
	AllowUnmatchedEnds            bool
	AllowDanglingAmp              bool
	CheckComments                 bool
	CheckDuplicateAttrs           bool

	// MaxDepth bounds element nesting to guard against malicious
	// documents (grounded on netascode-xmldot's MaxNestingDepth).
	// Zero means unbounded.
	MaxDepth int

	// MaxTokenSize bounds the byte length of a start or empty-element
	// tag (grounded on netascode-xmldot's MaxTokenSize); text, end
	// tags, comments, CDATA and other markup are not checked against
	// it. Zero means unbounded.
	MaxTokenSize int

	// Logger is carried with the configuration; the Reader itself
	// writes no diagnostics through it. The zero value (xlog.Logger{})
	// is silent.
	Logger xlog.Logger
}

// Option mutates a Config during construction.
type Option func(*Config)

// NewConfig builds a Config with XML 1.0 strict defaults (CheckEndNames
// and CheckComments on, everything permissive off), then applies opts.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		CheckEndNames:  true,
		CheckComments:  true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithExpandEmptyElements(v bool) Option { return func(c *Config) { c.ExpandEmptyElements = v } }
func WithTrimText(start, end bool) Option {
	return func(c *Config) { c.TrimTextStart = start; c.TrimTextEnd = end }
}
func WithTrimMarkupNamesInClosingTags(v bool) Option {
	return func(c *Config) { c.TrimMarkupNamesInClosingTags = v }
}
func WithCheckEndNames(v bool) Option      { return func(c *Config) { c.CheckEndNames = v } }
func WithAllowUnmatchedEnds(v bool) Option { return func(c *Config) { c.AllowUnmatchedEnds = v } }
func WithAllowDanglingAmp(v bool) Option   { return func(c *Config) { c.AllowDanglingAmp = v } }
func WithCheckComments(v bool) Option      { return func(c *Config) { c.CheckComments = v } }
func WithCheckDuplicateAttrs(v bool) Option {
	return func(c *Config) { c.CheckDuplicateAttrs = v }
}
func WithMaxDepth(n int) Option     { return func(c *Config) { c.MaxDepth = n } }
func WithMaxTokenSize(n int) Option { return func(c *Config) { c.MaxTokenSize = n } }

// EnableAllChecks bulk-toggles every well-formedness check (spec
// §4.2's enable_all_checks).
func EnableAllChecks(v bool) Option {
	return func(c *Config) {
		c.CheckEndNames = v
		c.CheckComments = v
		c.CheckDuplicateAttrs = v
		c.AllowUnmatchedEnds = !v
		c.AllowDanglingAmp = !v
	}
}
