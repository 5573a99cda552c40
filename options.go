package jsonsanitize

// Depth limits for the container nesting cap. Values passed to
// WithMaxNestingDepth are clamped into [MinNestingDepth, MaxNestingDepth].
const (
	MinNestingDepth     = 1
	MaxNestingDepth     = 4096
	DefaultNestingDepth = 64
)

type config struct {
	maxDepth int
}

func defaultConfig() config {
	return config{maxDepth: DefaultNestingDepth}
}

// Option configures a single Sanitize call.
type Option func(*config)

// WithMaxNestingDepth sets the maximum number of containers that may be open
// at once. The value is clamped to [MinNestingDepth, MaxNestingDepth];
// exceeding the cap makes Sanitize return ErrNestingTooDeep.
func WithMaxNestingDepth(depth int) Option {
	return func(c *config) {
		if depth < MinNestingDepth {
			depth = MinNestingDepth
		}
		if depth > MaxNestingDepth {
			depth = MaxNestingDepth
		}
		c.maxDepth = depth
	}
}
