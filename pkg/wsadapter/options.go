package wsadapter

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/lamdera-ws/pkg/wire3"
)

// Config holds every tunable of a Client. Build one with defaultConfig and
// Options, the same way pkg/middleware builds its MetricsConfig.
type Config struct {
	// URL is the wss:// or ws:// endpoint to connect to. Required.
	URL string

	// Debug enables verbose slog.Debug logging of every frame sent and
	// received. Off by default since frame bodies can be large.
	Debug bool

	// MessageTag is the Wire3 message tag this application uses to
	// distinguish its payloads from protocol frames sharing the "b" field.
	// Default: wire3.DefaultTag.
	MessageTag byte

	// DUVariant is the opaque compatibility value threaded into every
	// outbound envelope's "v" field when non-zero. Default: 0 (omitted).
	DUVariant int

	// MaxRetries is the number of leader-avoidance reconnect attempts
	// before giving up and calling OnLeaderDisconnect. Default: 10.
	MaxRetries int

	// RetryBaseDelay and RetryMaxDelay bound the exponential backoff
	// curve between reconnect attempts. Defaults: 2s and 15s.
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// InitialDelayMax bounds the random jitter applied before the very
	// first connection attempt, spreading out simultaneous page loads.
	// Default: 1s.
	InitialDelayMax time.Duration

	// SessionID pins the session identifier instead of generating a fresh
	// one with session.GenerateID. Leave empty to generate one.
	SessionID string

	// MaxSessionHistory bounds how many past session ids SessionHistory
	// retains, oldest evicted first. Default: 20.
	MaxSessionHistory int

	// Cookie overrides the Cookie header sent with the dial, in case the
	// caller has already obtained one out of band (e.g. from an initial
	// HTTP page load). Leave empty to derive one from SessionID.
	Cookie string

	// Dialer opens the transport socket. Default: DialGorilla.
	Dialer Dialer

	// Logger receives structured logs for every state transition,
	// election, and retry. Default: slog.Default().
	Logger *slog.Logger

	// Registry is the Prometheus registerer metrics are registered
	// against. Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Tracer produces the span covering each connection attempt.
	// Default: resolved from the global OpenTelemetry provider, matching
	// the host application's own otel.SetTracerProvider configuration (a
	// no-op until one is set).
	Tracer trace.Tracer
}

// Option configures a Config.
type Option func(*Config)

// WithURL sets the endpoint to connect to.
func WithURL(url string) Option {
	return func(c *Config) { c.URL = url }
}

// WithDebug enables per-frame debug logging.
func WithDebug(debug bool) Option {
	return func(c *Config) { c.Debug = debug }
}

// WithMessageTag sets the Wire3 tag used to recognize application payloads.
func WithMessageTag(tag byte) Option {
	return func(c *Config) { c.MessageTag = tag }
}

// WithDUVariant sets the opaque envelope compatibility value.
func WithDUVariant(v int) Option {
	return func(c *Config) { c.DUVariant = v }
}

// WithMaxRetries sets the leader-avoidance retry budget.
func WithMaxRetries(n int) Option {
	return func(c *Config) { c.MaxRetries = n }
}

// WithRetryDelays sets the backoff curve's base and ceiling.
func WithRetryDelays(base, max time.Duration) Option {
	return func(c *Config) { c.RetryBaseDelay = base; c.RetryMaxDelay = max }
}

// WithInitialDelayMax bounds the jitter before the first connect attempt.
func WithInitialDelayMax(d time.Duration) Option {
	return func(c *Config) { c.InitialDelayMax = d }
}

// WithSessionID pins the session identifier.
func WithSessionID(id string) Option {
	return func(c *Config) { c.SessionID = id }
}

// WithMaxSessionHistory bounds how many past session ids SessionHistory
// retains.
func WithMaxSessionHistory(n int) Option {
	return func(c *Config) { c.MaxSessionHistory = n }
}

// WithCookie overrides the Cookie header sent with the dial.
func WithCookie(cookie string) Option {
	return func(c *Config) { c.Cookie = cookie }
}

// WithDialer overrides the transport dialer, primarily for tests.
func WithDialer(d Dialer) Option {
	return func(c *Config) { c.Dialer = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithRegistry sets the Prometheus registerer metrics are registered
// against.
func WithRegistry(r prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = r }
}

// WithTracer sets the otel tracer used to span connection attempts.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) { c.Tracer = t }
}

func defaultConfig() Config {
	return Config{
		MessageTag:        wire3.DefaultTag,
		MaxRetries:        10,
		RetryBaseDelay:    2 * time.Second,
		RetryMaxDelay:     15 * time.Second,
		InitialDelayMax:   time.Second,
		MaxSessionHistory: 20,
		Dialer:            DialGorilla,
		Logger:            slog.Default(),
		Registry:          prometheus.DefaultRegisterer,
		Tracer:            otel.Tracer("wsadapter"),
	}
}

func buildConfig(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
