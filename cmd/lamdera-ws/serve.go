package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/lamdera-ws/pkg/wsadapter"
)

// healthResponse is the JSON body served at /healthz: enough of the
// adapter's state for an operator or liveness probe to tell a stuck
// connection apart from a healthy one without scraping /metrics.
type healthResponse struct {
	State      string `json:"state"`
	SessionID  string `json:"sessionId"`
	LeaderID   string `json:"leaderId,omitempty"`
	ClientID   string `json:"clientId,omitempty"`
	RetryCount int    `json:"retryCount"`
}

func serveDebugCmd() *cobra.Command {
	var (
		addr       string
		debug      bool
		maxRetries int
		cookie     string
	)

	cmd := &cobra.Command{
		Use:   "serve-debug <url>",
		Short: "Run a long-lived connection with a /healthz and /metrics sidecar",
		Long: `serve-debug dials a Lamdera-style host like connect does, but
prints only open, close and error events; it keeps the connection alive in
the background and exposes its state over HTTP: /healthz reports the current
ConnectionState, retry count, and session id, /history lists past session
ids recorded across leader-avoidance rotations, and /metrics exposes the
Prometheus counters and gauges registered by pkg/wsadapter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]

			opts := []wsadapter.Option{
				wsadapter.WithURL(url),
				wsadapter.WithDebug(debug),
				wsadapter.WithMaxRetries(maxRetries),
			}
			if cookie != "" {
				opts = append(opts, wsadapter.WithCookie(cookie))
			}
			if debug {
				handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
				opts = append(opts, wsadapter.WithLogger(slog.New(handler)))
			}

			client := wsadapter.New(opts...)
			client.SetCallbacks(wsadapter.Funcs{
				Open: func() { info("open (sessionId=%s)", client.SessionID()) },
				Close: func(code int, reason string) {
					info("close code=%d reason=%q", code, reason)
				},
				Error: func(err error) { errorMsg("%s", err) },
			})

			r := chi.NewRouter()
			r.Use(chimw.Logger)
			r.Use(chimw.Recoverer)

			r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(healthResponse{
					State:      client.ReadyState().String(),
					SessionID:  client.SessionID(),
					LeaderID:   client.LeaderID(),
					ClientID:   client.ClientID(),
					RetryCount: client.RetryCount(),
				})
			})
			r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(client.SessionHistory())
			})
			r.Handle("/metrics", promhttp.Handler())

			info("serving on %s (connecting to %s)", addr, url)
			return http.ListenAndServe(addr, r)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().BoolVar(&debug, "debug", false, "log every frame sent and received")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 10, "leader-avoidance retry budget")
	cmd.Flags().StringVar(&cookie, "cookie", "", "override the Cookie header sent with the dial")

	return cmd
}
