package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/lamdera-ws/pkg/wsadapter"
)

func connectCmd() *cobra.Command {
	var (
		debug      bool
		maxRetries int
		cookie     string
		sendOnOpen string
	)

	cmd := &cobra.Command{
		Use:   "connect <url>",
		Short: "Connect to a Lamdera-style host and print lifecycle events",
		Args:  cobra.ExactArgs(1),
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
				Open: func() {
					info("open (sessionId=%s)", client.SessionID())
				},
				Setup: func(s wsadapter.SetupInfo) {
					info("setup clientId=%s leaderId=%q isLeader=%v", s.ClientID, s.LeaderID, s.IsLeader)
					if sendOnOpen != "" {
						if err := client.Send(sendOnOpen); err != nil {
							errorMsg("send: %s", err)
						}
					}
				},
				Message: func(data string) {
					fmt.Printf("< %s\n", data)
				},
				Close: func(code int, reason string) {
					info("close code=%d reason=%q", code, reason)
				},
				Error: func(err error) {
					errorMsg("%s", err)
				},
				LeaderDisconnect: func(retryCount int) {
					errorMsg("leader-avoidance exhausted after %d retries", retryCount)
				},
			})

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case <-sigCh:
				client.Close(1000, "interrupted")
			case <-client.Done():
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "log every frame sent and received")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 10, "leader-avoidance retry budget")
	cmd.Flags().StringVar(&cookie, "cookie", "", "override the Cookie header sent with the dial")
	cmd.Flags().StringVar(&sendOnOpen, "send", "", "message to send once the session is set up")

	return cmd
}
