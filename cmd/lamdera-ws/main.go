package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╔═╗╔╦╗╔╦╗╔═╗╦═╗╔═╗  ╦ ╦╔═╗
  ║  ╠═╣║║║ ║║║╣ ╠╦╝╠═╣  ║║║╚═╗
  ╩═╝╩ ╩╩ ╩═╩╝╚═╝╩╚═╩ ╩  ╚╩╝╚═╝
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "lamdera-ws",
		Short: "A resilient client for the Lamdera-style WebSocket protocol",
		Long: `lamdera-ws connects to a Lamdera-style hosted backend over its
proprietary WebSocket protocol: a compact binary value codec, a
session/cookie discipline, and a leader-avoidance loop that keeps a
plain client from ever being mistaken for the session's authoritative
leader.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		connectCmd(),
		serveDebugCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Print(banner)
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
