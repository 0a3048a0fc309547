package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jjenkins/vinlookup/internal/service"
	"github.com/spf13/cobra"
)

var decodeOpenImages bool
var decodeJSON bool

var decodeCmd = &cobra.Command{
	Use:   "decode <VIN>",
	Short: "Decode a single VIN",
	Long: `Decode looks up one 17-character VIN and prints the decoded fields.

Examples:
  # Decode a VIN
  ./vinlookup decode 1HGCM82633A004352

  # Decode and open a Google Images search for the vehicle
  ./vinlookup decode 1HGCM82633A004352 --images

  # Print the raw decoded record as JSON
  ./vinlookup decode 1HGCM82633A004352 --json`,
	Args: cobra.ExactArgs(1),
	Run:  runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().BoolVarP(&decodeOpenImages, "images", "i", false, "Open a Google Images search for the decoded vehicle")
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "Print the decoded record as JSON")
}

func runDecode(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lookupStore, db := openHistory(ctx, cfg)
	if db != nil {
		defer db.Close()
	}

	resolver := newResolver(cfg, lookupStore)
	out := resolver.Resolve(ctx, args[0])
	if out.State != service.StateSuccess {
		fmt.Fprintln(os.Stderr, out.Message())
		os.Exit(1)
	}

	if decodeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out.Vehicle); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		printLines(os.Stdout, out.Lines, useBold())
	}

	if decodeOpenImages {
		u, err := service.OpenImageSearch(service.BrowserOpener{}, out.Vehicle.Ref())
		if err != nil {
			fmt.Fprintln(os.Stderr, service.UserMessage(err))
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Opened %s\n", u)
	}
}
