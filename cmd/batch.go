package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jjenkins/vinlookup/internal/service"
	"github.com/spf13/cobra"
)

var batchDelay time.Duration
var batchOutput string

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Decode a list of VINs from a file",
	Long: `Batch decodes every VIN in a file, one per line, one request at a time.

Blank lines and lines starting with # are ignored. Use "-" to read from
standard input.

Examples:
  # Decode a fleet list
  ./vinlookup batch fleet.txt

  # Write decoded vehicles as JSON lines and slow down between requests
  ./vinlookup batch fleet.txt --out vehicles.jsonl --delay 2s`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().DurationVar(&batchDelay, "delay", 500*time.Millisecond, "Delay between API requests")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Write decoded vehicles as JSON lines to this file")
}

func runBatch(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	// Set up context with cancellation on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in := os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("Failed to open VIN list: %v", err)
		}
		defer f.Close()
		in = f
	}

	vins, err := service.ReadVINs(in)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var enc *json.Encoder
	if batchOutput != "" {
		out, err := os.Create(batchOutput)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer out.Close()
		enc = json.NewEncoder(out)
	}

	lookupStore, db := openHistory(ctx, cfg)
	if db != nil {
		defer db.Close()
	}

	batch := service.NewBatchDecoder(newResolver(cfg, lookupStore))
	batch.Delay = batchDelay

	log.Printf("Decoding %d VINs...", len(vins))
	stats, err := batch.Decode(ctx, vins, func(out service.Outcome) {
		if enc == nil || out.State != service.StateSuccess {
			return
		}
		if err := enc.Encode(out.Vehicle); err != nil {
			log.Printf("Warning: failed to write %s: %v", out.VIN, err)
		}
	})
	if err != nil {
		log.Println("Batch cancelled")
		batch.PrintSummary(stats)
		os.Exit(1)
	}
	batch.PrintSummary(stats)

	// Exit with error code if any request failed outright
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
