package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently decoded vehicles",
	Long: `History lists the most recent successful lookups recorded in PostgreSQL.

Lookups are only recorded when DATABASE_URL is set. They are never used to
answer a decode; every decode queries the API.`,
	Run: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of lookups to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	if !cfg.HistoryEnabled() {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	lookupStore, db := openHistory(ctx, cfg)
	defer db.Close()

	summary, err := lookupStore.Summary(ctx)
	if err != nil {
		log.Fatalf("Failed to load summary: %v", err)
	}

	lookups, err := lookupStore.Recent(ctx, historyLimit)
	if err != nil {
		log.Fatalf("Failed to load lookups: %v", err)
	}

	log.Println("=== Lookup History ===")
	log.Printf("Total lookups:   %d", summary.TotalLookups)
	log.Printf("Unique VINs:     %d", summary.UniqueVINs)
	if summary.TopMake != "" {
		log.Printf("Top make:        %s (%d lookups)", summary.TopMake, summary.TopMakeCount)
	}
	log.Println("")

	for _, l := range lookups {
		log.Printf("%s  %s  %s %s %s",
			l.SearchedAt.Format("2006-01-02 15:04"), l.VIN, l.ModelYear, l.Make, l.Model)
	}
}
