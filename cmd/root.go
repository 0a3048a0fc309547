package cmd

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/jjenkins/vinlookup/internal/config"
	"github.com/jjenkins/vinlookup/internal/service"
	"github.com/jjenkins/vinlookup/internal/store"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "vinlookup",
	Short: "Decode US Vehicle Identification Numbers",
	Long: `vinlookup decodes 17-character VINs with the NHTSA vPIC API and shows
make, model, year, body, fuel, drive, engine, displacement, transmission
and the suggested VIN. It can also open a Google Images search for the
decoded vehicle.

The decode URL template is read from appsettings.json (VinDecoder.ApiUrlTemplate)
or the VIN_API_URL_TEMPLATE environment variable.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the settings file (default: appsettings.json in . or ./conf)")
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.VinDecoder.ApiUrlTemplate == "" {
		log.Println("Warning: no decode URL template configured, every lookup will fail")
	}
	return cfg
}

// openHistory connects to the lookup history when DATABASE_URL is set.
// It returns a nil store and a nil db when history is disabled.
func openHistory(ctx context.Context, cfg *config.Config) (*store.LookupStore, *sql.DB) {
	if !cfg.HistoryEnabled() {
		return nil, nil
	}

	db, err := store.NewDB(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	lookupStore := store.NewLookupStore(db)
	if err := lookupStore.EnsureSchema(ctx); err != nil {
		db.Close()
		log.Fatalf("Failed to prepare database: %v", err)
	}

	return lookupStore, db
}

// newResolver builds the decode pipeline; lookupStore may be nil
func newResolver(cfg *config.Config, lookupStore *store.LookupStore) *service.Resolver {
	client := service.NewVPICClient(cfg.VinDecoder.ApiUrlTemplate, cfg.VinDecoder.Timeout)
	if lookupStore == nil {
		return service.NewResolver(client, nil)
	}
	return service.NewResolver(client, lookupStore)
}
