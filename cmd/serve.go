package cmd

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jjenkins/vinlookup/internal/handlers"
	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the VIN lookup web server",
	Long:  `Start the web server that decodes VINs and links to image searches.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		// Flag wins over PORT when it was set explicitly
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}

		lookupStore, db := openHistory(context.Background(), cfg)
		if db != nil {
			defer db.Close()
		} else {
			log.Println("DATABASE_URL not set, lookup history disabled")
		}

		app := fiber.New(fiber.Config{
			AppName: "US VIN Lookup",
		})

		app.Use(logger.New())

		handlers.Register(app, newResolver(cfg, lookupStore), lookupStore)

		log.Printf("Starting server on :%s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
