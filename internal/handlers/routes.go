package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/vinlookup/internal/service"
	"github.com/jjenkins/vinlookup/internal/store"
)

// Register mounts every route on app. lookupStore may be nil.
func Register(app *fiber.App, resolver *service.Resolver, lookupStore *store.LookupStore) {
	app.Get("/", HomeHandler())
	app.Get("/decode", DecodeHandler(resolver))
	app.Get("/images", ImagesHandler())
	app.Get("/history", HistoryHandler(lookupStore))

	api := app.Group("/api")
	api.Get("/vehicles/:vin", VehicleAPIHandler(resolver))
}
