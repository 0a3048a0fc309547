package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jjenkins/vinlookup/internal/store"
	"github.com/jjenkins/vinlookup/internal/templates"
)

const historyLimit = 50

func HistoryHandler(lookupStore *store.LookupStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if lookupStore == nil {
			return c.Status(fiber.StatusNotFound).SendString("History is disabled (DATABASE_URL is not set)")
		}

		ctx := c.UserContext()

		summary, err := lookupStore.Summary(ctx)
		if err != nil {
			log.Printf("Error loading lookup summary: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading history")
		}

		lookups, err := lookupStore.Recent(ctx, historyLimit)
		if err != nil {
			log.Printf("Error loading recent lookups: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading history")
		}

		page := templates.History(summary, lookups)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}
