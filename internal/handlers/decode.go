package handlers

import (
	"net/url"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jjenkins/vinlookup/internal/model"
	"github.com/jjenkins/vinlookup/internal/service"
	"github.com/jjenkins/vinlookup/internal/templates"
)

func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := templates.Home()
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}

func DecodeHandler(resolver *service.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := c.Query("vin")
		out := resolver.Resolve(c.UserContext(), input)

		view := templates.DecodeView{
			Input: input,
			Lines: out.Lines,
		}
		if out.State == service.StateSuccess {
			view.ImagesURL = imagesPath(out.Vehicle.Ref())
		} else {
			view.Message = out.Message()
		}

		page := templates.Decode(view)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}

// ImagesHandler redirects to the image search for the vehicle in the query string
func ImagesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := model.VehicleRef{
			Make:  c.Query("make"),
			Model: c.Query("model"),
			Year:  c.Query("year"),
		}

		u, err := service.BuildImageSearchURL(ref)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(service.UserMessage(err))
		}

		return c.Redirect(u, fiber.StatusFound)
	}
}

// imagesPath carries the decoded vehicle to /images explicitly in the query
func imagesPath(ref model.VehicleRef) string {
	q := url.Values{}
	q.Set("make", ref.Make)
	q.Set("model", ref.Model)
	q.Set("year", ref.Year)
	return "/images?" + q.Encode()
}
