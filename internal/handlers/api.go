package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/vinlookup/internal/model"
	"github.com/jjenkins/vinlookup/internal/service"
)

type vehicleResponse struct {
	VIN            string       `json:"vin"`
	Lines          []model.Line `json:"lines"`
	ImageSearchURL string       `json:"image_search_url,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func VehicleAPIHandler(resolver *service.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := resolver.Resolve(c.UserContext(), c.Params("vin"))

		switch out.State {
		case service.StateSuccess:
			resp := vehicleResponse{
				VIN:   out.VIN,
				Lines: out.Lines,
			}
			// Missing make/model/year only drops the link
			if u, err := out.ImageSearchURL(); err == nil {
				resp.ImageSearchURL = u
			}
			return c.JSON(resp)
		case service.StateInvalid:
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: out.Message()})
		case service.StateNoResults:
			return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: out.Message()})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: out.Message()})
		}
	}
}
