// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/streamsynth/internal/config"
	"github.com/mia-platform/streamsynth/internal/deliverystream"
	"github.com/mia-platform/streamsynth/internal/logger"
	"github.com/mia-platform/streamsynth/internal/template"
)

// synthHandler answers POST /synth: it decodes the pipeline definition in the
// request body and replies with the synthesized JSON template. Configuration
// errors are reported verbatim with a 400 status, since callers match on the
// message text.
func synthHandler(serverCtx context.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		log := logger.FromContext(ctx).WithName(loggerName)

		pipeline, err := config.NewPipelineFromReader(bytes.NewReader(c.Body()), "request body")
		if err != nil {
			return badRequest(c, err)
		}

		stream, err := deliverystream.FromConfig(pipeline)
		if err != nil {
			return badRequest(c, err)
		}

		tpl := template.New(pipeline.Description)
		if err := stream.Synthesize(ctx, tpl); err != nil {
			return badRequest(c, err)
		}

		data, err := tpl.JSON()
		if err != nil {
			log.Error("error serializing template", "error", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"statusCode": http.StatusInternalServerError,
				"error":      http.StatusText(http.StatusInternalServerError),
				"message":    "error serializing template",
			})
		}

		log.Debug("template synthesized", "pipeline", pipeline.Name, "resources", tpl.Len())
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(http.StatusOK).Send(data)
	}
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"statusCode": http.StatusBadRequest,
		"error":      http.StatusText(http.StatusBadRequest),
		"message":    err.Error(),
	})
}
