// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIDHeaderName = "x-request-id"

	// IncomingRequestMessage is logged when a request enters the middleware.
	IncomingRequestMessage = "incoming request"
	// RequestCompletedMessage is logged when the handler chain returns.
	RequestCompletedMessage = "request completed"
)

// requestID returns the id forwarded by the caller or generates a random one.
func requestID(c *fiber.Ctx) string {
	if id := c.Get(requestIDHeaderName, ""); id != "" {
		return id
	}

	return uuid.NewString()
}

// statusCode reports the status that will be written to the client, taking the
// handler error into account since the error handler has not run yet.
func statusCode(c *fiber.Ctx, handlerErr error) int {
	if fiberErr, ok := handlerErr.(*fiber.Error); ok {
		return fiberErr.Code
	}

	return c.Response().StatusCode()
}

// RequestMiddlewareLogger is a fiber middleware to log all requests.
// It logs the incoming request and when the request is completed, adding the
// latency of the request. Paths starting with one of excludedPrefixes are not
// logged.
func RequestMiddlewareLogger(log Logger, excludedPrefixes []string) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		path := string(c.Request().URI().RequestURI())
		for _, prefix := range excludedPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		start := time.Now()
		requestLog := log.WithName("request").WithName(requestID(c))
		c.SetUserContext(WithContext(c.UserContext(), requestLog))

		requestLog.Trace(IncomingRequestMessage,
			"method", c.Method(),
			"path", path,
			"userAgent", c.Get(fiber.HeaderUserAgent, ""),
		)

		err := c.Next()

		requestLog.Info(RequestCompletedMessage,
			"method", c.Method(),
			"path", path,
			"statusCode", statusCode(c, err),
			"responseTime", float64(time.Since(start).Milliseconds()),
		)

		return err
	}
}
