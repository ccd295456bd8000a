package web

import (
	"cmp"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorLogAndMaskMiddleware logs every error escaping a handler and converts
// it into an echo.HTTPError safe to show to a client. Causes stay hidden
// unless the handler explicitly opted into unmasking them.
func ErrorLogAndMaskMiddleware(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			logger.Printf("%s %s: %v", c.Request().Method, c.Request().RequestURI, err)

			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				message := cmp.Or(httpErr.message, http.StatusText(httpErr.code))
				if httpErr.unmaskCause && httpErr.cause != nil {
					message = message + ": " + httpErr.cause.Error()
				}

				return echo.NewHTTPError(httpErr.code, message)
			}

			var echoErr *echo.HTTPError
			if errors.As(err, &echoErr) {
				return echoErr
			}

			return echo.NewHTTPError(http.StatusInternalServerError, "something went wrong, please try again")
		}
	}
}

func NoCacheOnErrorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				noCache(c)
			}

			return err
		}
	}
}
