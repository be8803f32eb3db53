package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/config"
	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/logging"
	"github.com/san-kum/eduverse/internal/progress"
	"github.com/san-kum/eduverse/internal/scene"
	"github.com/san-kum/eduverse/internal/validate"
)

// badRequest lists the domain errors caused by caller input.
var badRequest = []error{
	geometry.ErrParameterBounds,
	geometry.ErrUnknownHeightFunc,
	scene.ErrUnknownKind,
	config.ErrUnknownPreset,
	anim.ErrClock,
	progress.ErrInvalidRole,
}

func isBadRequest(err error) bool {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// newAppHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors onto status codes and JSON bodies.
func newAppHTTPErrorHandler(logger logging.Logger, v *validate.Validator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case *echo.BindingError:
			code = http.StatusBadRequest
			message = map[string]string{origErr.Field: "invalid value"}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = v.Fields(origErr)
		default:
			switch {
			case isBadRequest(err):
				code = http.StatusBadRequest
				message = err.Error()
			case errors.Is(err, progress.ErrNotFound):
				code = http.StatusNotFound
				message = http.StatusText(http.StatusNotFound)
			default: // any other error is a server error
				code = http.StatusInternalServerError
				message = http.StatusText(http.StatusInternalServerError)
				logger.Errorf("api: %s %s: %+v", ctx.Request().Method, ctx.Path(), err)
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
