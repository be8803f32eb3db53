package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/speech"
)

type speechApi struct{}

func registerSpeechAPI(g *echo.Group) {
	api := speechApi{}
	g.POST("/speech/normalize", api.normalize)
}

func (api *speechApi) normalize(ctx echo.Context) error {
	var data speech.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to speech.Input")
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}
	text, err := speech.Normalize(data.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"text": text})
}
