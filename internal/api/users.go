package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/progress"
)

type userApi struct {
	svc     *progress.Service
	tracker *progress.Tracker
}

type (
	activityRequest struct {
		At string `json:"at"`
	}

	activityResponse struct {
		progress.ActivityResult
		Notice string `json:"notice,omitempty"`
	}

	roleRequest struct {
		Role string `json:"role" validate:"required"`
	}
)

func registerUserAPI(g *echo.Group, svc *progress.Service, tracker *progress.Tracker) {
	api := userApi{svc: svc, tracker: tracker}

	dg := g.Group("/users/:id")
	dg.POST("/activity", api.activity)
	dg.GET("/streak", api.streak)
	dg.GET("/achievements", api.achievements)
	dg.GET("/role", api.role)
	dg.PUT("/role", api.setRole)
}

func userID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid user id").SetInternal(err)
	}
	return id, nil
}

// activity never fails because of the record store: a store error still
// answers 200 with a notice so the lesson can go on.
func (api *userApi) activity(ctx echo.Context) error {
	id, err := userID(ctx)
	if err != nil {
		return err
	}
	var data activityRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to activityRequest")
	}
	var at time.Time
	if data.At != "" {
		if at, err = time.Parse(time.RFC3339, data.At); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"at": "must be an RFC 3339 timestamp"})
		}
	}

	res, ok := api.tracker.RecordActivity(ctx.Request().Context(), id, at)
	if !ok {
		return ctx.JSON(http.StatusOK, activityResponse{
			ActivityResult: progress.ActivityResult{Streak: progress.Streak{UserID: id}, Awarded: []progress.Achievement{}},
			Notice:         "progress could not be saved",
		})
	}
	return ctx.JSON(http.StatusOK, activityResponse{ActivityResult: res})
}

func (api *userApi) streak(ctx echo.Context) error {
	id, err := userID(ctx)
	if err != nil {
		return err
	}
	s, err := api.svc.Streak(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *userApi) achievements(ctx echo.Context) error {
	id, err := userID(ctx)
	if err != nil {
		return err
	}
	as, err := api.svc.Achievements(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, as)
}

func (api *userApi) role(ctx echo.Context) error {
	id, err := userID(ctx)
	if err != nil {
		return err
	}
	r, err := api.svc.Role(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *userApi) setRole(ctx echo.Context) error {
	id, err := userID(ctx)
	if err != nil {
		return err
	}
	var data roleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to roleRequest")
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}
	r, err := api.svc.SetRole(ctx.Request().Context(), id, data.Role)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}
