package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/week"
)

const (
	resourceWeeks    = "weeks"
	resourceComments = "comments"
)

var errInvalidResource = core.NewValidationError(errors.New("invalid resource; use 'weeks' or 'comments'"))

// weeklyApi serves the weekly course breakdown: a single endpoint
// dispatching on the `resource` selector (weeks or comments).
type weeklyApi struct {
	svc *week.Service
}

func registerWeeklyAPI(g *echo.Group, svc *week.Service) {
	api := weeklyApi{svc: svc}

	wg := g.Group("/weekly")
	wg.GET("", api.get)
	wg.POST("", api.post)
	wg.PUT("", api.put)
	wg.DELETE("", api.destroy)
}

func resource(ctx echo.Context) string {
	if r := ctx.QueryParam("resource"); r != "" {
		return r
	}
	return resourceWeeks
}

func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, core.NewValidationError(errors.Errorf("%s parameter is missing", name))
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewValidationError(errors.Errorf("%s must be an integer", name))
	}
	return id, nil
}

// Handlers

func (api *weeklyApi) get(ctx echo.Context) error {
	switch resource(ctx) {
	case resourceWeeks:
		if ctx.QueryParam("id") != "" {
			return api.retrieveWeek(ctx)
		}
		return api.queryWeeks(ctx)
	case resourceComments:
		return api.queryComments(ctx)
	}
	return errInvalidResource
}

func (api *weeklyApi) post(ctx echo.Context) error {
	switch resource(ctx) {
	case resourceWeeks:
		return api.createWeek(ctx)
	case resourceComments:
		return api.createComment(ctx)
	}
	return errInvalidResource
}

func (api *weeklyApi) put(ctx echo.Context) error {
	switch resource(ctx) {
	case resourceWeeks:
		return api.updateWeek(ctx)
	case resourceComments:
		return echo.NewHTTPError(http.StatusMethodNotAllowed)
	}
	return errInvalidResource
}

func (api *weeklyApi) destroy(ctx echo.Context) error {
	switch resource(ctx) {
	case resourceWeeks:
		return api.destroyWeek(ctx)
	case resourceComments:
		return api.destroyComment(ctx)
	}
	return errInvalidResource
}

// Weeks

func (api *weeklyApi) queryWeeks(ctx echo.Context) error {
	filter := new(week.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	weeks, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "filtering weeks")
	}
	if weeks == nil {
		weeks = []week.Week{}
	}
	return ctx.JSON(http.StatusOK, dataResponse(weeks))
}

func (api *weeklyApi) retrieveWeek(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		return err
	}
	wk, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting week")
	}
	return ctx.JSON(http.StatusOK, dataResponse(wk))
}

func (api *weeklyApi) createWeek(ctx echo.Context) error {
	var data week.NewWeek
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewWeek")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	wk, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating week")
	}
	return ctx.JSON(http.StatusCreated, dataResponse(wk))
}

func (api *weeklyApi) updateWeek(ctx echo.Context) error {
	var data week.UpdateWeek
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateWeek")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	wk, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating week")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Week updated",
		"data":    wk,
	})
}

func (api *weeklyApi) destroyWeek(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		var data struct {
			ID int `json:"id"`
		}
		if bindErr := ctx.Bind(&data); bindErr != nil || data.ID == 0 {
			return err
		}
		id = data.ID
	}

	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting week")
	}
	return ctx.JSON(http.StatusOK, messageResponse("Week and its comments deleted"))
}

// Comments

func (api *weeklyApi) queryComments(ctx echo.Context) error {
	weekID, err := intQueryParam(ctx, "week_id")
	if err != nil {
		return err
	}

	comments, err := api.svc.QueryComments(ctx.Request().Context(), weekID)
	if err != nil {
		return errors.Wrap(err, "querying comments")
	}
	if comments == nil {
		comments = []week.Comment{}
	}
	return ctx.JSON(http.StatusOK, dataResponse(comments))
}

func (api *weeklyApi) createComment(ctx echo.Context) error {
	var data week.NewComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cmt, err := api.svc.CreateComment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating comment")
	}
	return ctx.JSON(http.StatusCreated, dataResponse(cmt))
}

func (api *weeklyApi) destroyComment(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		return err
	}

	if err = api.svc.DeleteComment(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	return ctx.JSON(http.StatusOK, messageResponse("Comment deleted"))
}
