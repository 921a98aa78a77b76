package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.PUT("", api.update)
	sg.DELETE("", api.destroy)
}

// Handlers

// query lists/searches students, or retrieves one when ?student_id= is given.
func (api *studentApi) query(ctx echo.Context) error {
	if sid := ctx.QueryParam("student_id"); sid != "" {
		stu, err := api.svc.GetByStudentID(ctx.Request().Context(), sid)
		if err != nil {
			return errors.Wrap(err, "getting student")
		}
		return ctx.JSON(http.StatusOK, dataResponse(stu))
	}

	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	students, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "filtering students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, dataResponse(students))
}

// create registers a new student; with ?action=change_password it instead
// rotates an existing student's password.
func (api *studentApi) create(ctx echo.Context) error {
	if ctx.QueryParam("action") == "change_password" {
		return api.changePassword(ctx)
	}

	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	stu, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Student created successfully",
		"data":    stu,
	})
}

func (api *studentApi) changePassword(ctx echo.Context) error {
	var data student.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.ChangePassword(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "changing password")
	}
	return ctx.JSON(http.StatusOK, messageResponse("Password updated successfully"))
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	stu, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Student updated successfully",
		"data":    stu,
	})
}

func (api *studentApi) destroy(ctx echo.Context) error {
	sid := ctx.QueryParam("student_id")
	if sid == "" {
		var data struct {
			StudentID string `json:"student_id"`
		}
		_ = ctx.Bind(&data)
		sid = data.StudentID
	}
	if sid == "" {
		return core.NewValidationError(errors.New("student_id is required"))
	}

	if err := api.svc.Delete(ctx.Request().Context(), sid); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.JSON(http.StatusOK, messageResponse("Student deleted successfully"))
}
