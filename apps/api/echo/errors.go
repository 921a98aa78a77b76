package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that converts
// every error into the uniform {success:false, message} envelope.
// signalShutdown is called in order to gracefully shutdown the Server whenever
// a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string
		var fields map[string]string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if msg, ok := origErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = "invalid input"
			fields = make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fields[vErr.Field()] = vErr.Translate(core.Translator)
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
			if origErr.Fields != nil {
				fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fields[fErr.Field] = fErr.Error
				}
				if message == "" {
					message = "invalid input"
				}
			}
		default:
			code, message = statusForDomainError(errors.Cause(err))
			if code == http.StatusInternalServerError { // any other error is a server error
				message = http.StatusText(code)
				logger.Error(message, errors.Wrap(err, message))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		body := echo.Map{"success": false, "message": message}
		if fields != nil {
			body["errors"] = fields
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// statusForDomainError maps domain sentinel errors to their HTTP status.
func statusForDomainError(err error) (int, string) {
	switch err {
	case student.ErrNotFound, week.ErrNotFound, week.ErrCommentNotFound, user.ErrNotFound:
		return http.StatusNotFound, err.Error()
	case student.ErrStudentIDExists, student.ErrEmailExists:
		return http.StatusConflict, err.Error()
	case student.ErrWrongPassword, user.ErrBadCredentials:
		return http.StatusUnauthorized, err.Error()
	}
	return http.StatusInternalServerError, ""
}
