package middleware

import (
	"errors"
	"fmt"
	"myBizHub/pkg/logger"
	"net/http"
	"strings"

	jsonres "myBizHub/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escaped the handlers (unknown routes,
// bad methods, panics caught by Recover) in the same JSON shape as the
// middleware errors.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}

	if code >= http.StatusInternalServerError {
		logger.WithContext(c.Request().Context()).Errorw("unhandled error",
			"path", c.Path(),
			"error", err,
		)
	}

	body := jsonres.Error(strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_")), message, nil)

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
