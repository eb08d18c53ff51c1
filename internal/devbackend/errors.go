package devbackend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/gophfinance/internal/common"
)

var (
	errForbidden = errors.New("forbidden")
	errConflict  = errors.New("already exists")
	errInvalid   = errors.New("invalid request")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalid, fmt.Sprintf(format, args...))
}

// httpError maps store errors to echo errors with a JSON message.
func httpError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, common.ErrorInternal.Error()).SetInternal(err)
	}
}
