package apperror

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
)

// ToHuma converts err into a huma status error. Classified errors keep their
// own message, anything else is reported as a 500 with fallback. The cause
// never reaches the response body.
func ToHuma(err error, fallback string) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return huma.NewError(HTTPStatus(err), appErr.Message)
	}
	return huma.NewError(HTTPStatus(err), fallback)
}
