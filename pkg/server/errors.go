package server

import (
	"errors"
	"net/http"

	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/server/middleware"
)

// errorResponse maps a pipeline error to an HTTP status and JSON body.
// Expression errors are the client's fault; anything else is internal and
// its message is not exposed.
func errorResponse(err error) (int, middleware.ErrorResponse) {
	var list *exprErrors.ErrorList
	if errors.As(err, &list) && list.HasErrors() {
		resp := middleware.ErrorResponse{Error: errorBody(list.Errors[0])}
		for _, e := range list.Errors {
			resp.Errors = append(resp.Errors, errorBody(e))
		}
		return http.StatusBadRequest, resp
	}

	var exprErr *exprErrors.Error
	if errors.As(err, &exprErr) {
		return http.StatusBadRequest, middleware.ErrorResponse{Error: errorBody(exprErr)}
	}

	return http.StatusInternalServerError, middleware.ErrorResponse{Error: middleware.ErrorBody{
		Type:    "internal",
		Code:    "Internal",
		Message: "internal server error",
	}}
}

func errorBody(e *exprErrors.Error) middleware.ErrorBody {
	body := middleware.ErrorBody{
		Type:       string(e.Type),
		Code:       string(e.Code),
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	}
	if e.Position.IsValid() {
		pos := int(e.Position)
		body.Position = &pos
	}
	return body
}

func requestError(code, message string) middleware.ErrorResponse {
	return middleware.ErrorResponse{Error: middleware.ErrorBody{
		Type:    "request",
		Code:    code,
		Message: message,
	}}
}
