package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

// The UI consumes a {success, error, data} envelope on every endpoint.
type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Success: true,
		Data:    data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Success: false,
			Error:   errx.Message,
		}
	}

	return response{
		Success: false,
		Error:   errorx.Unknown.Message,
	}
}

func statusOf(err error) int {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.BadRequest, errorx.InvalidTransition, errorx.OverlappingRule, errorx.NoMatchingRule:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	if !resp.Success {
		w.WriteHeader(statusOf(getError(ctx)))
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

type errKey struct{}

func withError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errKey{}, err)
}

func getError(ctx context.Context) error {
	err, _ := ctx.Value(errKey{}).(error)
	return err
}

// Error returns the error the handler failed with, if any. It is only set
// once the handler has run, so it is mainly useful inside closers.
func Error(ctx context.Context) error {
	return getError(ctx)
}
