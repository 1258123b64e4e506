package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := router.newRequestContext(r, w)

		resp, err := func() (*Response, error) {
			var err error
			for _, before := range router.befores {
				if ctx, err = before(ctx); err != nil {
					return nil, err
				}
			}

			var req Request
			if err := bindRequest(r, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return nil, err
			}

			for _, after := range router.afters {
				if ctx, err = after(ctx); err != nil {
					return nil, err
				}
			}

			return resp, nil
		}()

		if err != nil {
			ctx = withError(ctx, err)
			writeJSON(ctx, w, newErrorResponse(err))
		} else {
			writeJSON(ctx, w, newResponse(resp))
		}

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func bindRequest(r *http.Request, method string, req any) error {
	if method == http.MethodGet {
		return bindQuery(r, req)
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		// Multipart bodies are read by the handler through
		// xcontext.HTTPRequest.
		return nil
	}

	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	return json.NewDecoder(r.Body).Decode(req)
}

func bindQuery(r *http.Request, req any) error {
	values := map[string]any{}
	for key, value := range r.URL.Query() {
		if len(value) > 0 {
			values[key] = value[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           req,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}
