package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ghintake/internal/github"
	"github.com/blackwell-systems/ghintake/internal/intake"
)

// imageField is the multipart field carrying the optional upload.
const imageField = "image"

type handler struct {
	svc Submitter
	log *zap.Logger
}

func (h *handler) submit(c echo.Context) error {
	form, err := readForm(c)
	if err != nil {
		return h.internalError(c, err)
	}

	res, err := h.svc.Submit(c.Request().Context(), form)
	if err != nil {
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			h.log.Info("submission rejected",
				zap.String("missing", verr.Detail()),
				zap.String("request_id", requestID(c)))
			return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
		}
		return h.internalError(c, err)
	}
	return c.JSON(http.StatusOK, res.Response)
}

// internalError logs err with any GitHub response detail and hides it
// from the caller.
func (h *handler) internalError(c echo.Context, err error) error {
	fields := []zap.Field{zap.Error(err), zap.String("request_id", requestID(c))}
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields,
			zap.Int("github_status", apiErr.StatusCode),
			zap.String("github_message", apiErr.Message))
	}
	h.log.Error("submission failed", fields...)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
}

// readForm collects the text fields and the optional image. Both multipart
// and urlencoded bodies are accepted; only multipart can carry an image.
func readForm(c echo.Context) (intake.Form, error) {
	form := intake.Form{Fields: make(map[string]string)}

	params, err := c.FormParams()
	if err != nil {
		return form, fmt.Errorf("parsing form: %w", err)
	}
	for name, values := range params {
		if len(values) > 0 {
			form.Fields[name] = values[0]
		}
	}

	fh, err := c.FormFile(imageField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return form, nil
	case err != nil:
		return form, fmt.Errorf("reading %s: %w", imageField, err)
	}

	f, err := fh.Open()
	if err != nil {
		return form, fmt.Errorf("opening %s: %w", imageField, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return form, fmt.Errorf("reading %s: %w", imageField, err)
	}
	form.Image = &intake.Attachment{Filename: fh.Filename, Data: data}
	return form, nil
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
