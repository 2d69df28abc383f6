package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
	"github.com/seo-pirate/backend/internal/common/httpmetrics"
	"github.com/seo-pirate/backend/internal/common/logger"
	"github.com/seo-pirate/backend/internal/observability/metrics"
)

// HandleError is the single boundary between workflow errors and HTTP.
// Domain errors map to their status and message; everything else becomes
// an opaque 500.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	if err == nil {
		return
	}

	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		status := domainErr.HTTPStatus()

		log.WithFields(ctx, logger.Fields{
			"error_code": domainErr.Code(),
			"category":   string(domainErr.Category()),
			"status":     status,
			"action":     "domain_error",
		}).Debugf("domain error: %s", domainErr.Error())

		metrics.DomainErrorsTotal.WithLabelValues(
			string(domainErr.Category()),
			domainErr.Code(),
			strconv.Itoa(status),
		).Inc()

		metrics.HTTPErrorsTotal.WithLabelValues(
			strconv.Itoa(status),
			httpmetrics.NormalizePath(r.URL.Path),
			r.Method,
		).Inc()

		WriteError(w, status, domainErr.Message())
		return
	}

	logFields := logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
	}
	if traceID != "" {
		logFields["trace_id"] = traceID
	}
	log.WithFields(ctx, logFields).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, "internal server error")
}
