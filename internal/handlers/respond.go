package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kawasemi/project-collab-api/internal/errors"
	"github.com/kawasemi/project-collab-api/internal/logging"
	"github.com/kawasemi/project-collab-api/internal/services"
)

// respondServiceError maps a service error to the HTTP response. Expected
// business violations keep their service code in the payload; anything else
// is a 500 and gets logged, not leaked.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch svcErr.Kind {
		case services.KindUnauthenticated:
			status = http.StatusUnauthorized
		case services.KindNotFound:
			status = http.StatusNotFound
		case services.KindAccessDenied:
			status = http.StatusForbidden
		case services.KindConflict:
			status = http.StatusBadRequest
		}
		apierrors.RespondWithError(c, status, apierrors.NewAPIError(svcErr.Code, svcErr.Message))
		return
	}

	logging.Logger.WithError(err).Error("unexpected service failure")
	apierrors.InternalError(c, "")
}
