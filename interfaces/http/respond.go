package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"music-contest/domain/dto"
	"music-contest/domain/model"
)

// statusFor maps each rejection kind to its HTTP status. Anything that is not
// a typed rejection is a storage-level fault.
func statusFor(kind model.RejectionKind) int {
	switch kind {
	case model.RejectInvalidInput:
		return http.StatusBadRequest
	case model.RejectRateLimited:
		return http.StatusTooManyRequests
	case model.RejectContestNotFound, model.RejectSubmissionNotFound:
		return http.StatusNotFound
	case model.RejectNotAuthorized:
		return http.StatusForbidden
	case model.RejectDuplicateContestID, model.RejectDuplicateSubmission,
		model.RejectDuplicateVote, model.RejectContestClosed, model.RejectLimitExceeded:
		return http.StatusConflict
	case model.RejectUnsupportedPlatform, model.RejectPlatformNotAllowed:
		return http.StatusUnprocessableEntity
	case model.RejectMetadataUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondRejection renders a usecase error. Typed rejections keep their kind
// and reason on the wire; anything else becomes an opaque storage failure.
func respondRejection(ctx *gin.Context, err error) {
	var rejection *model.Rejection
	if errors.As(err, &rejection) {
		ctx.JSON(statusFor(rejection.Kind), dto.RejectionResponse{
			Kind:   string(rejection.Kind),
			Reason: rejection.Reason,
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.RejectionResponse{
		Kind:   string(model.RejectStorageFailure),
		Reason: "internal error",
	})
}
