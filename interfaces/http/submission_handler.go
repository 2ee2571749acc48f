package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"music-contest/domain/dto"
	"music-contest/infrastructure/logger"
	"music-contest/interfaces/middleware"
	"music-contest/usecase"
)

type ISubmissionHandler interface {
	Submit(c *gin.Context)
	Delete(c *gin.Context)
}

type SubmissionHandler struct {
	submissionUsecase usecase.ISubmissionUsecase
}

func NewSubmissionHandler(submissionUsecase usecase.ISubmissionUsecase) ISubmissionHandler {
	return &SubmissionHandler{submissionUsecase: submissionUsecase}
}

func (submissionHandler *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}

	claims := middleware.Claims(c)
	res, err := submissionHandler.submissionUsecase.Submit(c.Request.Context(), claims.Subject, claims.UserName, &req)
	if err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (submissionHandler *SubmissionHandler) Delete(c *gin.Context) {
	submissionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, fmt.Sprintf("invalid submission id %q", c.Param("id")))
		return
	}

	claims := middleware.Claims(c)
	res, err := submissionHandler.submissionUsecase.Delete(c.Request.Context(), claims.Subject, claims.IsAdmin, submissionID)
	if err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
