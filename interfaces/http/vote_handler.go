package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"music-contest/interfaces/middleware"
	"music-contest/usecase"
)

type IVoteHandler interface {
	Add(c *gin.Context)
	Remove(c *gin.Context)
}

type VoteHandler struct {
	voteUsecase usecase.IVoteUsecase
}

func NewVoteHandler(voteUsecase usecase.IVoteUsecase) IVoteHandler {
	return &VoteHandler{voteUsecase: voteUsecase}
}

func (voteHandler *VoteHandler) Add(c *gin.Context) {
	submissionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, fmt.Sprintf("invalid submission id %q", c.Param("id")))
		return
	}

	claims := middleware.Claims(c)
	if err := voteHandler.voteUsecase.Add(c.Request.Context(), claims.Subject, submissionID); err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (voteHandler *VoteHandler) Remove(c *gin.Context) {
	submissionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, fmt.Sprintf("invalid submission id %q", c.Param("id")))
		return
	}

	claims := middleware.Claims(c)
	if err := voteHandler.voteUsecase.Remove(c.Request.Context(), claims.Subject, submissionID); err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
