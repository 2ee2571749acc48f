package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"music-contest/domain/dto"
	"music-contest/infrastructure/filecsv"
	"music-contest/infrastructure/logger"
	"music-contest/interfaces/middleware"
	"music-contest/usecase"
)

const (
	ErrorUnmarshal = "Error while unmarshal"
)

type IContestHandler interface {
	Create(c *gin.Context)
	Edit(c *gin.Context)
	Delete(c *gin.Context)
	Get(c *gin.Context)
	Export(c *gin.Context)
}

type ContestHandler struct {
	contestUsecase usecase.IContestUsecase
}

func NewContestHandler(contestUsecase usecase.IContestUsecase) IContestHandler {
	return &ContestHandler{contestUsecase: contestUsecase}
}

func (contestHandler *ContestHandler) Create(c *gin.Context) {
	var req dto.CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}

	claims := middleware.Claims(c)
	contest, err := contestHandler.contestUsecase.Create(c.Request.Context(), claims.Subject, &req)
	if err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusCreated, contest)
}

func (contestHandler *ContestHandler) Edit(c *gin.Context) {
	var req dto.EditContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}

	claims := middleware.Claims(c)
	contest, err := contestHandler.contestUsecase.Edit(c.Request.Context(), claims.Subject, c.Param("contestId"), &req)
	if err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusOK, contest)
}

func (contestHandler *ContestHandler) Delete(c *gin.Context) {
	claims := middleware.Claims(c)
	res, err := contestHandler.contestUsecase.Delete(c.Request.Context(), claims.Subject, c.Param("contestId"))
	if err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (contestHandler *ContestHandler) Get(c *gin.Context) {
	contest, err := contestHandler.contestUsecase.Get(c.Request.Context(), c.Param("contestId"))
	if err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusOK, contest)
}

// Export streams the contest's submissions as a CSV attachment.
func (contestHandler *ContestHandler) Export(c *gin.Context) {
	contestID := c.Param("contestId")
	subs, err := contestHandler.contestUsecase.Export(c.Request.Context(), contestID)
	if err != nil {
		respondRejection(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-submissions.csv"`, contestID))
	if err := filecsv.WriteSubmissions(c.Writer, subs); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while writing export")
	}
}
