package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"music-contest/usecase"
)

type IStatsHandler interface {
	ContestStats(c *gin.Context)
}

type StatsHandler struct {
	statsUsecase usecase.IStatsUsecase
}

func NewStatsHandler(statsUsecase usecase.IStatsUsecase) IStatsHandler {
	return &StatsHandler{statsUsecase: statsUsecase}
}

func (statsHandler *StatsHandler) ContestStats(c *gin.Context) {
	res, err := statsHandler.statsUsecase.ContestStats(c.Request.Context(), c.Param("contestId"))
	if err != nil {
		respondRejection(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
