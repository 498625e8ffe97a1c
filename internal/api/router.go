package api

import (
	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the HTTP routes onto a fresh gin engine.
func NewRouter(h *BattleHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteCharacters, h.ListCharacters)
		apiRoutes.GET(constants.RouteOpponent, h.GetOpponent)

		apiRoutes.POST(constants.RouteBattles, h.StartBattle)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, h.SubmitAction)
	}
	return router
}
