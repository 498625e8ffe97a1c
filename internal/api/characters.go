package api

import (
	"net/http"

	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListCharacters returns the selectable characters in roster order.
func (h *BattleHandler) ListCharacters(c *gin.Context) {
	chars, err := h.roster.GetCharacters()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCharacters})
		return
	}
	c.JSON(http.StatusOK, chars)
}

// GetOpponent returns the stat block every battle is fought against.
func (h *BattleHandler) GetOpponent(c *gin.Context) {
	c.JSON(http.StatusOK, h.battles.Opponent())
}
