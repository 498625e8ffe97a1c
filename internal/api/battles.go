package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/ericogr/breath-arena/internal/game"
	"github.com/ericogr/breath-arena/internal/logging"
	"github.com/ericogr/breath-arena/internal/service"

	"github.com/gin-gonic/gin"
)

type StartBattleRequest struct {
	CharacterID string `json:"character_id"`
	// Seed fixes the damage rolls so a battle can be replayed.
	Seed *int64 `json:"seed"`
}

type ActionRequest struct {
	ActionType string `json:"action_type"`
	Technique  string `json:"technique"`
}

// StartBattle creates a battle for the chosen character.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	var req StartBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if strings.TrimSpace(req.CharacterID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCharacterRequired})
		return
	}

	id, snap, err := h.battles.StartBattle(req.CharacterID, req.Seed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCharacterNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCharacterNotFound})
		case errors.Is(err, service.ErrRosterUnavailable):
			logging.Error("roster lookup failed", err, logging.Fields{constants.LogFieldCharacterID: req.CharacterID})
			c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrRosterUnavailable})
		default:
			logging.Error("failed to start battle", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStartBattle})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{constants.JSONKeyBattleID: id, constants.JSONKeyBattle: snap})
}

// GetBattle returns the current snapshot of a battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	snap, err := h.battles.GetBattle(c.Param(constants.ParamBattleID))
	if err != nil {
		if errors.Is(err, service.ErrBattleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SubmitAction hands the player's action to the battle. An action the
// battle cannot take right now is answered with accepted=false and the
// unchanged snapshot.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	action, err := game.ParseAction(req.ActionType, req.Technique)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAction})
		return
	}

	battleID := c.Param(constants.ParamBattleID)
	snap, accepted, err := h.battles.SubmitAction(battleID, action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		default:
			logging.Error("failed to submit action", err, logging.Fields{constants.LogFieldBattleID: battleID})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSubmitAction})
		}
		return
	}

	resp := gin.H{constants.JSONKeyAccepted: accepted, constants.JSONKeyBattle: snap}
	if !accepted {
		resp[constants.JSONKeyMessage] = constants.MsgActionIgnored
	}
	c.JSON(http.StatusOK, resp)
}
