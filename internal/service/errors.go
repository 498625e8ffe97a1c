package service

import "errors"

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrBattleNotFound    = errors.New("battle not found")
	ErrRosterUnavailable = errors.New("character roster unavailable")
)
