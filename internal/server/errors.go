package server

import "errors"

var (
	ErrRoomExists       = errors.New("room already exists")
	ErrRoomNotFound     = errors.New("room not found")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrRoomFull         = errors.New("room is full")
	ErrUsernameTaken    = errors.New("username already taken in this room")
	ErrNotModerator     = errors.New("only moderator can perform this action")
	ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
	ErrNoWords          = errors.New("no words submitted")
	ErrGameNotFound     = errors.New("game not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrGameNotActive    = errors.New("game not active")
	ErrLetterGuessed    = errors.New("letter already guessed")
)
