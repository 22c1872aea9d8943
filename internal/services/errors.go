package services

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCode         = errors.New("invalid verification code")
	ErrExpiredCode         = errors.New("verification code has expired")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrInvalidToken        = errors.New("invalid access token")
	ErrOrphanedOAuthLink   = errors.New("oauth account references a missing user")

	ErrCompetitionNotFound = errors.New("competition not found")
	ErrCompetitionEnded    = errors.New("competition has ended")
	ErrOptionNotFound      = errors.New("option not found")
	ErrAlreadyVoted        = errors.New("already voted in this competition")
	ErrForbidden           = errors.New("operation not permitted")
	ErrResultsNotVisible   = errors.New("results are visible after the competition ends")
)
