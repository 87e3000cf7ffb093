/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Game rule violations. All of these are recoverable: the offending
// operation is rejected without mutating session state, and the message
// is relayed to the client that sent the command.
var (
	ErrAlreadyAnswered    = errors.New("question has already been answered")
	ErrAlreadyUsed        = errors.New("tool has already been used this game")
	ErrCatalogUnavailable = errors.New("category catalog is unavailable")
	ErrCategoryLocked     = errors.New("category is locked and must be purchased first")
	ErrChannelConflict    = errors.New("an answer channel is already disabled for this question")
	ErrGameInProgress     = errors.New("a game is already in progress")
	ErrInsufficientFunds  = errors.New("not enough points to unlock this category")
	ErrInvalidSelection   = errors.New("need exactly 6 categories and 3 tools per team")
	ErrNoActiveQuestion   = errors.New("no question is currently active")
	ErrNoAlternative      = errors.New("no substitute question available")
	ErrQuestionOpen       = errors.New("another question is already open")
	ErrToolNotSelected    = errors.New("tool was not selected by this team")
	ErrUnknownCategory    = errors.New("no such category")
	ErrUnknownSlot        = errors.New("no such question slot")
	ErrUnknownTool        = errors.New("no such tool")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon())
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
