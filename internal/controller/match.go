package controller

import (
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MatchCommand срабатывает на "/name", "/name@bot" и "/name аргументы"
func MatchCommand(name string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}

		fields := strings.Fields(update.Message.Text)
		if len(fields) == 0 {
			return false
		}

		cmd, _, _ := strings.Cut(fields[0], "@")
		return cmd == "/"+name
	}
}
