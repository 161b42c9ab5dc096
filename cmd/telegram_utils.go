package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/viper"

	"github.com/suderio/jdice/internal/session"
	"github.com/suderio/jdice/internal/telegram"
)

// maybeStartBot starts the Telegram worker in the background when a token
// and a chat id are configured. The returned stop func ends the worker and
// saves the last update id; it is a no-op when no bot was started.
func maybeStartBot(app *session.Session) (stop func()) {
	token := viper.GetString("telegram_token")
	rawChatID := viper.GetString("telegram_chat_id")
	if token == "" || rawChatID == "" {
		return func() {}
	}

	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		fmt.Printf("[Telegram Bot] Ignoring invalid telegram_chat_id %q\n", rawChatID)
		return func() {}
	}

	stop = startBot(telegram.NewClient(token), chatID, app)
	fmt.Printf("[Telegram Bot] Active for chat %d\n", chatID)
	return stop
}

// startBot runs a bot on its own goroutine. Config is only read here and in
// the returned stop func, both on the caller's goroutine.
func startBot(client *telegram.Client, chatID int64, app *session.Session) func() {
	bot := telegram.NewBot(client, chatID, viper.GetInt("tg_last_update_id"), &botAdapter{app})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		bot.Start(ctx)
	}()

	return func() {
		cancel()
		<-done
		viper.Set("tg_last_update_id", bot.LastUpdateID())
		_ = viper.WriteConfig() // no config file yet is fine
	}
}

// botAdapter bridges session.Session to the telegram.Executor interface.
type botAdapter struct {
	session *session.Session
}

func (a *botAdapter) Execute(input string) ([]string, error) {
	events, err := a.session.Execute(input)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, evt := range events {
		if msg := evt.Message(); msg != "" {
			lines = append(lines, msg)
		}
	}
	return lines, nil
}
