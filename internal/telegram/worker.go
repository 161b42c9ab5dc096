package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Commands the bot forwards to the session. Anything else is ignored.
var forwarded = map[string]bool{
	"roll":    true,
	"preset":  true,
	"presets": true,
	"total":   true,
	"clear":   true,
	"help":    true,
}

// Executor defines the interface for running session commands.
type Executor interface {
	Execute(input string) ([]string, error)
}

// Bot relays chat commands to a jdice session
type Bot struct {
	client     *Client
	executor   Executor
	chatID     int64
	retryDelay time.Duration

	mu           sync.Mutex
	lastUpdateID int
}

// NewBot initializes a bot listening on a single chat. Updates up to and
// including lastUpdateID are skipped.
func NewBot(client *Client, chatID int64, lastUpdateID int, exec Executor) *Bot {
	return &Bot{
		client:       client,
		executor:     exec,
		chatID:       chatID,
		lastUpdateID: lastUpdateID,
		retryDelay:   5 * time.Second,
	}
}

// LastUpdateID is the id of the newest update the bot has seen. Callers
// persist it to resume polling without replaying old commands.
func (b *Bot) LastUpdateID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUpdateID
}

// Start launches the long-polling loop and returns when ctx is done
func (b *Bot) Start(ctx context.Context) {
	log.Printf("Telegram bot started for chat %d", b.chatID)
	for {
		if ctx.Err() != nil {
			return
		}
		updates, err := b.client.GetUpdates(ctx, b.LastUpdateID()+1, 25)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error fetching updates: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, update := range updates {
			b.mu.Lock()
			if update.UpdateID > b.lastUpdateID {
				b.lastUpdateID = update.UpdateID
			}
			b.mu.Unlock()
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

// translate turns "/roll@jdice_bot 2d6" into "roll 2d6". ok is false for
// text the bot must not act on.
func translate(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	parts := strings.Fields(strings.TrimPrefix(text, "/"))
	if len(parts) == 0 {
		return "", false
	}
	name, _, _ := strings.Cut(parts[0], "@")
	name = strings.ToLower(name)
	if !forwarded[name] {
		return "", false
	}
	return strings.TrimSpace(name + " " + strings.Join(parts[1:], " ")), true
}

func (b *Bot) handleMessage(ctx context.Context, msg *Message) {
	if msg.Chat.ID != b.chatID {
		return
	}
	input, ok := translate(msg.Text)
	if !ok {
		return
	}

	who := msg.From.DisplayName()
	lines, err := b.executor.Execute(input)
	if err != nil {
		b.reply(ctx, fmt.Sprintf("%s: %v", who, err))
		return
	}
	if len(lines) == 0 {
		return
	}
	b.reply(ctx, fmt.Sprintf("%s\n%s", who, strings.Join(lines, "\n")))
}

func (b *Bot) reply(ctx context.Context, text string) {
	if err := b.client.SendMessage(ctx, b.chatID, text); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
