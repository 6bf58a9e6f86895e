package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"obzvonbot/core/logger"
	coretelegram "obzvonbot/core/telegram"
	tghelpers "obzvonbot/core/telegram/helpers"
	"obzvonbot/core/telegram/keyboard"
)

var errChannelUnbound = errors.New("bot: channel not bound to a running bot")

// TeleChannel adapts a running telebot instance to the engine's Channel.
// The bot handle is bound late, from the transport's OnStart hook, because
// routes must be declared before the bot exists.
type TeleChannel struct {
	bot   atomic.Pointer[tele.Bot]
	menus Menus
}

// NewTeleChannel builds the adapter with the given menu renderer.
func NewTeleChannel(menus Menus) *TeleChannel {
	return &TeleChannel{menus: menus}
}

// Bind attaches the live bot handle. Safe to call once the bot is built.
func (t *TeleChannel) Bind(b *tele.Bot) {
	t.bot.Store(b)
}

// Send delivers text with the rendered keyboard and returns the message id.
func (t *TeleChannel) Send(ctx context.Context, userID int64, text string, menu Menu) (int, error) {
	b := t.bot.Load()
	if b == nil {
		return 0, errChannelUnbound
	}

	var markup *tele.ReplyMarkup
	if rows := t.menus.Rows(menu); rows != nil {
		markup = keyboard.ReplyButtons(rows...)
	} else {
		markup = keyboard.RemoveKeyboard()
	}

	msg, err := b.Send(&tele.User{ID: userID}, text, markup)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// Delete removes one message from the user's chat.
func (t *TeleChannel) Delete(ctx context.Context, userID int64, messageID int) error {
	b := t.bot.Load()
	if b == nil {
		return errChannelUnbound
	}
	return b.Delete(tele.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    userID,
	})
}

// Routes binds the engine to transport endpoints: the /start command and
// all other text messages.
func Routes(e *Engine) []coretelegram.Route {
	return []coretelegram.Route{
		{Endpoint: "/start", Handler: teleHandler("start", e.HandleStart)},
		{Endpoint: tele.OnText, Handler: teleHandler("text", e.Handle)},
	}
}

// teleHandler wraps an engine entry point with incoming-message extraction
// and a per-turn summary log line.
func teleHandler(name string, fn func(ctx context.Context, in Incoming) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.WithHandler(c, name)
		in := incomingFrom(c)

		start := time.Now()
		err := fn(ctx, in)
		status := "ok"
		attrs := []slog.Attr{
			slog.String("event", "handled"),
			slog.String("handler", name),
			slog.Int64("user_id", in.UserID),
			slog.Duration("duration", logger.Took(start)),
		}
		if err != nil {
			status = "error"
			attrs = append(attrs, slog.String("err", err.Error()))
		}
		attrs = append(attrs, slog.String("status", status))
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		logger.Bot.LogAttrs(ctx, level, "update handled", attrs...)
		return err
	}
}

func incomingFrom(c tele.Context) Incoming {
	in := Incoming{Text: c.Text()}
	if msg := c.Message(); msg != nil {
		in.MessageID = msg.ID
	}
	if sender := c.Sender(); sender != nil {
		in.UserID = sender.ID
		in.Username = sender.Username
		in.FullName = senderFullName(sender)
	}
	return in
}

func senderFullName(u *tele.User) string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
