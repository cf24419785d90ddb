package bot

import (
	"fmt"
	"sync"

	"gym-ledger/internal/cycle"
	"gym-ledger/internal/engine"
	"gym-ledger/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of the Bot API the handlers talk to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	API            Sender
	Engine         *engine.Engine
	Cycle          *cycle.Controller
	DefaultAdminID int64
	States         map[int64]*models.UserState
	StatesMutex    sync.RWMutex

	client *tgbotapi.BotAPI
}

// New connects to the Bot API. An empty endpoint means the public Telegram
// endpoint.
func New(token, endpoint string, eng *engine.Engine, cyc *cycle.Controller, defaultAdminID int64) (*Bot, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	zap.L().Info("Authorized on account", zap.String("username", api.Self.UserName))

	b := NewWithSender(api, eng, cyc, defaultAdminID)
	b.client = api
	return b, nil
}

// NewWithSender builds a Bot over any Sender, without polling support.
func NewWithSender(api Sender, eng *engine.Engine, cyc *cycle.Controller, defaultAdminID int64) *Bot {
	return &Bot{
		API:            api,
		Engine:         eng,
		Cycle:          cyc,
		DefaultAdminID: defaultAdminID,
		States:         make(map[int64]*models.UserState),
	}
}

// Updates starts long polling. It returns nil for a Bot built with
// NewWithSender.
func (b *Bot) Updates(timeout int) tgbotapi.UpdatesChannel {
	if b.client == nil {
		return nil
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	return b.client.GetUpdatesChan(u)
}

// StopUpdates ends long polling and closes the updates channel.
func (b *Bot) StopUpdates() {
	if b.client != nil {
		b.client.StopReceivingUpdates()
	}
}

func (b *Bot) SetState(userID int64, state string, data map[string]interface{}) {
	b.StatesMutex.Lock()
	defer b.StatesMutex.Unlock()

	b.States[userID] = &models.UserState{
		UserID:   userID,
		State:    state,
		TempData: data,
	}
}

func (b *Bot) GetState(userID int64) *models.UserState {
	b.StatesMutex.RLock()
	defer b.StatesMutex.RUnlock()

	return b.States[userID]
}

func (b *Bot) ClearState(userID int64) {
	b.StatesMutex.Lock()
	defer b.StatesMutex.Unlock()

	delete(b.States, userID)
}

func (b *Bot) IsDefaultAdmin(userID int64) bool {
	return userID == b.DefaultAdminID
}

func (b *Bot) SendMessage(chatID int64, text string, replyMarkup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}

	_, err := b.API.Send(msg)
	return err
}

// SendPre sends text in a monospace block so report columns line up.
func (b *Bot) SendPre(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, "```\n"+text+"\n```")
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := b.API.Send(msg)
	return err
}

func (b *Bot) EditMessage(chatID int64, messageID int, text string, replyMarkup interface{}) error {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if replyMarkup != nil {
		if markup, ok := replyMarkup.(*tgbotapi.InlineKeyboardMarkup); ok {
			msg.ReplyMarkup = markup
		}
	}

	_, err := b.API.Send(msg)
	return err
}

func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := b.API.Request(callback)
	return err
}

// Keyboard builders
func (b *Bot) MainMenuKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today's sessions", "today"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏋️ Services", "services"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Weekly report", "report"),
		),
	}

	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ New service", "new_service"),
		))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Close the week", "settle"),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// SessionKeyboard offers one registration button per session.
func (b *Bot) SessionKeyboard(sessions []models.Session) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range sessions {
		label := fmt.Sprintf("%s %s %s (%d left)", s.ServiceName, s.Occurrence, s.Time, s.Remaining)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "register:"+s.Code),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "back"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
