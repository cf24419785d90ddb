package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym-ledger/internal/bot"
	"gym-ledger/internal/errs"
	"gym-ledger/internal/models"
	"gym-ledger/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	stateAwaitingMember  = "awaiting_member"
	stateAwaitingService = "awaiting_service"
)

const reportTimeout = 30 * time.Second

const usage = `Commands:
/today - sessions offered today
/services - services currently offered
/register <member no> <session no> [comment]
/confirm <member no> <session no> [comment]
/roster <professional no> <session no>
/access <member no>
/report - write and show the weekly sessions report`

// HandleCommand dispatches a slash command.
func HandleCommand(b *bot.Bot, message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())

	switch message.Command() {
	case "start", "help":
		HandleStart(b, message)
	case "today":
		handleToday(b, message.Chat.ID)
	case "services":
		handleServices(b, message.Chat.ID)
	case "register":
		handleRegister(b, message, args)
	case "confirm":
		handleConfirm(b, message, args)
	case "roster":
		handleRoster(b, message, args)
	case "access":
		handleAccess(b, message, args)
	case "report":
		handleReport(b, message.Chat.ID)
	case "member", "pro", "service", "modify", "suspend", "reinstate", "remove", "settle":
		if !b.IsDefaultAdmin(message.From.ID) {
			b.SendMessage(message.Chat.ID, "You do not have admin access.", nil)
			return
		}
		handleAdminCommand(b, message, args)
	default:
		b.SendMessage(message.Chat.ID, "Unknown command. Use /start.", nil)
	}
}

func HandleStart(b *bot.Bot, message *tgbotapi.Message) {
	isAdmin := b.IsDefaultAdmin(message.From.ID)

	text := fmt.Sprintf("Hello %s! Welcome to the #GYM desk.\n\n%s", message.From.FirstName, usage)
	if isAdmin {
		text += "\n\n" + adminUsage
	}
	keyboard := b.MainMenuKeyboard(isAdmin)

	b.SendMessage(message.Chat.ID, text, keyboard)
}

// HandleMessage continues a multi-step flow started by a command or button.
func HandleMessage(b *bot.Bot, message *tgbotapi.Message) {
	state := b.GetState(message.From.ID)
	if state == nil {
		return
	}

	switch state.State {
	case stateAwaitingMember:
		handleMemberInput(b, message, state)
	case stateAwaitingService:
		handleServiceInput(b, message)
	default:
		b.ClearState(message.From.ID)
	}
}

func HandleCallbackQuery(b *bot.Bot, callback *tgbotapi.CallbackQuery) {
	parts := strings.Split(callback.Data, ":")
	chatID := callback.Message.Chat.ID

	switch parts[0] {
	case "today":
		handleToday(b, chatID)
	case "services":
		handleServices(b, chatID)
	case "report":
		handleReport(b, chatID)
	case "register":
		if len(parts) < 2 {
			return
		}
		b.SetState(callback.From.ID, stateAwaitingMember, map[string]interface{}{
			"session_no": parts[1],
		})
		b.EditMessage(chatID, callback.Message.MessageID,
			fmt.Sprintf("Session %s selected. Send the member number, optionally followed by a comment:", parts[1]), nil)
	case "back":
		b.ClearState(callback.From.ID)
		keyboard := b.MainMenuKeyboard(b.IsDefaultAdmin(callback.From.ID))
		b.EditMessage(chatID, callback.Message.MessageID, "Main menu", &keyboard)
	case "new_service", "settle":
		if !b.IsDefaultAdmin(callback.From.ID) {
			b.AnswerCallbackQuery(callback.ID, "You do not have admin access.")
			return
		}
		handleAdminCallback(b, callback, parts[0])
		return
	}

	b.AnswerCallbackQuery(callback.ID, "")
}

func handleToday(b *bot.Bot, chatID int64) {
	list := b.Engine.SessionsToday()
	if len(list) == 0 {
		b.SendMessage(chatID, "No sessions today.", nil)
		return
	}
	b.SendMessage(chatID, formatSessions("Sessions today", list), b.SessionKeyboard(list))
}

func handleServices(b *bot.Bot, chatID int64) {
	list := b.Engine.AvailableServices()
	if len(list) == 0 {
		b.SendMessage(chatID, "No services are offered.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("Services\n")
	for _, s := range list {
		days := make([]string, 0, len(s.Occurrences))
		for _, d := range s.Occurrences {
			days = append(days, d.String())
		}
		fmt.Fprintf(&sb, "\n%s %s\n  %s at %s, %s to %s\n  capacity %d, fee $%s, professional %s\n",
			s.Code, s.Name, strings.Join(days, ","), s.Time,
			s.StartDate.Format("02-01-2006"), s.EndDate.Format("02-01-2006"),
			s.MaxCapacity, models.ToMajor(s.Fee).StringFixed(2), s.ProviderNo)
	}
	b.SendMessage(chatID, sb.String(), nil)
}

func handleRegister(b *bot.Bot, message *tgbotapi.Message, args []string) {
	if len(args) < 2 {
		b.SendMessage(message.Chat.ID, "Usage: /register <member no> <session no> [comment]", nil)
		return
	}
	register(b, message.Chat.ID, args[0], args[1], strings.Join(args[2:], " "))
}

func register(b *bot.Bot, chatID int64, memberNo, sessionNo, comment string) {
	r, err := b.Engine.Register(memberNo, sessionNo, comment)
	if err != nil {
		zap.L().Info("registration refused",
			zap.Int64(logger.FieldChatID, chatID),
			zap.String(logger.FieldMemberNo, memberNo),
			zap.String(logger.FieldSessionNo, sessionNo),
			zap.Error(err))
		b.SendMessage(chatID, "Registration failed: "+describe(err), nil)
		return
	}
	b.SendMessage(chatID, fmt.Sprintf("Member %s registered to session %s on %s.",
		r.MemberNo, r.SessionCode, r.SessionDate.Format("02-01-2006")), nil)
}

func handleMemberInput(b *bot.Bot, message *tgbotapi.Message, state *models.UserState) {
	fields := strings.Fields(message.Text)
	if len(fields) == 0 {
		b.SendMessage(message.Chat.ID, "Please send a member number:", nil)
		return
	}
	sessionNo, _ := state.TempData["session_no"].(string)
	b.ClearState(message.From.ID)
	register(b, message.Chat.ID, fields[0], sessionNo, strings.Join(fields[1:], " "))
}

func handleConfirm(b *bot.Bot, message *tgbotapi.Message, args []string) {
	if len(args) < 2 {
		b.SendMessage(message.Chat.ID, "Usage: /confirm <member no> <session no> [comment]", nil)
		return
	}
	ok, err := b.Engine.Confirm(args[0], args[1], strings.Join(args[2:], " "))
	switch {
	case err != nil:
		b.SendMessage(message.Chat.ID, "Confirmation failed: "+describe(err), nil)
	case !ok:
		b.SendMessage(message.Chat.ID, "Access denied: no registration for this session.", nil)
	default:
		b.SendMessage(message.Chat.ID, "Access granted.", nil)
	}
}

func handleRoster(b *bot.Bot, message *tgbotapi.Message, args []string) {
	if len(args) != 2 {
		b.SendMessage(message.Chat.ID, "Usage: /roster <professional no> <session no>", nil)
		return
	}
	list, err := b.Engine.Roster(args[0], args[1])
	if err != nil {
		b.SendMessage(message.Chat.ID, "Roster unavailable: "+describe(err), nil)
		return
	}
	if len(list) == 0 {
		b.SendMessage(message.Chat.ID, "Nobody is registered to this session.", nil)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Registrations for %s\n", args[1])
	for _, r := range list {
		name := r.MemberNo
		if p, ok := b.Engine.Person(models.KindMember, r.MemberNo); ok {
			name = p.Name
		}
		fmt.Fprintf(&sb, "\n%s %s (%s)", r.MemberNo, name, r.SessionDate.Format("02-01-2006"))
		if r.Comment != "" {
			fmt.Fprintf(&sb, " - %s", r.Comment)
		}
	}
	b.SendMessage(message.Chat.ID, sb.String(), nil)
}

func handleAccess(b *bot.Bot, message *tgbotapi.Message, args []string) {
	if len(args) != 1 {
		b.SendMessage(message.Chat.ID, "Usage: /access <member no>", nil)
		return
	}
	b.SendMessage(message.Chat.ID, b.Engine.Access(args[0]).Message(), nil)
}

// handleReport writes the report of the week so far to the settlement sink
// and sends its text.
func handleReport(b *bot.Bot, chatID int64) {
	if b.Cycle == nil {
		b.SendPre(chatID, b.Engine.WeeklyReport().String())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	closing, err := b.Cycle.WriteReport(ctx)
	if err != nil {
		zap.L().Error("weekly report not written",
			zap.Int64(logger.FieldChatID, chatID),
			zap.String(logger.FieldRunID, closing.RunID),
			zap.Error(err))
		b.SendMessage(chatID, "The report file could not be written: "+err.Error(), nil)
	}
	b.SendPre(chatID, closing.Report.String())
}

func formatSessions(title string, list []models.Session) string {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	for _, s := range list {
		fmt.Fprintf(&sb, "\n%s %s %s %s, %d/%d seats left",
			s.Code, s.ServiceName, s.Occurrence, s.Time, s.Remaining, s.MaxCapacity)
	}
	return sb.String()
}

// describe turns an engine error into the reply shown at the desk.
func describe(err error) string {
	if field, ok := errs.Field(err); ok {
		return "invalid format for attribute " + field
	}
	var se *errs.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("%s is %s", se.ID, strings.ToLower(se.Status))
	}
	return err.Error()
}
