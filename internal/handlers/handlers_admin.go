package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gym-ledger/internal/bot"
	"gym-ledger/internal/models"
	"gym-ledger/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const adminUsage = `Admin commands:
/member <name> - add a member
/pro <name> - add a professional
/service <name> <start> <end> <days> <time> <capacity> <fee> <professional no> [comment]
/modify <service no> name|start|end|days|time|capacity|fee|comment <value>
/suspend member|pro <no>
/reinstate member|pro <no>
/remove member|pro|service <no>
/settle - close the week now`

const serviceFormat = "Send the service as:\n<name> <start yyyy-mm-dd> <end yyyy-mm-dd> <days MON,FRI> <time hh:mm> <capacity> <fee 25.00> <professional no> [comment]"

const settleTimeout = 2 * time.Minute

func handleAdminCommand(b *bot.Bot, message *tgbotapi.Message, args []string) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "member", "pro":
		kind := models.KindMember
		if message.Command() == "pro" {
			kind = models.KindProfessional
		}
		handleNewPerson(b, chatID, kind, strings.Join(args, " "))
	case "service":
		if len(args) == 0 {
			b.SetState(message.From.ID, stateAwaitingService, map[string]interface{}{})
			b.SendMessage(chatID, serviceFormat, nil)
			return
		}
		createService(b, chatID, args)
	case "modify":
		handleModify(b, chatID, args)
	case "suspend", "reinstate":
		status := models.StatusSuspended
		if message.Command() == "reinstate" {
			status = models.StatusValid
		}
		handleStatus(b, chatID, args, status)
	case "remove":
		handleRemove(b, chatID, args)
	case "settle":
		handleSettle(b, chatID)
	}
}

func handleAdminCallback(b *bot.Bot, callback *tgbotapi.CallbackQuery, action string) {
	chatID := callback.Message.Chat.ID

	switch action {
	case "new_service":
		b.SetState(callback.From.ID, stateAwaitingService, map[string]interface{}{})
		b.EditMessage(chatID, callback.Message.MessageID, serviceFormat, nil)
	case "settle":
		handleSettle(b, chatID)
	}
	b.AnswerCallbackQuery(callback.ID, "")
}

func handleNewPerson(b *bot.Bot, chatID int64, kind models.PersonKind, name string) {
	create := b.Engine.CreateMember
	if kind == models.KindProfessional {
		create = b.Engine.CreateProfessional
	}
	p, err := create(name)
	if err != nil {
		b.SendMessage(chatID, fmt.Sprintf("Could not add %s: %s", kind, describe(err)), nil)
		return
	}
	label := "Member"
	if kind == models.KindProfessional {
		label = "Professional"
	}
	b.SendMessage(chatID, fmt.Sprintf("%s %s added with number %s.", label, p.Name, p.Code), nil)
}

func handleServiceInput(b *bot.Bot, message *tgbotapi.Message) {
	b.ClearState(message.From.ID)
	createService(b, message.Chat.ID, strings.Fields(message.Text))
}

func createService(b *bot.Bot, chatID int64, args []string) {
	s, err := parseService(args)
	if err != nil {
		b.SendMessage(chatID, err.Error()+"\n\n"+serviceFormat, nil)
		return
	}
	created, err := b.Engine.CreateService(s)
	if err != nil {
		b.SendMessage(chatID, "Service not created: "+describe(err), nil)
		return
	}
	b.SendMessage(chatID, fmt.Sprintf("Service %s created with number %s.", created.Name, created.Code), nil)
}

// parseService reads the positional service fields of /service. It checks
// only that each field parses; the engine validates the values.
func parseService(args []string) (models.Service, error) {
	if len(args) < 8 {
		return models.Service{}, fmt.Errorf("expected at least 8 fields, got %d", len(args))
	}

	start, err := time.Parse("2006-01-02", args[1])
	if err != nil {
		return models.Service{}, fmt.Errorf("invalid start date %q", args[1])
	}
	end, err := time.Parse("2006-01-02", args[2])
	if err != nil {
		return models.Service{}, fmt.Errorf("invalid end date %q", args[2])
	}
	days, err := models.ParseDays(args[3])
	if err != nil {
		return models.Service{}, err
	}
	at, err := models.ParseTimeOfDay(args[4])
	if err != nil {
		return models.Service{}, err
	}
	capacity, err := strconv.Atoi(args[5])
	if err != nil {
		return models.Service{}, fmt.Errorf("invalid capacity %q", args[5])
	}
	fee, err := parseFee(args[6])
	if err != nil {
		return models.Service{}, err
	}

	return models.Service{
		Name:        args[0],
		StartDate:   start,
		EndDate:     end,
		Occurrences: days,
		Time:        at,
		MaxCapacity: capacity,
		Fee:         fee,
		ProviderNo:  args[7],
		Comment:     strings.Join(args[8:], " "),
	}, nil
}

// parseFee converts a major-unit amount such as "25.00" into cents.
func parseFee(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid fee %q", s)
	}
	cents := d.Mul(decimal.NewFromInt(models.CentsInDollar))
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("fee %q has more than two decimals", s)
	}
	return cents.IntPart(), nil
}

const modifyUsage = "Usage: /modify <service no> name|start|end|days|time|capacity|fee|comment <value>"

func handleModify(b *bot.Bot, chatID int64, args []string) {
	if len(args) < 2 {
		b.SendMessage(chatID, modifyUsage, nil)
		return
	}
	change, err := parseChange(args[1], strings.Join(args[2:], " "))
	if err != nil {
		b.SendMessage(chatID, err.Error()+"\n\n"+modifyUsage, nil)
		return
	}
	updated, err := b.Engine.ModifyService(args[0], change)
	if err != nil {
		b.SendMessage(chatID, "Service not modified: "+describe(err), nil)
		return
	}
	b.SendMessage(chatID, fmt.Sprintf("Service %s updated.", updated.Code), nil)
}

// parseChange turns one field assignment of /modify into an edit of the
// service. Values are validated by the engine.
func parseChange(field, value string) (func(*models.Service), error) {
	switch field {
	case "name":
		return func(s *models.Service) { s.Name = value }, nil
	case "comment":
		return func(s *models.Service) { s.Comment = value }, nil
	case "start", "end":
		d, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s date %q", field, value)
		}
		if field == "start" {
			return func(s *models.Service) { s.StartDate = d }, nil
		}
		return func(s *models.Service) { s.EndDate = d }, nil
	case "days":
		days, err := models.ParseDays(value)
		if err != nil {
			return nil, err
		}
		return func(s *models.Service) { s.Occurrences = days }, nil
	case "time":
		at, err := models.ParseTimeOfDay(value)
		if err != nil {
			return nil, err
		}
		return func(s *models.Service) { s.Time = at }, nil
	case "capacity":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid capacity %q", value)
		}
		return func(s *models.Service) { s.MaxCapacity = n }, nil
	case "fee":
		fee, err := parseFee(value)
		if err != nil {
			return nil, err
		}
		return func(s *models.Service) { s.Fee = fee }, nil
	}
	return nil, fmt.Errorf("unknown field %q", field)
}

func parseKind(s string) (models.PersonKind, bool) {
	switch s {
	case "member":
		return models.KindMember, true
	case "pro", "professional":
		return models.KindProfessional, true
	}
	return "", false
}

func handleStatus(b *bot.Bot, chatID int64, args []string, status models.Status) {
	if len(args) != 2 {
		b.SendMessage(chatID, "Usage: /suspend member|pro <no> or /reinstate member|pro <no>", nil)
		return
	}
	kind, ok := parseKind(args[0])
	if !ok {
		b.SendMessage(chatID, "Usage: /suspend member|pro <no> or /reinstate member|pro <no>", nil)
		return
	}
	if err := b.Engine.SetStatus(kind, args[1], status); err != nil {
		b.SendMessage(chatID, "Status not changed: "+describe(err), nil)
		return
	}
	b.SendMessage(chatID, fmt.Sprintf("%s is now %s.", args[1], strings.ToLower(status.Message())), nil)
}

func handleRemove(b *bot.Bot, chatID int64, args []string) {
	if len(args) != 2 {
		b.SendMessage(chatID, "Usage: /remove member|pro|service <no>", nil)
		return
	}

	var err error
	switch args[0] {
	case "member":
		err = b.Engine.DeleteMember(args[1])
	case "pro", "professional":
		err = b.Engine.DeleteProfessional(args[1])
	case "service":
		err = b.Engine.DeleteService(args[1])
	default:
		b.SendMessage(chatID, "Usage: /remove member|pro|service <no>", nil)
		return
	}
	if err != nil {
		b.SendMessage(chatID, "Not removed: "+describe(err), nil)
		return
	}
	b.SendMessage(chatID, fmt.Sprintf("%s %s removed.", args[0], args[1]), nil)
}

func handleSettle(b *bot.Bot, chatID int64) {
	if b.Cycle == nil {
		b.SendMessage(chatID, "The weekly cycle is not running.", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()

	if err := b.Cycle.RunBoundary(ctx); err != nil {
		zap.L().Error("manual settlement left artifacts unwritten",
			zap.Int64(logger.FieldChatID, chatID),
			zap.Error(err))
		b.SendMessage(chatID, fmt.Sprintf("Week closed, but %d closing(s) are still waiting to be written: %s",
			b.Cycle.Pending(), err), nil)
		return
	}
	b.SendMessage(chatID, "Week closed and settlement files written.", nil)
}
