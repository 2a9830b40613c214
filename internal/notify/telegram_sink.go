package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

// TelegramSink pushes booking events to an operations chat. Sends run in
// the background and never fail the triggering operation.
type TelegramSink struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegramSink(token string, chatID int64, logger *zap.Logger) (*TelegramSink, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramSink{bot: b, chatID: chatID, logger: logger}, nil
}

func (s *TelegramSink) BookingChanged(_ context.Context, learnerID, courseID int64, detail string) {
	s.send(fmt.Sprintf("Booking changed: learner %d, course %d — %s", learnerID, courseID, detail))
}

func (s *TelegramSink) ConflictDetected(_ context.Context, learnerID int64, report schedule.ConflictReport) {
	text := fmt.Sprintf("Booking conflict: learner %d", learnerID)
	if report.DayConflict {
		text += ", day already occupied"
	}
	if len(report.SlotConflicts) > 0 {
		text += fmt.Sprintf(", slots %v unavailable", report.SlotConflicts)
	}
	s.send(text)
}

func (s *TelegramSink) send(text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: s.chatID,
			Text:   text,
		})
		if err != nil {
			s.logger.Warn("telegram notification failed", zap.Error(err))
		}
	}()
}
