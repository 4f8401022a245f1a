package meeting

import (
	"context"
	"fmt"

	"assistant-agents/internal/common/aws"
	apperrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
)

// Notifier announces newly scheduled meetings. Implementations must be
// best-effort; scheduling never fails because a notification did.
type Notifier interface {
	MeetingScheduled(ctx context.Context, m *models.Meeting)
}

// NoOpNotifier is used when no notification channel is configured.
type NoOpNotifier struct{}

func (NoOpNotifier) MeetingScheduled(context.Context, *models.Meeting) {}

// AWSNotifier sends a confirmation email and, when a phone number is
// configured, an SMS. Either client may be nil.
type AWSNotifier struct {
	ses       *aws.SESClient
	sns       *aws.SNSClient
	fromEmail string
	toEmail   string
	toPhone   string
	logger    logger.Logger
}

func NewAWSNotifier(sesClient *aws.SESClient, snsClient *aws.SNSClient, fromEmail, toEmail, toPhone string, log logger.Logger) *AWSNotifier {
	return &AWSNotifier{
		ses:       sesClient,
		sns:       snsClient,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		toPhone:   toPhone,
		logger:    log.WithFields(map[string]interface{}{"component": "meeting-notifier"}),
	}
}

func (n *AWSNotifier) MeetingScheduled(ctx context.Context, m *models.Meeting) {
	summary := fmt.Sprintf("%s on %s at %s (%d min)", m.Title, m.Date, m.Time, m.DurationMinutes)

	if n.ses != nil && n.toEmail != "" {
		err := n.ses.SendEmail(ctx, n.fromEmail, n.toEmail, "Meeting scheduled: "+m.Title, summary)
		if err != nil {
			n.logger.Warn("meeting email notification failed", map[string]interface{}{
				"code":      string(apperrors.ErrCodeNotificationSendFailed),
				"meetingId": m.MeetingID,
				"error":     err.Error(),
			})
		}
	}

	if n.sns != nil && n.toPhone != "" {
		err := n.sns.SendSMS(ctx, n.toPhone, "Meeting scheduled: "+summary)
		if err != nil {
			n.logger.Warn("meeting sms notification failed", map[string]interface{}{
				"code":      string(apperrors.ErrCodeNotificationSendFailed),
				"meetingId": m.MeetingID,
				"error":     err.Error(),
			})
		}
	}
}
