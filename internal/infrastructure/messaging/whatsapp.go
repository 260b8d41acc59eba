package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"polarizados_ya/internal/infrastructure/logger"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

const whatsappPrefix = "whatsapp:"

var ErrNoMessageSID = errors.New("no message SID returned")

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// WhatsAppClient sends WhatsApp messages through Twilio.
type WhatsAppClient struct {
	api        messageCreator
	fromNumber string
}

func NewWhatsAppClient(accountSid, authToken, fromNumber string) *WhatsAppClient {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return &WhatsAppClient{api: client.Api, fromNumber: fromNumber}
}

// Send delivers body to the given phone number and returns the Twilio message SID.
func (w *WhatsAppClient) Send(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappAddress(to))
	params.SetFrom(whatsappAddress(w.fromNumber))
	params.SetBody(body)

	resp, err := w.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send WhatsApp message: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", ErrNoMessageSID
	}
	logger.WithContext(ctx).Info("[messaging][whatsapp] sent", zap.String("sid", *resp.Sid))
	return *resp.Sid, nil
}

func whatsappAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, whatsappPrefix) {
		return number
	}
	return whatsappPrefix + number
}

// NoopWhatsAppClient is used when Twilio is not configured.
type NoopWhatsAppClient struct{}

func (NoopWhatsAppClient) Send(ctx context.Context, to, _ string) (string, error) {
	logger.WithContext(ctx).Debug("[messaging][whatsapp] disabled, skipping", zap.String("to", to))
	return "", nil
}
