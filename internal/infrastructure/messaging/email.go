package messaging

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"polarizados_ya/internal/infrastructure/logger"

	"go.uber.org/zap"
)

const fromName = "PolarizadosYA!"

const (
	SubjectAppointmentConfirmed = "Cita Agendada - PolarizadosYA!"
	SubjectVehicleReady         = "¡Tu vehículo está listo! - PolarizadosYA!"
)

// EmailClient delivers HTML mail through an SMTP relay.
type EmailClient struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	sendMail     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailClient(smtpHost, smtpPort, username, password, fromEmail string) *EmailClient {
	return &EmailClient{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: username,
		smtpPassword: password,
		fromEmail:    fromEmail,
		sendMail:     smtp.SendMail,
	}
}

// SendHTML sends an HTML email. The context only bounds the caller; net/smtp has no cancellation.
func (e *EmailClient) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(fmt.Sprintf("%s <%s>", fromName, e.fromEmail), to, subject, htmlBody)

	var auth smtp.Auth
	if e.smtpUsername != "" {
		auth = smtp.PlainAuth("", e.smtpUsername, e.smtpPassword, e.smtpHost)
	}
	addr := fmt.Sprintf("%s:%s", e.smtpHost, e.smtpPort)

	if err := e.sendMail(addr, auth, e.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.WithContext(ctx).Info("[messaging][email] sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// NoopEmailClient is used when SMTP is not configured.
type NoopEmailClient struct{}

func (NoopEmailClient) SendHTML(ctx context.Context, to, subject, _ string) error {
	logger.WithContext(ctx).Debug("[messaging][email] disabled, skipping", zap.String("to", to), zap.String("subject", subject))
	return nil
}

type AppointmentEmailData struct {
	ClientName string
	Date       string
	TimeSlot   string
	Services   []string
}

type VehicleReadyEmailData struct {
	ClientName string
	Brand      string
	Model      string
	Plate      string
}

const appointmentConfirmedTemplate = `
<h2>¡Cita Agendada - PolarizadosYA!</h2>
<p>Hola {{.ClientName}},</p>
<p>Tu cita ha sido agendada exitosamente:</p>
<ul>
    <li><strong>Fecha:</strong> {{.Date}}</li>
    <li><strong>Hora:</strong> {{.TimeSlot}}</li>
    <li><strong>Servicios:</strong> {{join .Services ", "}}</li>
</ul>
<p>¡Te esperamos!</p>
`

const vehicleReadyTemplate = `
<h2>¡Tu vehículo está listo! - PolarizadosYA!</h2>
<p>Hola {{.ClientName}},</p>
<p>Nos complace informarte que el servicio para tu vehículo <strong>{{.Brand}} {{.Model}}</strong> ({{.Plate}}) ha sido completado.</p>
<p>¡Puedes pasar a recogerlo cuando gustes!</p>
<p>Gracias por confiar en PolarizadosYA!</p>
`

var templates = template.Must(template.New("appointment").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(appointmentConfirmedTemplate))

func init() {
	template.Must(templates.New("ready").Parse(vehicleReadyTemplate))
}

func RenderAppointmentConfirmation(data AppointmentEmailData) (string, error) {
	return render("appointment", data)
}

func RenderVehicleReady(data VehicleReadyEmailData) (string, error) {
	return render("ready", data)
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", name, err)
	}
	return buf.String(), nil
}
