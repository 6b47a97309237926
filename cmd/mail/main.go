package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/config"
	"github.com/clasnet-dev/field-service/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

type mailTemplate struct {
	file    string
	subject func(data map[string]any) string
}

var mailTemplates = map[string]mailTemplate{
	domain.MailTypeDocumentLink: {
		file: "./templates/document_link_email.html",
		subject: func(data map[string]any) string {
			return fmt.Sprintf("%v - %v", data["companyName"], data["documentTitle"])
		},
	},
}

// templateData re-keys the JSON payload so templates can use the Go field
// names of the matching domain struct.
func templateData(m domain.MailMessage) (any, map[string]any, error) {
	raw, err := json.Marshal(m.Data)
	if err != nil {
		return nil, nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, err
	}

	switch m.Type {
	case domain.MailTypeDocumentLink:
		data := domain.DocumentLinkMailData{}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, nil, err
		}
		return data, fields, nil
	}
	return nil, nil, fmt.Errorf("unsupported mail type %q", m.Type)
}

func buildMessage(from string, m domain.MailMessage) (*mail.Msg, error) {
	tmplInfo, ok := mailTemplates[m.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mail type %q", m.Type)
	}
	data, fields, err := templateData(m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mail data: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("failed to set recipient: %w", err)
	}

	tmpl, err := template.ParseFiles(tmplInfo.file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := msg.SetBodyHTMLTemplate(tmpl, data); err != nil {
		return nil, fmt.Errorf("failed to render body: %w", err)
	}
	msg.Subject(tmplInfo.subject(fields))

	return msg, nil
}

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * smtp client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("failed to reach mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"email_queue", // name
		true,          // durable
		false,         // keep the queue when no consumer is attached
		false,         // exclusive
		false,         // wait for the broker to confirm
		nil,
	)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // broker assigned consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local is not supported by RabbitMQ
		false, // wait for the broker
		nil,
	)
	if err != nil {
		logger.Error("failed to consume queue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-msgs:
				if !ok {
					return
				}

				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(delivery.Body, &mailMessage); err != nil {
					logger.Error("failed to decode mail message", slog.String("error", err.Error()))
					_ = delivery.Nack(false, false)
					continue
				}
				logger.Info("mail message received", slog.String("type", mailMessage.Type), slog.String("to", mailMessage.To))

				msg, err := buildMessage(cfg.Email.SMTP.Username, mailMessage)
				if err != nil {
					logger.Error("failed to build mail", slog.String("type", mailMessage.Type), slog.String("error", err.Error()))
					_ = delivery.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(msg); err != nil {
					logger.Error("failed to send mail", slog.String("error", err.Error()))
					_ = delivery.Nack(false, true) // requeue
					continue
				}

				_ = delivery.Ack(false)
			}
		}
	}()

	logger.Info("waiting for messages (CTRL+C to quit)")
	<-sigChan

	slog.Info("stopping mail worker")
	cancel()
	wg.Wait()
	slog.Info("mail worker stopped")
}
