package mail_fx

import (
	"log"
	"os"
	"strconv"

	"go.uber.org/fx"

	"dreamoracle/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.IMailService {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USERNAME")
	}

	cfg := services.SMTPConfig{
		Host:       envOr("SMTP_HOST", "smtp.gmail.com"),
		Port:       port, // 587 for STARTTLS; use 465 with UseSSL=true for SMTPS
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"), // use an app password if 2FA is enabled
		From:       from,
		FromName:   "DreamOracle",
		UseSSL:     port == 465,
		RequireTLS: true,

		AppName: "DreamOracle",
	}

	mailService, err := services.NewSMTPMailService(cfg)
	if err != nil {
		log.Printf("Failed to initialize SMTP mail service: %v", err)
	}

	return mailService
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
