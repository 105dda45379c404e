package payment_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"dreamoracle/internal/services"
)

var Module = fx.Provide(providePaymentService)

func providePaymentService(db *gorm.DB) services.PaymentService {
	cfg := services.PayOSConfig{
		ClientID:     os.Getenv("PAYOS_CLIENT_ID"),
		ApiKey:       os.Getenv("PAYOS_API_KEY"),
		ChecksumKey:  os.Getenv("PAYOS_CHECKSUM_KEY"),
		ReturnURL:    os.Getenv("PAYOS_RETURN_URL"),
		CancelURL:    os.Getenv("PAYOS_CANCEL_URL"),
		ProviderName: "payos",
	}

	paymentService, err := services.NewPaymentService(db, cfg)
	if err != nil {
		log.Printf("Failed to initialize payment service: %v", err)
	}

	return paymentService
}
