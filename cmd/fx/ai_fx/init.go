package ai_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"dreamoracle/pkg/utils"
)

// AIConfig names the provider so services logging interpretations can record
// which model produced them.
type AIConfig struct {
	Provider string
	Model    string
}

var Module = fx.Provide(provideAIConfig, provideAIClient)

func provideAIConfig() AIConfig {
	return AIConfig{
		Provider: os.Getenv("AI_PROVIDER"), // "openai" (default) or "gemini"
		Model:    os.Getenv("AI_MODEL"),
	}
}

func provideAIClient(cfg AIConfig) utils.DreamAIClient {
	client, err := utils.NewDreamAIClient(cfg.Provider, os.Getenv("AI_API_KEY"), cfg.Model)
	if err != nil {
		log.Fatalf("Failed to initialize AI client: %v", err)
	}
	return client
}
