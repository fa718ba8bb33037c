package installer

import (
	"github.com/sandevgo/inspire/pkg/env"
)

// envFile is the layout of the generated .env. Empty fields are left
// out so the application defaults apply.
type envFile struct {
	EnableHTTP     string `env:"INSPIRE_ENABLE_HTTP"`
	EnableTelegram string `env:"INSPIRE_ENABLE_TELEGRAM"`
	TelegramToken  string `env:"INSPIRE_TELEGRAM_TOKEN"`
	TelegramOwner  string `env:"INSPIRE_TELEGRAM_OWNER_ID"`
	OpenAIKey      string `env:"OPENAI_API_KEY"`
	HuggingFaceKey string `env:"HUGGINGFACE_API_KEY"`
	Debug          string `env:"INSPIRE_DEBUG"`
}

// RenderEnv turns the collected answers into .env content.
func RenderEnv(state *InstallState) (string, error) {
	f := envFile{
		EnableHTTP:     state.EnvVars[envEnableHTTP],
		EnableTelegram: state.EnvVars[envEnableTelegram],
		OpenAIKey:      state.EnvVars[envOpenAIKey],
		HuggingFaceKey: state.EnvVars[envHuggingFaceKey],
		Debug:          state.EnvVars[envDebug],
	}
	if state.telegramSelected() {
		f.TelegramToken = state.EnvVars[envTelegramToken]
		f.TelegramOwner = state.EnvVars[envTelegramOwner]
	}
	return env.MarshalEnv(&f)
}
