package installer

const (
	envEnableHTTP     = "INSPIRE_ENABLE_HTTP"
	envEnableTelegram = "INSPIRE_ENABLE_TELEGRAM"
	envTelegramToken  = "INSPIRE_TELEGRAM_TOKEN"
	envTelegramOwner  = "INSPIRE_TELEGRAM_OWNER_ID"
	envDebug          = "INSPIRE_DEBUG"
	envOpenAIKey      = "OPENAI_API_KEY"
	envHuggingFaceKey = "HUGGINGFACE_API_KEY"
)

type InstallState struct {
	RuntimePath string
	EnvVars     map[string]string
}

func NewInstallState(runtimePath string) *InstallState {
	return &InstallState{
		RuntimePath: runtimePath,
		EnvVars:     make(map[string]string),
	}
}

func (s *InstallState) telegramSelected() bool {
	return s.EnvVars[envEnableTelegram] == "true"
}
