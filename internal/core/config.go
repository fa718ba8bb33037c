package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetSecretsFilePath() string
	IsTelegramSelected() bool
	IsHTTPSelected() bool
}

type ResponderConfig interface {
	GetRequestTimeout() time.Duration
	GetSimulationDelay() time.Duration
	GetOpenAIBaseURL() string
	GetHuggingFaceBaseURL() string
	IsTokenCountEnabled() bool
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
