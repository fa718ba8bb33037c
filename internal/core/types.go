package core

import "time"

const (
	AppName          = "Inspire"
	AppUserAgent     = "Inspire/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/inspire"
	AppVersion       = "0.1.0"
)

// Category is a capability class used both for browsing the catalog
// and for routing messages.
type Category string

const (
	CategoryImage         Category = "Image Generator"
	CategoryVideo         Category = "Video Generator"
	CategoryCode          Category = "Code Generator"
	CategoryTranscription Category = "Transcription"
	CategoryWordProcessor Category = "Word Processor"
	CategoryText          Category = "Text Generator"
)

// DefaultCategory receives every message no pattern matched.
const DefaultCategory = CategoryText

// ProviderKind selects how a tool produces replies.
type ProviderKind string

const (
	ProviderOpenAI      ProviderKind = "openai"
	ProviderHuggingFace ProviderKind = "huggingface"
	ProviderCustom      ProviderKind = "custom"
	ProviderNone        ProviderKind = "none"
)

type Tool struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Provider    string       `json:"provider"`
	Endpoint    string       `json:"endpoint"`
	Category    Category     `json:"category"`
	Description string       `json:"description"`
	Popularity  int          `json:"popularity"`
	APIType     ProviderKind `json:"api_type"`
	APIModel    string       `json:"api_model,omitempty"`
	APIEndpoint string       `json:"api_endpoint,omitempty"`
	IsFeatured  bool         `json:"is_featured"`
}

// ServiceConfig returns the dispatch parameters of the tool.
func (t Tool) ServiceConfig() ServiceConfig {
	return ServiceConfig{
		APIType:     t.APIType,
		APIModel:    t.APIModel,
		APIEndpoint: t.APIEndpoint,
	}
}

type ServiceConfig struct {
	APIType     ProviderKind
	APIModel    string
	APIEndpoint string
}

// ServiceResponse is the result of every dispatch path. Data is set iff
// Success, Error iff not.
type ServiceResponse struct {
	Success   bool   `json:"success"`
	Data      string `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Simulated bool   `json:"simulated,omitempty"`
}

func Succeeded(data string) ServiceResponse {
	return ServiceResponse{Success: true, Data: data}
}

func Failed(msg string) ServiceResponse {
	return ServiceResponse{Error: msg}
}

type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	ToolID    string    `json:"tool_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Content        string    `json:"content"`
	IsUser         bool      `json:"is_user"`
	Timestamp      time.Time `json:"timestamp"`
}

// Share grants access to a conversation through its token. A public share
// is open to anyone holding the token, a private one only to SharedWith.
// ExpirationDays of 0 never expires.
type Share struct {
	Token          string    `json:"access_token"`
	ConversationID string    `json:"conversation_id"`
	SharedBy       string    `json:"shared_by"`
	SharedWith     string    `json:"recipient,omitempty"`
	IsPublic       bool      `json:"is_public"`
	ExpirationDays int       `json:"expiration_days"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s Share) Expired(now time.Time) bool {
	return s.ExpirationDays > 0 && now.After(s.CreatedAt.AddDate(0, 0, s.ExpirationDays))
}

// CanView reports whether viewerID may read the shared conversation.
func (s Share) CanView(viewerID string) bool {
	return s.IsPublic || viewerID == s.SharedBy || (s.SharedWith != "" && viewerID == s.SharedWith)
}
