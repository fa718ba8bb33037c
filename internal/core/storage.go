package core

import "context"

// Catalog is the read side the router depends on. Results are ordered
// by popularity, most popular first.
type Catalog interface {
	FindByCategory(ctx context.Context, category Category) ([]Tool, error)
	FindAll(ctx context.Context) ([]Tool, error)
}

type ToolRepository interface {
	Catalog
	GetTool(ctx context.Context, id string) (Tool, error)
	SaveTool(ctx context.Context, tool Tool) error
	IncrementPopularity(ctx context.Context, id string) error
}

type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv Conversation) (Conversation, error)
	GetConversation(ctx context.Context, id, userID string) (Conversation, error)
	TouchConversation(ctx context.Context, id string) error
	AddMessage(ctx context.Context, msg Message) (Message, error)
	GetMessages(ctx context.Context, conversationID string) ([]Message, error)
}

type ShareRepository interface {
	CreateShare(ctx context.Context, share Share) (Share, error)
	GetShare(ctx context.Context, token string) (Share, error)
	ListShares(ctx context.Context, userID string) ([]Share, error)
	DeleteShare(ctx context.Context, token, userID string) error
}

// FavoriteRepository keeps the tools each user marked as favorite.
type FavoriteRepository interface {
	ToggleFavorite(ctx context.Context, userID, toolID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]Tool, error)
}
