package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatLogRepository хранит журнал обращений к языковой модели.
type ChatLogRepository struct {
	db *pgxpool.Pool
}

// ChatRequestLog — одна запись журнала: вход, выход и исход вызова модели.
type ChatRequestLog struct {
	SessionID    uuid.UUID
	Provider     string
	Model        string
	UserMessage  string
	Reply        string
	RawResponse  string
	Success      bool
	ErrorMessage *string
}

// NewChatLogRepository создает репозиторий журнала обращений к модели.
func NewChatLogRepository(db *pgxpool.Pool) *ChatLogRepository {
	return &ChatLogRepository{db: db}
}

// LogTurn сохраняет запись о ходе диалога.
func (r *ChatLogRepository) LogTurn(ctx context.Context, log ChatRequestLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO chat_requests
		 (session_id, provider, model, user_message, reply, raw_response, success, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.SessionID,
		log.Provider,
		log.Model,
		log.UserMessage,
		log.Reply,
		log.RawResponse,
		log.Success,
		log.ErrorMessage,
	)
	return err
}
