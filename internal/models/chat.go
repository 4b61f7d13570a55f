package models

import "time"

// ChatMessage is one assistant exchange, kept as the user's chat history.
type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"timestamp"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}
