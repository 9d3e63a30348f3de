package dto

import "time"

// MessageBroadcast — исходящий вид сохраненного сообщения: id и ts
// присвоены хранилищем
type MessageBroadcast struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Text     string    `json:"text"`
	Ts       time.Time `json:"ts"`
}

// MessageResponse — элемент истории в HTTP-ответах
type MessageResponse struct {
	ID       uint      `json:"id"`
	SenderID uint      `json:"sender_id"`
	Username string    `json:"username"`
	Text     string    `json:"text"`
	Ts       time.Time `json:"ts"`
}
