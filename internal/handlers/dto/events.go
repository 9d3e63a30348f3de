package dto

// Payload'ы входящих событий. Каждый вид события разбирается в свой
// строгий тип; ошибка разбора — это validation failure, событие
// отбрасывается.

// PersonalMessagePayload — комната лежит в конверте события
type PersonalMessagePayload struct {
	Text string `json:"text"`
}

type ChatMessagePayload struct {
	ChatID uint   `json:"chat_id"`
	Text   string `json:"text"`
}

type ChannelMessagePayload struct {
	ChannelID uint   `json:"channel_id"`
	Text      string `json:"text"`
}

type DeleteMessagePayload struct {
	Scope     string `json:"scope"`
	ID        uint   `json:"id"`
	PeerID    uint   `json:"peer_id,omitempty"`
	ChatID    uint   `json:"chat_id,omitempty"`
	ChannelID uint   `json:"channel_id,omitempty"`
}
