package domain

// MessageRef identifica un mensaje ya publicado en la plataforma de chat.
type MessageRef struct {
	ChannelID string
	MessageID string // ts en Slack, message id en Discord
}

// Announcement es lo que se publica o edita. Si RerollFor no está vacío el
// adapter agrega el botón "Pick someone else" con ese valor.
type Announcement struct {
	Text      string
	RerollFor string
}
