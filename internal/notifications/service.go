package notifications

// SavedListMessage is published after a shopping list snapshot lands, so
// downstream consumers (email digests, the mobile app) can react.
type SavedListMessage struct {
	UserId    string   `json:"userId"`
	ListId    string   `json:"listId"`
	ItemIds   []string `json:"itemIds"`
	CreatedAt string   `json:"createdAt"`
}

type PublishOutput struct {
	MessageId string
}

type NotificationService interface {
	PublishSavedList(message SavedListMessage) (*PublishOutput, error)
}
