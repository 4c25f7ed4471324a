// Package discord builds and delivers Discord webhook notifications.
package discord

// Field is one name/value cell in an embed's field grid.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline *bool  `json:"inline,omitempty"`
}

// Thumbnail points at the poster image shown next to the embed.
type Thumbnail struct {
	URL string `json:"url"`
}

// Footer carries the attribution line under the embed.
type Footer struct {
	Text string `json:"text"`
}

// Embed is one rich-message block in a notification.
type Embed struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	Fields      []Field   `json:"fields"`
	Thumbnail   Thumbnail `json:"thumbnail"`
	Footer      Footer    `json:"footer"`
}

// Notification is the webhook payload. Built once per match, sent once,
// then discarded.
type Notification struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds"`
}
