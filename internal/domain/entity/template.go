package entity

// Template is a reusable campaign message template. Content is an ordered
// list of message bodies; the order is the send sequence.
type Template struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Content []string `json:"content"`
}
