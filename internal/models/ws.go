package models

// WSMessage is the envelope for change-feed events pushed over the
// websocket hub.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
