package websocket

import "time"

// Envelope - конверт сообщения; Type говорит фронтенду, что произошло.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
