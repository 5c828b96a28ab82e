// Package hub fans out server notifications to every connected dashboard
// using a channel-based broadcast loop.
package hub

import "github.com/teslashibe/go-voxtend/pkg/protocol"

// Message is one encoded frame queued for every client.
type Message struct {
	Type protocol.MessageType
	Data []byte
}

// NewMessage encodes a protocol message for broadcast.
func NewMessage(msg *protocol.Message) (Message, error) {
	data, err := msg.Bytes()
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msg.Type, Data: data}, nil
}
