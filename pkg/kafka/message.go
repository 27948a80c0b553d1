package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is a Kafka message with metadata headers.
type Message struct {
	Key       string            // partition key (e.g. slug, confirmation code)
	Value     []byte            // JSON-encoded payload
	Headers   map[string]string // message headers
	Timestamp time.Time
}

// Header keys shared by all producers in this module.
const (
	HeaderMessageID   = "message-id"
	HeaderMessageType = "message-type"
	HeaderSource      = "source"
	HeaderTimestamp   = "timestamp"
)

// Message types published by the services.
const (
	TypeEventCreated   = "event.created"
	TypeEventUpdated   = "event.updated"
	TypeBookingCreated = "booking.created"
)

// MessageBuilder provides a fluent interface for building messages.
type MessageBuilder struct {
	msg Message
}

func NewMessage() *MessageBuilder {
	return &MessageBuilder{
		msg: Message{
			Headers:   make(map[string]string),
			Timestamp: time.Now(),
		},
	}
}

// WithKey sets the message key (for partition routing).
func (mb *MessageBuilder) WithKey(key string) *MessageBuilder {
	mb.msg.Key = key
	return mb
}

// WithValue JSON-encodes the value as the payload.
func (mb *MessageBuilder) WithValue(value interface{}) *MessageBuilder {
	data, err := json.Marshal(value)
	if err != nil {
		mb.msg.Value = nil
		return mb
	}
	mb.msg.Value = data
	return mb
}

func (mb *MessageBuilder) WithHeader(key, value string) *MessageBuilder {
	mb.msg.Headers[key] = value
	return mb
}

func (mb *MessageBuilder) WithType(messageType string) *MessageBuilder {
	mb.msg.Headers[HeaderMessageType] = messageType
	return mb
}

func (mb *MessageBuilder) WithSource(source string) *MessageBuilder {
	mb.msg.Headers[HeaderSource] = source
	return mb
}

// Build returns the constructed message, stamping a message ID and timestamp
// header when absent.
func (mb *MessageBuilder) Build() Message {
	if mb.msg.Headers[HeaderMessageID] == "" {
		mb.msg.Headers[HeaderMessageID] = uuid.New().String()
	}
	if mb.msg.Headers[HeaderTimestamp] == "" {
		mb.msg.Headers[HeaderTimestamp] = mb.msg.Timestamp.Format(time.RFC3339)
	}
	return mb.msg
}

// DecodeValue decodes the payload into the provided struct.
func (m *Message) DecodeValue(v interface{}) error {
	return json.Unmarshal(m.Value, v)
}

func (m *Message) GetHeader(key string) (string, bool) {
	value, exists := m.Headers[key]
	return value, exists
}

func (m *Message) GetType() string {
	return m.Headers[HeaderMessageType]
}
