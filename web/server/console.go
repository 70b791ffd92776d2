package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// consoleBufferSize bounds the render log returned with a JSON render
const consoleBufferSize = 64

// ConsoleMessage is one line of render log returned to the client
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by writing to the server log and queueing messages for the client
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for one render request
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}

	// Drop the message rather than block once the buffer is full
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     messageLevel(message),
	}:
	default:
	}
}

func messageLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "error"):
		return "error"
	case strings.HasPrefix(lower, "warning"):
		return "warning"
	default:
		return "info"
	}
}

// drainConsole returns every queued message without blocking
func drainConsole(consoleChan <-chan ConsoleMessage) []ConsoleMessage {
	messages := make([]ConsoleMessage, 0, len(consoleChan))
	for {
		select {
		case msg := <-consoleChan:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
