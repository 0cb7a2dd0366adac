package events

import "github.com/jaki95/songripper/internal/dom"

// Type names an event delivered to the document root.
type Type string

const (
	// Document lifecycle
	Loaded Type = "DOMContentLoaded"

	// User input
	Click  Type = "click"
	Change Type = "change"

	// Transport lifecycle
	BeforeRequest Type = "beforeRequest"
	AfterRequest  Type = "afterRequest"
	BeforeSwap    Type = "beforeSwap"
	AfterSwap     Type = "afterSwap"
	RequestFailed Type = "requestFailed"
)

// Event is a notification dispatched at the document root.
type Event struct {
	Type Type

	// Target is the element the event originated from. It is nil for
	// document-level events such as Loaded and RequestFailed.
	Target *dom.Element

	// Status is the HTTP status of the response behind a swap or request.
	Status int

	// Payload is renderable markup describing a failed request.
	Payload string
}
