package common

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/go-logr/logr"
)

// Request represents a command or query
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// RequestHandler handles a specific request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a function to RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Behavior wraps every dispatch. Behaviors run in registration order, the
// first one outermost.
type Behavior func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// Mediator dispatches requests to their handlers
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
}

type mediator struct {
	handlers  map[reflect.Type]RequestHandler
	behaviors []Behavior
}

// NewMediator creates a new mediator instance
func NewMediator(behaviors ...Behavior) Mediator {
	return &mediator{
		handlers:  make(map[reflect.Type]RequestHandler),
		behaviors: behaviors,
	}
}

// Register registers a handler for a specific request type
func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}

	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	if _, exists := m.handlers[requestType]; exists {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}

	m.handlers[requestType] = handler
	return nil
}

// Send dispatches a request through the behaviors to its registered handler
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	requestType := reflect.TypeOf(request)
	handler, ok := m.handlers[requestType]
	if !ok {
		return nil, fmt.Errorf("no handler registered for type %s", requestType)
	}

	next := HandlerFunc(handler.Handle)
	for i := len(m.behaviors) - 1; i >= 0; i-- {
		behavior, inner := m.behaviors[i], next
		next = func(ctx context.Context, request Request) (Response, error) {
			return behavior(ctx, request, inner)
		}
	}
	return next(ctx, request)
}

// RegisterHandler registers a handler for T using type inference
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	var zero T
	requestType := reflect.TypeOf(zero)
	return m.Register(requestType, handler)
}

// LoggingBehavior logs each request type with its duration and outcome
func LoggingBehavior(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("request", RequestName(request))
	start := time.Now()

	response, err := next(ctx, request)
	if err != nil {
		log.V(1).Info("request failed", "duration", time.Since(start), "error", err.Error())
		return response, err
	}
	log.V(2).Info("request handled", "duration", time.Since(start))
	return response, nil
}

// RequestName returns the bare type name of a request
func RequestName(request Request) string {
	t := reflect.TypeOf(request)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}
