package dao

import (
	"context"
	"fmt"
	"math"
)

// MaxPageSize bounds a page request. It matches the S3 MaxKeys ceiling.
const MaxPageSize = 1000

// Error represents a dao sentinel error.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrInvalidPage flags a negative page index or a non positive page size.
	ErrInvalidPage = Error("invalid page request")

	// ErrInvalidItem flags a remote entity missing required fields.
	ErrInvalidItem = Error("invalid item")

	// ErrRemote flags a failure reported by a remote service.
	ErrRemote = Error("remote service error")

	// ErrStale flags a response for a provider that was reset while in flight.
	ErrStale = Error("stale response")

	// ErrNoService flags a service missing from the configuration.
	ErrNoService = Error("service not configured")

	// ErrDisconnected flags a live subscription ended by the remote side.
	ErrDisconnected = Error("subscription disconnected")

	// ErrDetached flags a subscription superseded or detached while opening.
	ErrDetached = Error("subscription detached")
)

// CheckPage validates page arguments.
func CheckPage(pageIndex, pageSize int) error {
	if pageIndex < 0 {
		return fmt.Errorf("%w: page index %d is negative", ErrInvalidPage, pageIndex)
	}
	if pageSize <= 0 || pageSize > MaxPageSize {
		return fmt.Errorf("%w: page size %d must be in 1..%d", ErrInvalidPage, pageSize, MaxPageSize)
	}
	if pageIndex > math.MaxInt32/pageSize {
		return fmt.Errorf("%w: page %d is out of range", ErrInvalidPage, pageIndex)
	}
	return nil
}

// Page is one slice of a remote collection.
type Page[T any] struct {
	Items []T

	// Total is set only when the record count is independently known.
	Total *int64
}

// HasTotal returns true if the page carries a record count.
func (p Page[T]) HasTotal() bool {
	return p.Total != nil
}

// Entity represents a remote value validated at the service boundary.
type Entity interface {
	GetID() string
	Validate() error
}

// PageFetcher fetches pages and counts from a remote collection.
type PageFetcher[T any] interface {
	// FetchPage returns the items of the given page.
	FetchPage(ctx context.Context, pageIndex, pageSize int) (Page[T], error)

	// Count returns the collection size.
	Count(ctx context.Context) (int64, error)
}

// Lister fetches a whole, bounded collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Subscription is a live push channel.
type Subscription[T any] interface {
	// Messages delivers items in arrival order. Closed when the subscription ends.
	Messages() <-chan T

	// Err returns the terminal error once Messages is closed, nil on a clean close.
	Err() error

	// Close ends the subscription.
	Close() error
}

// Subscriber opens live push channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) (Subscription[T], error)
}

// ChatFeed subscribes to and posts chat messages.
type ChatFeed interface {
	Subscriber[Message]

	// Send posts text as the current user and returns the stamped message.
	Send(ctx context.Context, text string) (Message, error)
}

// Factory hands out the remote services the views consume.
type Factory interface {
	Orders() (PageFetcher[Order], error)
	Notifications() (Lister[Notification], error)
	Tasks() (Lister[Task], error)
	Chat() (ChatFeed, error)
	Documents() (PageFetcher[Document], error)
}
