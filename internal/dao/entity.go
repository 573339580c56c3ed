package dao

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Order is a sales order row from the order service.
type Order struct {
	ID            int64  `json:"_id"`
	OperationDate string `json:"fechaOperacion"`
	StoreID       string `json:"tiendaID"`
	ProductID     string `json:"productoID"`
	Quantity      string `json:"cantidad"`
	Amount        string `json:"monto"`
}

func (o Order) GetID() string {
	return strconv.FormatInt(o.ID, 10)
}

// Validate checks the required order fields.
func (o Order) Validate() error {
	if o.ID <= 0 {
		return fmt.Errorf("%w: order id %d", ErrInvalidItem, o.ID)
	}
	if strings.TrimSpace(o.StoreID) == "" {
		return fmt.Errorf("%w: order %d has no store", ErrInvalidItem, o.ID)
	}
	return nil
}

// Notification is an audit event addressed to the current user.
type Notification struct {
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func (n Notification) GetID() string {
	return n.Title + "@" + strconv.FormatInt(n.Time.UnixMilli(), 10)
}

// Validate checks the required notification fields.
func (n Notification) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: notification without title", ErrInvalidItem)
	}
	if n.Time.IsZero() {
		return fmt.Errorf("%w: notification %q without time", ErrInvalidItem, n.Title)
	}
	return nil
}

// Message is a chat line.
type Message struct {
	Text     string    `json:"text"`
	Time     time.Time `json:"time"`
	UserName string    `json:"userName"`
}

func (m Message) GetID() string {
	return m.UserName + "@" + strconv.FormatInt(m.Time.UnixNano(), 10)
}

// Validate checks the required message fields.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("%w: empty chat message", ErrInvalidItem)
	}
	if strings.TrimSpace(m.UserName) == "" {
		return fmt.Errorf("%w: chat message without user", ErrInvalidItem)
	}
	if m.Time.IsZero() {
		return fmt.Errorf("%w: chat message without time", ErrInvalidItem)
	}
	return nil
}

// Task is a BPM user task waiting on a candidate group.
type Task struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Assignee       string    `json:"assignee"`
	CandidateGroup string    `json:"candidateGroup"`
	Priority       int       `json:"priority"`
	Created        time.Time `json:"created"`
}

func (t Task) GetID() string {
	return t.ID
}

// Validate checks the required task fields.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: task without id", ErrInvalidItem)
	}
	if t.Name == "" {
		return fmt.Errorf("%w: task %s without name", ErrInvalidItem, t.ID)
	}
	return nil
}

// Document is a stored file in the document repository.
type Document struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	StorageClass string    `json:"storageClass"`
	LastModified time.Time `json:"lastModified"`
}

func (d Document) GetID() string {
	return d.Key
}

// Name returns the last path element of the key.
func (d Document) Name() string {
	if i := strings.LastIndex(strings.TrimSuffix(d.Key, "/"), "/"); i >= 0 {
		return d.Key[i+1:]
	}
	return d.Key
}

// Validate checks the required document fields.
func (d Document) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("%w: document without key", ErrInvalidItem)
	}
	if d.Size < 0 {
		return fmt.Errorf("%w: document %s has negative size", ErrInvalidItem, d.Key)
	}
	return nil
}
