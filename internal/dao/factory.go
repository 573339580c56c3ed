// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package dao

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/acme/acmeui/internal/aws"
)

// Endpoints locates the remote services.
type Endpoints struct {
	OrderURL       string
	AuditURL       string
	BPMURL         string
	ChatURL        string
	RateLimit      float64
	Burst          int
	Timeout        time.Duration
	Username       string
	CandidateGroup string
	Bucket         string
	Prefix         string
}

// ServiceFactory implements the Factory interface over the configured endpoints.
type ServiceFactory struct {
	endpoints Endpoints
	conn      aws.Connection
	log       *slog.Logger
	http      *http.Client

	docs *DocumentService
	mx   sync.Mutex
}

var _ Factory = (*ServiceFactory)(nil)

// NewFactory creates a new ServiceFactory. conn may be nil when no
// document bucket is configured.
func NewFactory(ep Endpoints, conn aws.Connection, log *slog.Logger) *ServiceFactory {
	if log == nil {
		log = slog.Default()
	}
	if ep.Timeout <= 0 {
		ep.Timeout = 30 * time.Second
	}

	return &ServiceFactory{
		endpoints: ep,
		conn:      conn,
		log:       log,
		http:      &http.Client{Timeout: ep.Timeout},
	}
}

// Endpoints returns the service locations.
func (f *ServiceFactory) Endpoints() Endpoints {
	return f.endpoints
}

// Connection returns the AWS connection if any.
func (f *ServiceFactory) Connection() aws.Connection {
	return f.conn
}

func (f *ServiceFactory) Orders() (PageFetcher[Order], error) {
	if f.endpoints.OrderURL == "" {
		return nil, fmt.Errorf("%w: orders", ErrNoService)
	}
	return NewOrderService(f.graphQL(f.endpoints.OrderURL, "orders")), nil
}

func (f *ServiceFactory) Notifications() (Lister[Notification], error) {
	if f.endpoints.AuditURL == "" {
		return nil, fmt.Errorf("%w: notifications", ErrNoService)
	}
	return NewNotificationService(f.graphQL(f.endpoints.AuditURL, "audit"), f.endpoints.Username), nil
}

func (f *ServiceFactory) Tasks() (Lister[Task], error) {
	if f.endpoints.BPMURL == "" {
		return nil, fmt.Errorf("%w: tasks", ErrNoService)
	}
	return NewTaskService(f.graphQL(f.endpoints.BPMURL, "bpm"), f.endpoints.CandidateGroup), nil
}

func (f *ServiceFactory) Chat() (ChatFeed, error) {
	if f.endpoints.ChatURL == "" {
		return nil, fmt.Errorf("%w: chat", ErrNoService)
	}
	return NewChatService(f.endpoints.ChatURL, f.endpoints.Username, f.log.With("service", "chat")), nil
}

func (f *ServiceFactory) Documents() (PageFetcher[Document], error) {
	return f.DocumentService()
}

// DocumentService returns the shared document service. Page tokens are
// cached on it so it is built once.
func (f *ServiceFactory) DocumentService() (*DocumentService, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	if f.docs != nil {
		return f.docs, nil
	}
	if f.endpoints.Bucket == "" {
		return nil, fmt.Errorf("%w: documents", ErrNoService)
	}
	if f.conn == nil {
		return nil, aws.ErrNoConnection
	}
	client, err := f.conn.S3()
	if err != nil {
		return nil, err
	}
	f.docs = NewDocumentService(client, f.endpoints.Bucket, f.endpoints.Prefix, f.log.With("service", "documents"))

	return f.docs, nil
}

// ReconnectDocuments rebuilds the AWS clients behind the document service and
// reports whether the repository passed a connectivity check.
func (f *ServiceFactory) ReconnectDocuments(ctx context.Context) (bool, error) {
	svc, err := f.DocumentService()
	if err != nil {
		return false, err
	}

	f.conn.Reset()
	ok := f.conn.CheckConnectivity(ctx)
	client, err := f.conn.S3()
	if err != nil {
		return false, err
	}
	svc.SetStore(client)
	f.log.Info("document repository reconnected",
		"profile", f.conn.ActiveProfile(),
		"region", f.conn.ActiveRegion(),
		"ok", ok,
	)

	return ok, nil
}

func (f *ServiceFactory) graphQL(url, name string) *GraphQLClient {
	return NewGraphQLClient(url,
		WithHTTPClient(f.http),
		WithRateLimit(f.endpoints.RateLimit, f.endpoints.Burst),
		WithLogger(f.log.With("service", name)),
	)
}
