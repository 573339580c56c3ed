package aws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

type Error string

const (
	ErrNoCredentials      = Error("no AWS credentials found")
	ErrExpiredCredentials = Error("AWS credentials have expired")
	ErrNoConnection       = Error("no connection to AWS")
	ErrInvalidRegion      = Error("invalid AWS region")
)

func (e Error) Error() string {
	return string(e)
}

// DefaultRegion is used when neither the flags nor the profile name a region.
const DefaultRegion = "us-east-1"

// Connection hands out the AWS clients backing the document repository.
type Connection interface {
	ConnectionOK() bool
	CheckConnectivity(ctx context.Context) bool
	ActiveProfile() string
	ActiveRegion() string
	AccountID() string
	S3() (*s3.Client, error)
	STS() (*sts.Client, error)
	Reset()
}

type ClientConfig struct {
	Profile string
	Region  string
	Timeout time.Duration
}

type serviceClients struct {
	s3Client  *s3.Client
	stsClient *sts.Client
	createdAt time.Time
}

// APIClient lazily builds and caches AWS service clients per profile and region.
type APIClient struct {
	config    ClientConfig
	clients   map[string]*serviceClients
	accountID string
	connOK    bool
	mx        sync.RWMutex
}

// NewAPIClient creates a new APIClient. An empty region falls back to the
// profile region then DefaultRegion.
func NewAPIClient(cfg ClientConfig) *APIClient {
	if cfg.Region == "" {
		cfg.Region = ProfileRegion(ConfigPath(), cfg.Profile)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	return &APIClient{
		config:  cfg,
		clients: make(map[string]*serviceClients),
	}
}

// ConnectionOK returns whether the last connectivity check succeeded.
func (c *APIClient) ConnectionOK() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.connOK
}

// CheckConnectivity calls STS GetCallerIdentity and caches the account id.
func (c *APIClient) CheckConnectivity(ctx context.Context) bool {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	ok, account := false, ""
	if client, err := c.STS(); err == nil {
		if res, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{}); err == nil {
			ok, account = true, aws.ToString(res.Account)
		}
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.connOK, c.accountID = ok, account

	return ok
}

// ActiveProfile returns the shared config profile in use.
func (c *APIClient) ActiveProfile() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Profile
}

// ActiveRegion returns the region in use.
func (c *APIClient) ActiveRegion() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Region
}

// AccountID returns the cached AWS account ID.
func (c *APIClient) AccountID() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.accountID
}

// S3 returns an S3 client for the active region.
func (c *APIClient) S3() (*s3.Client, error) {
	clients, err := c.getClients()
	if err != nil {
		return nil, err
	}
	return clients.s3Client, nil
}

// STS returns an STS client for the active region.
func (c *APIClient) STS() (*sts.Client, error) {
	clients, err := c.getClients()
	if err != nil {
		return nil, err
	}
	return clients.stsClient, nil
}

// Reset clears all cached clients and resets connection state.
func (c *APIClient) Reset() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.clients = make(map[string]*serviceClients)
	c.connOK = false
	c.accountID = ""
}

func (c *APIClient) getClients() (*serviceClients, error) {
	c.mx.RLock()
	key := c.config.Profile + ":" + c.config.Region
	if clients, ok := c.clients[key]; ok {
		c.mx.RUnlock()
		return clients, nil
	}
	c.mx.RUnlock()

	c.mx.Lock()
	defer c.mx.Unlock()

	key = c.config.Profile + ":" + c.config.Region
	if clients, ok := c.clients[key]; ok {
		return clients, nil
	}

	clients, err := c.createClients(c.config.Profile, c.config.Region)
	if err != nil {
		return nil, err
	}
	c.clients[key] = clients

	return clients, nil
}

func (c *APIClient) createClients(profile, region string) (*serviceClients, error) {
	ctx := context.Background()
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, WrapAWSError(err, "load AWS config")
	}

	return &serviceClients{
		s3Client:  s3.NewFromConfig(cfg),
		stsClient: sts.NewFromConfig(cfg),
		createdAt: time.Now(),
	}, nil
}

// WrapAWSError wraps AWS SDK errors with additional context.
func WrapAWSError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "AccessDeniedException":
			return fmt.Errorf("access denied for %s: %w", operation, err)
		case "ExpiredToken", "ExpiredTokenException":
			return fmt.Errorf("%w: %s", ErrExpiredCredentials, operation)
		case "ThrottlingException", "SlowDown":
			return fmt.Errorf("rate limited during %s: %w", operation, err)
		case "InvalidClientTokenId":
			return fmt.Errorf("%w: %s", ErrNoCredentials, operation)
		default:
			return fmt.Errorf("%s failed: %s (%s)", operation, apiErr.ErrorMessage(), apiErr.ErrorCode())
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
