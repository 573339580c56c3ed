package dao

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/acme/acmeui/internal/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectStore is the slice of the S3 API the document repository needs.
type ObjectStore interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// DocumentService pages through the documents stored under a bucket prefix.
// S3 pages by continuation token, so the token opening each page is cached
// and page N walks forward from the nearest known token.
type DocumentService struct {
	store  ObjectStore
	bucket string
	prefix string
	tokens *ResourceCache[string]
	log    *slog.Logger
	mx     sync.RWMutex
}

// NewDocumentService returns a document service over bucket/prefix.
func NewDocumentService(store ObjectStore, bucket, prefix string, log *slog.Logger) *DocumentService {
	if log == nil {
		log = slog.Default()
	}
	return &DocumentService{
		store:  store,
		bucket: bucket,
		prefix: prefix,
		tokens: NewResourceCache[string](DefaultCacheTTL),
		log:    log,
	}
}

// FetchPage returns one page of documents. The page carries no total.
func (s *DocumentService) FetchPage(ctx context.Context, pageIndex, pageSize int) (Page[Document], error) {
	if err := CheckPage(pageIndex, pageSize); err != nil {
		return Page[Document]{}, err
	}

	start, token := 0, ""
	for p := pageIndex; p > 0; p-- {
		if tok, ok := s.tokens.Get(s.tokenKey(pageSize, p)); ok {
			start, token = p, tok
			break
		}
	}
	if start < pageIndex {
		s.log.Debug("walking document pages", "from", start, "to", pageIndex)
	}

	for p := start; ; p++ {
		in := &s3.ListObjectsV2Input{
			Bucket:  awssdk.String(s.bucket),
			MaxKeys: awssdk.Int32(int32(pageSize)),
		}
		if s.prefix != "" {
			in.Prefix = awssdk.String(s.prefix)
		}
		if token != "" {
			in.ContinuationToken = awssdk.String(token)
		}

		out, err := s.objectStore().ListObjectsV2(ctx, in)
		if err != nil {
			return Page[Document]{}, aws.WrapAWSError(err, fmt.Sprintf("list documents page %d", p))
		}

		next := awssdk.ToString(out.NextContinuationToken)
		if next != "" {
			s.tokens.Set(s.tokenKey(pageSize, p+1), next)
		}

		if p == pageIndex {
			dd := make([]Document, 0, len(out.Contents))
			for _, o := range out.Contents {
				d := documentFromObject(o)
				if err := d.Validate(); err != nil {
					return Page[Document]{}, err
				}
				dd = append(dd, d)
			}
			return Page[Document]{Items: dd}, nil
		}

		if !awssdk.ToBool(out.IsTruncated) || next == "" {
			return Page[Document]{Items: []Document{}}, nil
		}
		token = next
	}
}

// Count walks the whole prefix and returns the number of documents.
func (s *DocumentService) Count(ctx context.Context) (int64, error) {
	in := &s3.ListObjectsV2Input{Bucket: awssdk.String(s.bucket)}
	if s.prefix != "" {
		in.Prefix = awssdk.String(s.prefix)
	}

	var n int64
	pager := s3.NewListObjectsV2Paginator(s.objectStore(), in)
	for pager.HasMorePages() {
		out, err := pager.NextPage(ctx)
		if err != nil {
			return 0, aws.WrapAWSError(err, "count documents")
		}
		n += int64(len(out.Contents))
	}

	return n, nil
}

// Download copies the document body to w.
func (s *DocumentService) Download(ctx context.Context, key string, w io.Writer) (int64, error) {
	out, err := s.objectStore().GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		return 0, aws.WrapAWSError(err, "get document")
	}
	defer out.Body.Close()

	n, err := io.Copy(w, out.Body)
	if err != nil {
		return n, fmt.Errorf("download %s: %w", key, err)
	}

	return n, nil
}

// Reset forgets the cached page tokens.
func (s *DocumentService) Reset() {
	s.tokens.InvalidatePrefix(s.bucket + "/")
}

// SetStore swaps the object store. Tokens minted by the old one are dropped.
func (s *DocumentService) SetStore(store ObjectStore) {
	s.mx.Lock()
	s.store = store
	s.mx.Unlock()

	s.Reset()
}

func (s *DocumentService) objectStore() ObjectStore {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.store
}

func (s *DocumentService) tokenKey(pageSize, pageIndex int) string {
	return fmt.Sprintf("%s/%s#%d@%d", s.bucket, strings.TrimSuffix(s.prefix, "/"), pageSize, pageIndex)
}

func documentFromObject(o types.Object) Document {
	d := Document{
		Key:          awssdk.ToString(o.Key),
		Size:         awssdk.ToInt64(o.Size),
		StorageClass: string(o.StorageClass),
	}
	if o.LastModified != nil {
		d.LastModified = *o.LastModified
	}
	return d
}
