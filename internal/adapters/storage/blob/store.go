// Package blob implements the word repository as a single JSON document at a
// fixed bucket/key, rewritten whole on every mutation.
//
// Consistency tradeoff, stated up front: a write is a read-modify-write
// cycle over the entire document. With conditional writes disabled there is
// no atomicity across that cycle, so two concurrent writers can race and the
// second overwrite silently discards the first writer's update (a lost
// update). That is a property of plain object overwrite, accepted for
// low-contention use. Enabling Config.Conditional closes the race with an
// ETag compare-and-swap at the storage boundary; the losing writer then gets
// domain.ErrConflict and may retry the whole cycle.
//
// A failure before PutObject leaves the prior document untouched. A failure
// during PutObject leaves the document state undefined; there is no rollback
// concept here. Known limitation.
package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/battulga/wordwall/internal/domain"
)

// ObjectAPI is the slice of the S3 client the store uses. Narrowed for
// test doubles.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Config contains configuration for the blob store.
type Config struct {
	// Region is the AWS region of the bucket.
	Region string

	// Bucket and Key locate the single word-set document.
	Bucket string
	Key    string

	// Endpoint overrides the S3 endpoint (S3-compatible stores). Path-style
	// addressing is used when set.
	Endpoint string

	// Conditional enables ETag compare-and-swap on overwrites. Without it,
	// concurrent writers race (see the package comment).
	Conditional bool

	Logger *slog.Logger
}

// Store is a word repository backed by one JSON document in object storage.
type Store struct {
	client      ObjectAPI
	bucket      string
	key         string
	conditional bool
	logger      *slog.Logger
}

// document is the serialized word set: canonical words, newest first.
type document struct {
	Words []string `json:"words"`
}

// Open resolves AWS configuration from the environment and returns a store
// talking to the real S3 API.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return New(client, cfg), nil
}

// New wraps an existing S3 client.
func New(client ObjectAPI, cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		client:      client,
		bucket:      cfg.Bucket,
		key:         cfg.Key,
		conditional: cfg.Conditional,
		logger:      logger,
	}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "blob"
}

// Check implements ports.HealthChecker by heading the bucket.
func (s *Store) Check(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})

	return err
}

// ListWords fetches and deserializes the current document. Every call goes
// to the bucket; nothing is cached in process, so reads always see the
// freshest durable copy the store will serve.
func (s *Store) ListWords(ctx context.Context) ([]string, error) {
	doc, _, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Words, nil
}

// AddWords inserts the words not already in the document and overwrites it.
// The updated words sit at the front, keeping most-recently-inserted-first
// order consistent with the relational adapter. When nothing new is in the
// batch the document is left untouched.
func (s *Store) AddWords(ctx context.Context, words []string) ([]string, error) {
	doc, etag, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(doc.Words))
	for _, w := range doc.Words {
		present[w] = struct{}{}
	}

	added := make([]string, 0, len(words))
	for _, w := range words {
		if _, dup := present[w]; dup {
			continue
		}

		present[w] = struct{}{}
		added = append(added, w)
	}

	if len(added) == 0 {
		return added, nil
	}

	// Newest first: the batch goes to the front, with later batch entries
	// counting as more recent, matching rowid ordering in the sqlite store.
	updated := make([]string, 0, len(added)+len(doc.Words))
	for i := len(added) - 1; i >= 0; i-- {
		updated = append(updated, added[i])
	}
	updated = append(updated, doc.Words...)

	if err := s.write(ctx, document{Words: updated}, etag); err != nil {
		return nil, err
	}

	return added, nil
}

// RemoveWords drops each listed word from the document if present and
// overwrites it, returning how many existed. Absent words are no-ops; when
// nothing matched the document is left untouched.
func (s *Store) RemoveWords(ctx context.Context, words []string) (int, error) {
	doc, etag, err := s.read(ctx)
	if err != nil {
		return 0, err
	}

	targets := make(map[string]struct{}, len(words))
	for _, w := range words {
		targets[w] = struct{}{}
	}

	kept := make([]string, 0, len(doc.Words))
	removed := 0

	for _, w := range doc.Words {
		if _, hit := targets[w]; hit {
			removed++
			continue
		}

		kept = append(kept, w)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := s.write(ctx, document{Words: kept}, etag); err != nil {
		return 0, err
	}

	return removed, nil
}

// read fetches the current document and its ETag. A missing object is an
// empty set with no ETag, not an error.
func (s *Store) read(ctx context.Context) (document, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return document{Words: []string{}}, "", nil
		}

		return document{}, "", unavailable("fetching document", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return document{}, "", unavailable("reading document body", err)
	}

	var doc document
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return document{}, "", unavailable("decoding document", err)
		}
	}

	if doc.Words == nil {
		doc.Words = []string{}
	}

	etag := ""
	if out.ETag != nil {
		etag = *out.ETag
	}

	return doc, etag, nil
}

// write serializes the document and overwrites it at the fixed location.
// With conditional writes enabled the overwrite only lands if the document
// still carries the ETag observed by read; otherwise the caller gets
// domain.ErrConflict.
func (s *Store) write(ctx context.Context, doc document, etag string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return unavailable("encoding document", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}

	if s.conditional {
		if etag != "" {
			input.IfMatch = aws.String(etag)
		} else {
			input.IfNoneMatch = aws.String("*")
		}
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		if isPreconditionFailed(err) {
			s.logger.WarnContext(ctx, "conditional overwrite lost a race",
				slog.String("bucket", s.bucket),
				slog.String("key", s.key),
			)

			return domain.NewConflictError("blob",
				"word set changed between read and write, retry the request")
		}

		return unavailable("overwriting document", err)
	}

	return nil
}

// isPreconditionFailed reports whether err is the S3 412 for a failed
// IfMatch/IfNoneMatch condition.
func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed"
}

// unavailable maps a storage failure to the domain error taxonomy.
func unavailable(operation string, err error) error {
	return domain.NewUnavailableError("blob", fmt.Sprintf("%s: %v", operation, err))
}
