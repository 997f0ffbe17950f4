package media

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const (
	defaultExpiry = 15 * time.Minute
	maxExpiry     = time.Hour
)

type Config struct {
	Bucket              string
	ServiceAccountEmail string
}

type SignedUploadInput struct {
	ContentType    string `json:"contentType"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty"`
}

type SignedUpload struct {
	URL        string `json:"url"`
	Method     string `json:"method"`
	ObjectPath string `json:"objectPath"`
	PublicURL  string `json:"publicUrl"`
	ExpiresAt  int64  `json:"expiresAt"`
}

// Signer produces a V4 signed URL; storage.SignedURL in production.
type Signer func(bucket, object string, opts *storage.SignedURLOptions) (string, error)

// BlobSigner signs bytes as the configured service account.
type BlobSigner interface {
	SignBlob(ctx context.Context, name string, payload []byte) ([]byte, error)
}

type Service struct {
	cfg   Config
	blobs BlobSigner
	sign  Signer
	newID func() string
	nowFn func() time.Time
}

func NewService(cfg Config, blobs BlobSigner) *Service {
	return &Service{
		cfg:   cfg,
		blobs: blobs,
		sign:  storage.SignedURL,
		newID: uuid.NewString,
		nowFn: time.Now,
	}
}

// ClassImageUpload returns a PUT URL for a new object under classes/.
func (s *Service) ClassImageUpload(ctx context.Context, in SignedUploadInput) (*SignedUpload, error) {
	if s.cfg.Bucket == "" || s.cfg.ServiceAccountEmail == "" || s.blobs == nil {
		return nil, ErrNotConfigured
	}

	ct := strings.TrimSpace(strings.ToLower(in.ContentType))
	if !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: contentType must be an image type", ErrBadRequest)
	}
	object := "classes/" + s.newID() + extensionFor(ct)

	expiry := time.Duration(in.ExpiresSeconds) * time.Second
	if expiry <= 0 || expiry > maxExpiry {
		expiry = defaultExpiry
	}
	exp := s.nowFn().Add(expiry)

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    ct,
		GoogleAccessID: s.cfg.ServiceAccountEmail,
		SignBytes: func(b []byte) ([]byte, error) {
			name := fmt.Sprintf("projects/-/serviceAccounts/%s", s.cfg.ServiceAccountEmail)
			return s.blobs.SignBlob(ctx, name, b)
		},
	}

	url, err := s.sign(s.cfg.Bucket, object, opts)
	if err != nil {
		return nil, fmt.Errorf("sign upload url: %w", err)
	}
	return &SignedUpload{
		URL:        url,
		Method:     "PUT",
		ObjectPath: object,
		PublicURL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.cfg.Bucket, object),
		ExpiresAt:  exp.Unix(),
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// IAMSigner adapts the IAM credentials client to BlobSigner.
type IAMSigner struct {
	Client *credentials.IamCredentialsClient
}

func (s IAMSigner) SignBlob(ctx context.Context, name string, payload []byte) ([]byte, error) {
	resp, err := s.Client.SignBlob(ctx, &credentialspb.SignBlobRequest{
		Name:    name,
		Payload: payload,
	})
	if err != nil {
		return nil, err
	}
	return resp.SignedBlob, nil
}
