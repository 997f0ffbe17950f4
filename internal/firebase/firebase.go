package firebase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"fitness-tracker/backend/internal/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// CredentialOptions decodes FIREBASE_SERVICE_ACCOUNT_B64. With no blob the
// SDK falls back to Application Default Credentials.
func CredentialOptions(cfg config.Config) ([]option.ClientOption, error) {
	blob := strings.TrimSpace(cfg.FirebaseCredentialsB64)
	if blob == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decode FIREBASE_SERVICE_ACCOUNT_B64: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON(raw)}, nil
}

func NewApp(ctx context.Context, cfg config.Config, opts ...option.ClientOption) (*firebase.App, error) {
	appCfg := &firebase.Config{}
	if cfg.ProjectID != "" {
		appCfg.ProjectID = cfg.ProjectID
	}
	if cfg.StorageBucket != "" {
		appCfg.StorageBucket = cfg.StorageBucket
	}
	return firebase.NewApp(ctx, appCfg, opts...)
}
