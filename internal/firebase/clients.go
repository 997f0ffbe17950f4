package firebase

import (
	"context"
	"fmt"

	"fitness-tracker/backend/internal/config"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// Clients bundles the Google clients used by the API process.
type Clients struct {
	App  *firebase.App
	Auth *auth.Client
	// IAM is nil unless class image uploads are configured.
	IAM *credentials.IamCredentialsClient
}

func NewClients(ctx context.Context, cfg config.Config) (*Clients, error) {
	opts, err := CredentialOptions(cfg)
	if err != nil {
		return nil, err
	}

	app, err := NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}

	c := &Clients{App: app, Auth: authClient}
	if cfg.UploadsEnabled() {
		iamClient, err := credentials.NewIamCredentialsClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("iam credentials: %w", err)
		}
		c.IAM = iamClient
	}
	return c, nil
}

func (c *Clients) Close() {
	if c == nil || c.IAM == nil {
		return
	}
	_ = c.IAM.Close()
}
