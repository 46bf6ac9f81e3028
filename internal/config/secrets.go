package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var errNoSecretData = errors.New("secret has neither a string nor a binary value")

// SecretsOverlay is the JSON document stored in AWS Secrets Manager
type SecretsOverlay struct {
	DatabaseUser     string `json:"database_user"`
	DatabasePassword string `json:"database_password"`
	SportsDataAPIKey string `json:"sportsdata_api_key"`
}

// SecretsClient is the subset of the Secrets Manager API the overlay needs
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsEnabled reports whether the AWS overlay was requested via AWS_SECRETS_ENABLED
func SecretsEnabled() bool {
	return os.Getenv("AWS_SECRETS_ENABLED") == "true"
}

// LoadSecretsFromAWS fetches the configured secret and overlays it onto cfg.
// AWS_REGION and AWS_SECRET_NAME override the secrets section when set.
func LoadSecretsFromAWS(ctx context.Context, cfg *Config) error {
	region, name := secretLocation(cfg.Secrets)
	if region == "" || name == "" {
		return fmt.Errorf("secrets region and secret_name are required when AWS_SECRETS_ENABLED is true")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	return OverlaySecrets(ctx, secretsmanager.NewFromConfig(awsCfg), name, cfg)
}

// OverlaySecrets reads secretName through client and applies every non-empty value
func OverlaySecrets(ctx context.Context, client SecretsClient, secretName string, cfg *Config) error {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return fmt.Errorf("failed to get secret %q: %w", secretName, err)
	}

	secrets, err := decodeSecret(out)
	if err != nil {
		return err
	}

	overlaySecretsOnConfig(cfg, secrets)
	return nil
}

func secretLocation(s SecretsConfig) (region, name string) {
	region, name = s.Region, s.SecretName
	if v := os.Getenv("AWS_REGION"); v != "" {
		region = v
	}
	if v := os.Getenv("AWS_SECRET_NAME"); v != "" {
		name = v
	}
	return region, name
}

func decodeSecret(out *secretsmanager.GetSecretValueOutput) (*SecretsOverlay, error) {
	var raw []byte
	switch {
	case out.SecretString != nil:
		raw = []byte(*out.SecretString)
	case out.SecretBinary != nil:
		raw = out.SecretBinary
	default:
		return nil, errNoSecretData
	}

	var secrets SecretsOverlay
	if err := json.Unmarshal(raw, &secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secret: %w", err)
	}
	return &secrets, nil
}

func overlaySecretsOnConfig(cfg *Config, secrets *SecretsOverlay) {
	if secrets.DatabaseUser != "" {
		cfg.Database.User = secrets.DatabaseUser
	}
	if secrets.DatabasePassword != "" {
		cfg.Database.Password = secrets.DatabasePassword
	}
	if secrets.SportsDataAPIKey != "" {
		cfg.SportsData.APIKey = secrets.SportsDataAPIKey
	}
}
