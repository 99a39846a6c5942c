package aws_handler

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

type SecretManager struct {
	svc *secretsmanager.SecretsManager
}

func NewSecretManager(svc *secretsmanager.SecretsManager) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(secretId string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	}

	result, err := s.svc.GetSecretValue(input)
	if err != nil {
		return "", err
	}

	return *result.SecretString, nil
}

// GetSecretJSON fetches a secret and unmarshals its JSON payload into result.
// Provider credential secrets (Plaid, Fyers) are stored this way.
func (s *SecretManager) GetSecretJSON(secretId string, result interface{}) error {
	value, err := s.GetSecretValue(secretId)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(value), result)
}
