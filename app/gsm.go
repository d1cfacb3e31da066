package app

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	log "github.com/sirupsen/logrus"
)

func accessSecretVersion(client *secretmanager.Client, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", Config.GoogleSecretManager.ProjectId, name),
	}

	result, err := client.AccessSecretVersion(context.Background(), req)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(result.Payload.Data)), nil
}

// readKeysFromGSM fills the wallet mnemonic and mongo uri from Google Secret
// Manager when they are not already configured.
func readKeysFromGSM() {
	if !Config.GoogleSecretManager.Enabled {
		log.Debug("[GSM] Google Secret Manager is disabled")
		return
	}

	if Config.GoogleSecretManager.ProjectId == "" {
		log.Fatalf("[GSM] ProjectId is empty")
	}

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		log.Fatalf("[GSM] Failed to create secretmanager client: %v", err)
	}
	defer client.Close()

	if Config.Wallet.Mnemonic == "" {
		if Config.GoogleSecretManager.MnemonicSecretName == "" {
			log.Fatalf("[GSM] Mnemonic secret name is empty")
		}

		log.Debug("[GSM] Reading wallet mnemonic")
		Config.Wallet.Mnemonic, err = accessSecretVersion(client, Config.GoogleSecretManager.MnemonicSecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access wallet mnemonic: %v", err)
		}
		log.Info("[GSM] Successfully read wallet mnemonic")
	}

	if Config.MongoDB.URI == "" && Config.GoogleSecretManager.MongoSecretName != "" {
		log.Debug("[GSM] Reading mongo uri")
		Config.MongoDB.URI, err = accessSecretVersion(client, Config.GoogleSecretManager.MongoSecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access mongo uri: %v", err)
		}
		log.Info("[GSM] Successfully read mongo uri")
	}
}
