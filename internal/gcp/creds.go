// Package gcp builds client options shared by the Google Cloud clients
// (Vision, Document AI, Text-to-Speech).
package gcp

import (
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
)

// ClientOptionsFromEnv resolves credentials in the order
// GOOGLE_CREDENTIALS (inline JSON), GOOGLE_APPLICATION_CREDENTIALS (path or JSON).
// It returns nil when neither is set, leaving Application Default Credentials to the client.
func ClientOptionsFromEnv() []option.ClientOption {
	if credJSON := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS")); credJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credJSON))}
	}
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

// ClientOptions prefers an API key and falls back to ClientOptionsFromEnv.
func ClientOptions(apiKey string) []option.ClientOption {
	if apiKey = strings.TrimSpace(apiKey); apiKey != "" {
		return []option.ClientOption{option.WithAPIKey(apiKey)}
	}
	return ClientOptionsFromEnv()
}

// RegionalEndpoint returns the endpoint option for a regional service such as
// "documentai" when location is not the default multi-region "us".
func RegionalEndpoint(service, location string) []option.ClientOption {
	if location == "" || location == "us" {
		return nil
	}
	return []option.ClientOption{option.WithEndpoint(fmt.Sprintf("%s-%s.googleapis.com:443", location, service))}
}

// HasCredentials reports whether any explicit credential source is configured.
func HasCredentials(apiKey string) bool {
	return len(ClientOptions(apiKey)) > 0
}
