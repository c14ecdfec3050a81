package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"flightbook-service/internal/infrastructure/config"
)

// Fetches an Amadeus access token with the configured client credentials and
// prints it. Handy for setting AMADEUS_ACCESS_TOKEN during development.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AmadeusClientID == "" || cfg.AmadeusClientSecret == "" {
		log.Fatal("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set")
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.AmadeusClientID,
		ClientSecret: cfg.AmadeusClientSecret,
		TokenURL:     cfg.AmadeusBaseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	token, err := cc.Token(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch token: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\n", token.AccessToken)
	fmt.Printf("Expires At:   %s\n\n", token.Expiry)
}
