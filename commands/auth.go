package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/twyst/sheets-reshape/log"
)

// authorize returns an HTTP client using the OAuth2 tokens previously saved by the 'authorise'
// command.
func authorize(ctx context.Context, credentials string, scopes []string, dir string) (*http.Client, error) {
	config, err := oauthConfig(credentials, scopes)
	if err != nil {
		return nil, err
	}

	tokens := tokensFile(credentials, dir)

	token, err := tokenFromFile(tokens)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("no authorisation tokens in %s - run '%s authorise' first", dir, APP)
	} else if err != nil {
		return nil, err
	}

	log.Debugf("using authorisation tokens %s", tokens)

	return config.Client(ctx, token), nil
}

func oauthConfig(credentials string, scopes []string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, scopes...)
}

// tokensFile returns the path of the tokens file for a credentials file e.g.
// credentials.json -> <dir>/credentials.tokens.
func tokensFile(credentials string, dir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(dir, fmt.Sprintf("%s.tokens", name))
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("invalid tokens file %s (%w)", file, err)
	}

	return &token, nil
}

func saveToken(file string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save OAuth2 tokens (%w)", err)
	}

	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return err
	}

	log.Infof("saved authorisation tokens to %s", file)

	return nil
}
