package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/sheets"
)

var AuthoriseCmd = Authorise{
	command: newCommand(),
	port:    0,
	browser: true,
}

type Authorise struct {
	command
	port    int
	browser bool
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises sheets-reshape to access Google Sheets"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() string {
	return strings.Join([]string{
		"Runs the OAuth2 installed application flow for the Google Sheets and Drive APIs and saves the",
		"authorisation tokens to the tokens directory. The authorisation page is opened in the default",
		"browser and redirects to a temporary HTTP server on localhost.",
		"",
		"Examples:",
		`  sheets-reshape authorise --credentials "credentials.json"`,
	}, "\n")
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("authorise")

	flagset.IntVar(&cmd.port, "port", cmd.port, "localhost port for the OAuth2 redirect. Defaults to any free port")
	flagset.BoolVar(&cmd.browser, "browser", cmd.browser, "Opens the authorisation page in the default browser")

	return flagset
}

func (cmd *Authorise) Execute(ctx context.Context, options *Options) error {
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	config, err := oauthConfig(cmd.credentials, []string{sheets.SHEETS, sheets.DRIVE})
	if err != nil {
		return fmt.Errorf("invalid credentials (%w)", err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", cmd.port))
	if err != nil {
		return err
	}

	state, err := nonce()
	if err != nil {
		return err
	}

	config.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr())

	codes := make(chan string, 1)
	srv := &http.Server{
		Handler:           callback(state, codes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Warnf("%v", err)
		}
	}()

	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	fmt.Println()
	fmt.Println("  Open the following link in your browser to authorise access:")
	fmt.Println()
	fmt.Printf("  %v\n", url)
	fmt.Println()

	if cmd.browser {
		if err := open(url); err != nil {
			log.Debugf("could not open browser (%v)", err)
		}
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("authorisation cancelled")

	case code := <-codes:
		token, err := config.Exchange(ctx, code)
		if err != nil {
			return fmt.Errorf("unable to retrieve tokens (%w)", err)
		}

		return saveToken(tokensFile(cmd.credentials, cmd.tokensDir()), token)
	}
}

// callback handles the OAuth2 redirect, passing on the authorisation code if the state matches.
func callback(state string, codes chan<- string) http.HandlerFunc {
	return func(w http.ResponseWriter, rq *http.Request) {
		if rq.FormValue("state") != state {
			http.Error(w, "invalid state", http.StatusBadRequest)
			return
		}

		if reason := rq.FormValue("error"); reason != "" {
			http.Error(w, fmt.Sprintf("authorisation failed (%s)", reason), http.StatusForbidden)
			return
		}

		code := rq.FormValue("code")
		if code == "" {
			http.Error(w, "missing authorisation code", http.StatusBadRequest)
			return
		}

		select {
		case codes <- code:
			fmt.Fprintln(w, "sheets-reshape is authorised - you can close this window")
		default:
			http.Error(w, "already authorised", http.StatusConflict)
		}
	}
}

func nonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

func open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
