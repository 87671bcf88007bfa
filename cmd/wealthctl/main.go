package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/wealth-desk/client/internal/config"
	"github.com/zhouzirui/wealth-desk/client/internal/service/analytics"
	"github.com/zhouzirui/wealth-desk/client/internal/service/conversation"
	"github.com/zhouzirui/wealth-desk/client/internal/service/session"
	"github.com/zhouzirui/wealth-desk/client/internal/store/token"
	"github.com/zhouzirui/wealth-desk/client/internal/transport"
)

var (
	errNotLoggedIn    = errors.New("not logged in; run `wealthctl login` first")
	errSessionExpired = errors.New("session expired; run `wealthctl login` again")
)

// app holds the collaborators shared by every subcommand.
type app struct {
	cfg      *config.Config
	api      *transport.Client
	store    *token.BoltStore
	sessions *session.Manager
	convo    *conversation.Client
	stats    *analytics.Service

	baseURL   string
	storePath string
	timeout   time.Duration
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "wealthctl",
		Short:        "Terminal client for the wealth portfolio dashboard API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.baseURL, "api-url", "", "API base URL (default from API_BASE_URL)")
	root.PersistentFlags().StringVar(&a.storePath, "token-store", "", "credential store file (default from TOKEN_STORE_PATH)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "HTTP timeout (default from API_TIMEOUT_SECONDS)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "print diagnostic logs")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newAskCommand(a),
		newConversationsCommand(a),
		newSummaryCommand(a),
		newTopCommand(a),
		newClientsCommand(a),
		newManagersCommand(a),
		newInitDataCommand(a),
	)
	return root
}

func (a *app) init() error {
	if err := godotenv.Load(); err != nil && a.verbose {
		log.Printf("warning: failed to load .env file: %v", err)
	}
	if !a.verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.baseURL != "" {
		cfg.API.BaseURL = a.baseURL
	}
	if a.storePath != "" {
		cfg.API.TokenStorePath = a.storePath
	}
	if a.timeout > 0 {
		cfg.API.Timeout = a.timeout
	}
	a.cfg = cfg

	api, err := transport.New(transport.Options{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout})
	if err != nil {
		return err
	}
	store, err := token.NewBoltStore(cfg.API.TokenStorePath)
	if err != nil {
		return err
	}

	a.api = api
	a.store = store
	a.sessions = session.NewManager(api, store)
	a.convo = conversation.NewClient(api)
	a.stats = analytics.NewService(api)
	return nil
}

// requireSession restores the persisted credential and fails unless it
// resolves to an identity.
func (a *app) requireSession(ctx context.Context) error {
	a.sessions.Restore(ctx)
	if !a.sessions.Authorized() {
		return errNotLoggedIn
	}
	return nil
}

// explain logs the session out when the server rejects the credential
// mid-command and tells the user to log in again.
func (a *app) explain(err error) error {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		a.sessions.Logout()
		return fmt.Errorf("%w (%s)", errSessionExpired, apiErr.Detail)
	}
	return err
}
