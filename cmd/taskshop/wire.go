package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nhle/taskshop/internal/app"
	"github.com/nhle/taskshop/internal/auth"
	"github.com/nhle/taskshop/internal/auth/identitytoolkit"
	"github.com/nhle/taskshop/internal/auth/local"
	"github.com/nhle/taskshop/internal/cart"
	"github.com/nhle/taskshop/internal/catalog"
	"github.com/nhle/taskshop/internal/credential"
	"github.com/nhle/taskshop/internal/logging"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/receipt"
	"github.com/nhle/taskshop/internal/store"
	"github.com/nhle/taskshop/internal/tasks"
)

const imapPasswordKey = "receipts-imap-password"

// env holds the services shared by every command.
type env struct {
	cfg     *model.AppConfig
	logger  *logrus.Logger
	logSink io.Closer
	store   *store.SQLiteStore
	catalog *catalog.Store
	tasks   *tasks.Ledger
}

// setup loads configuration and opens the store and logger.
func setup(configPath string) (*env, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, sink, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	s, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		sink.Close()
		return nil, fmt.Errorf("opening store: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"config": configPath,
		"store":  cfg.Store.Path,
		"auth":   cfg.Auth.Provider,
	}).Debug("starting")

	return &env{
		cfg:     cfg,
		logger:  logger,
		logSink: sink,
		store:   s,
		catalog: catalog.NewSeededStore(),
		tasks:   tasks.NewLedger(s, logger),
	}, nil
}

// Close releases the store and log file.
func (e *env) Close() error {
	err := e.store.Close()
	if cerr := e.logSink.Close(); err == nil {
		err = cerr
	}
	return err
}

// provider selects the identity provider named in auth.provider.
func (e *env) provider(sessions *credential.Vault) auth.Provider {
	switch e.cfg.Auth.Provider {
	case model.AuthProviderIdentityToolkit:
		client := identitytoolkit.NewClient(e.cfg.Auth.APIKey, e.cfg.Auth.BaseURL)
		return identitytoolkit.New(client, sessions, e.logger)
	default:
		return local.New(e.store, sessions, e.logger)
	}
}

// appDeps builds the interactive application's dependencies.
func (e *env) appDeps(startPath string) (app.Deps, error) {
	vault, err := credential.Open(model.ConfigDir())
	if err != nil {
		return app.Deps{}, err
	}

	outbox, err := receipt.NewOutbox(e.cfg.Receipts.Dir, e.cfg.Receipts.From)
	if err != nil {
		return app.Deps{}, fmt.Errorf("receipts: %w", err)
	}
	if imapCfg := e.cfg.Receipts.IMAP; imapCfg.Enabled() {
		password, err := vault.Get(imapPasswordKey)
		switch {
		case errors.Is(err, credential.ErrNotFound):
			e.logger.Warn("receipts.imap is set but no password is stored; run 'taskshop orders mailbox-password'")
		case err != nil:
			return app.Deps{}, err
		default:
			outbox.WithMirror(receipt.NewMailbox(imapCfg, password), e.logger)
		}
	}

	ledger := cart.NewLedger()
	pricing := cart.PricingFromConfig(e.cfg.Shop)

	return app.Deps{
		Catalog:   e.catalog,
		Cart:      ledger,
		Pricing:   pricing,
		Checkout:  cart.NewCheckout(ledger, pricing, e.store, outbox, e.logger),
		Tasks:     e.tasks,
		Guard:     auth.NewGuard(e.provider(vault), e.logger),
		PageSize:  e.cfg.Shop.PageSize,
		StartPath: startPath,
		Logger:    e.logger,
	}, nil
}
