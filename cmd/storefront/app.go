package main

import (
	"context"

	"go.uber.org/multierr"

	"github.com/verdantleaf/storefront/internal/api"
	"github.com/verdantleaf/storefront/internal/cart"
	"github.com/verdantleaf/storefront/internal/session"
	"github.com/verdantleaf/storefront/internal/storage"
	"github.com/verdantleaf/storefront/pkg/config"
	"github.com/verdantleaf/storefront/pkg/logger"
	"github.com/verdantleaf/storefront/pkg/money"
)

// app wires the full client stack: durable state, session, API client and
// cart. Commands run against one hydrated app instance.
type app struct {
	cfg     *config.Config
	logg    *logger.Logger
	medium  storage.Medium
	store   *storage.Store
	session *session.Manager
	client  *api.Client
	cart    *cart.Container
	syncer  *cart.Syncer
}

func newApp(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*app, error) {
	medium, err := storage.OpenMedium(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := storage.New(medium, logg)
	if err := store.Hydrate(ctx); err != nil {
		medium.Close()
		return nil, err
	}

	sess, err := session.NewManager(store, logg)
	if err != nil {
		medium.Close()
		return nil, err
	}

	client, err := api.NewClient(cfg.API, sess, logg)
	if err != nil {
		medium.Close()
		return nil, err
	}
	client.SetUnauthorizedHook(sess.UnauthorizedHook())

	local := cart.NewContainer(store, logg)
	syncer, err := cart.NewSyncer(client, local, sess, logg)
	if err != nil {
		medium.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logg:    logg,
		medium:  medium,
		store:   store,
		session: sess,
		client:  client,
		cart:    local,
		syncer:  syncer,
	}, nil
}

func (a *app) Close() error {
	var err error
	err = multierr.Append(err, a.medium.Close())
	return err
}

func (a *app) formatMoney(amount money.Amount) string {
	return amount.Format(a.cfg.Currency.Symbol)
}
