package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/verdantleaf/storefront/pkg/config"
	"github.com/verdantleaf/storefront/pkg/errors"
	"github.com/verdantleaf/storefront/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logg.Error(ctx, "error during shutdown", err)
		}
	}()

	if err := dispatch(ctx, a, args[0], args[1:]); err != nil {
		dump := errors.Dump(err)
		logg.Debug(logg.WithFields(ctx, map[string]any{
			"code":  dump.Code,
			"chain": dump.Chain,
		}), "command failed")
		fmt.Fprintln(os.Stderr, friendlyMessage(err))
		a.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: storefront <command> [flags]

commands:
  login            sign in with email and password
  logout           sign out (use -admin for the admin session)
  whoami           show the current identities
  register         create an account
  verify-email     confirm an email address
  forgot-password  request a password reset
  reset-password   set a new password with a reset token
  products         browse the catalog
  product          show one product
  categories       list categories
  cart             show | add | update | remove | refresh
  addresses        list | add | edit | delete
  checkout         place a cash-on-delivery order
  orders           list orders or show one
  wishlist         show | add | remove
  referrals        show referral code and earnings
  wallet           show wallet balance
  admin            admin login, back-office views and edits`)
}
