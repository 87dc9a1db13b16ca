package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/marketfoods/storefront/internal/cart"
	"github.com/marketfoods/storefront/internal/catalog"
	"github.com/marketfoods/storefront/internal/checkout"
	"github.com/marketfoods/storefront/internal/contact"
	"github.com/marketfoods/storefront/internal/history"
	"github.com/marketfoods/storefront/internal/identity"
	"github.com/marketfoods/storefront/internal/orders"
	"github.com/marketfoods/storefront/internal/seller"
	"github.com/marketfoods/storefront/pkg/api"
	"github.com/marketfoods/storefront/pkg/config"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
	"github.com/marketfoods/storefront/pkg/localstore"
	"github.com/marketfoods/storefront/pkg/logger"
)

// application holds the wired services every command runs against. It is
// built once in the root command's PersistentPreRunE so subcommands can
// assume a loaded config and an open state store.
type application struct {
	cfg      *config.Config
	logg     *logger.Logger
	state    localstore.Store
	session  *identity.Session
	client   *api.Client
	carts    cart.Service
	archive  *history.Log
	catalog  catalog.Service
	checkout checkout.Service
	orders   orders.Service
	seller   seller.Service
	contact  contact.Service
}

var app *application

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Command-line storefront for the foodstore marketplace",
	Long: `storefront browses the marketplace catalog, manages a locally
persisted shopping cart and places orders against the backend API.

Cart contents, order history and the login session live in a local state
store (file by default, configurable via STOREFRONT_STATE_DRIVER) so
they survive between invocations, the same way a browser keeps them
across page loads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		built, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		app = built
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.state.Close()
	},
}

func newApplication(ctx context.Context) (*application, error) {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	state, err := localstore.Open(ctx, cfg.State)
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}

	// The client asks the session for the current user id on every
	// request; the session in turn talks to the backend through the
	// client. The closure breaks the cycle.
	var session *identity.Session
	client, err := api.New(api.Options{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Identity: func() int {
			if session == nil {
				return 0
			}
			return session.UserID(context.Background())
		},
		Logger: logg,
	})
	if err != nil {
		return nil, err
	}

	session, err = identity.NewSession(state, client, logg)
	if err != nil {
		return nil, err
	}

	carts, err := cart.NewService(state, logg)
	if err != nil {
		return nil, err
	}
	archive, err := history.NewLog(state, logg, cfg.Cart.HistoryLimit)
	if err != nil {
		return nil, err
	}
	catalogSvc, err := catalog.NewService(client, carts, session)
	if err != nil {
		return nil, err
	}
	checkoutSvc, err := checkout.NewService(carts, client, archive, logg)
	if err != nil {
		return nil, err
	}
	ordersSvc, err := orders.NewService(client, archive, logg)
	if err != nil {
		return nil, err
	}
	sellerSvc, err := seller.NewService(client, session)
	if err != nil {
		return nil, err
	}
	contactSvc, err := contact.NewService(client, session)
	if err != nil {
		return nil, err
	}

	return &application{
		cfg:      cfg,
		logg:     logg,
		state:    state,
		session:  session,
		client:   client,
		carts:    carts,
		archive:  archive,
		catalog:  catalogSvc,
		checkout: checkoutSvc,
		orders:   ordersSvc,
		seller:   sellerSvc,
		contact:  contactSvc,
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		msg := err.Error()
		if typed := pkgerrors.As(err); typed != nil {
			msg = pkgerrors.UserMessage(typed)
		}
		fmt.Fprintln(os.Stderr, "Error:", msg)
		if app != nil {
			app.logg.Error(ctx, "command failed", err)
		}
		os.Exit(1)
	}
}
