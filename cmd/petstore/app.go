package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"petstore-client/internal/adapters/api/petstore"
	"petstore-client/internal/adapters/display/terminal"
	"petstore-client/internal/domain/cart"
	"petstore-client/internal/domain/checkout"
	"petstore-client/internal/domain/session"
	"petstore-client/internal/platform/config"
	"petstore-client/internal/platform/logger"
)

// app agrupa las dependencias que comparten los comandos.
type app struct {
	out    io.Writer
	errOut io.Writer

	// openStore es reemplazable en tests.
	openStore func(context.Context, config.Client) (*openedStore, error)

	log      logger.Logger
	store    *openedStore
	api      *petstore.Client
	session  *session.Manager
	cart     *cart.Service
	checkout *checkout.Service
}

func (a *app) init(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	a.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: logger.ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    "petstore",
		Out:    a.errOut,
	})

	a.store, err = a.openStore(ctx, cfg)
	if err != nil {
		return err
	}

	a.session = session.NewManager(a.store, a.log)
	a.api, err = petstore.NewClient(petstore.Config{
		ServerURL: cfg.ServerURL,
		Timeout:   cfg.HTTPTimeout,
	}, a.session, a.log)
	if err != nil {
		return err
	}

	a.cart = cart.NewService(a.store, terminal.NewBadge(a.errOut), a.log)
	a.checkout = checkout.NewService(a.cart, a.api, a.log)
	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil && a.log != nil {
		a.log.Warn("close store failed", map[string]any{"error": err})
	}
	a.store = nil
}

// execute corre el comando y cierra el store, falle o no.
func execute(root *cobra.Command, a *app) error {
	defer a.close()
	return root.Execute()
}

// printJSON indenta la respuesta cruda de la API.
func (a *app) printJSON(raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := a.out.Write(buf.Bytes())
	return err
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{out: out, errOut: errOut, openStore: openStore}

	root := &cobra.Command{
		Use:           "petstore",
		Short:         "Pet store client",
		Long:          "Command line client for the pet store API: catalog, session, cart and orders.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newRegisterCmd(a),
		newProfileCmd(a),
		newPetsCmd(a),
		newCategoriesCmd(a),
		newOrdersCmd(a),
		newCartCmd(a),
		newCheckoutCmd(a),
	)
	return root, a
}

func requireLogin(ctx context.Context, a *app) error {
	if !a.session.IsAuthenticated(ctx) {
		return fmt.Errorf("not logged in; run `petstore login` first")
	}
	return nil
}
