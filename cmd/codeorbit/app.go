package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/codeorbit/codeorbit-client/internal/config"
	"github.com/codeorbit/codeorbit-client/internal/loading"
	"github.com/codeorbit/codeorbit-client/internal/output"
	"github.com/codeorbit/codeorbit-client/internal/payment"
	"github.com/codeorbit/codeorbit-client/internal/requester"
	"github.com/codeorbit/codeorbit-client/internal/session"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// deps is everything a command can use once the fx graph is built.
type deps struct {
	Service *api.Service
	Flow    *payment.Flow
	Session session.Store
	Loading *loading.Coordinator
}

// traceLoader prints every busy indicator transition after the command.
var traceLoader bool

func newDeps() (*deps, error) {
	var d deps
	app := fx.New(
		fx.NopLogger,
		config.Module(cfg),
		session.Module,
		loading.Module,
		requester.Module,
		api.Module,
		payment.Module,
		fx.Populate(&d.Service, &d.Flow, &d.Session, &d.Loading),
	)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}
	return &d, nil
}

// run wraps a command body that needs the client.
func run(fn func(cmd *cobra.Command, args []string, d *deps) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		if !traceLoader {
			return fn(cmd, args, d)
		}

		recorder := &loading.Recorder{}
		unsubscribe := d.Loading.Subscribe(recorder)
		err = fn(cmd, args, d)
		unsubscribe()
		printLoaderTrace(recorder.States())
		return err
	}
}

func printLoaderTrace(states []loading.State) {
	data := pterm.TableData{{"#", "IN FLIGHT", "VISIBLE", "MESSAGE"}}
	for i, s := range states {
		data = append(data, []string{strconv.Itoa(i + 1), strconv.Itoa(s.InFlight), strconv.FormatBool(s.Visible), s.Message})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(os.Stderr, table)
}

func render(v interface{}) error {
	return output.Render(os.Stdout, cfg.Output.Format, v)
}
