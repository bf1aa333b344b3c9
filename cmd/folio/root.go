package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	folio "github.com/goliatone/go-folio"
)

type app struct {
	cfgFile  string
	logLevel string
	cfg      folio.Config
	opts     []folio.Option
}

func newRootCmd(opts ...folio.Option) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Serve blog posts and projects from Markdown directories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./folio.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newCheckCmd(a),
	)
	return root
}

func (a *app) loadConfig() error {
	cfg, err := folio.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if level := strings.TrimSpace(a.logLevel); level != "" {
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	return nil
}

func (a *app) module(extra ...folio.Option) (*folio.Module, error) {
	opts := append([]folio.Option{}, a.opts...)
	return folio.New(a.cfg, append(opts, extra...)...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
