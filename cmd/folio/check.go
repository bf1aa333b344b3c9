package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	folio "github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/content"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [post|project]...",
		Short: "Load every document and report the ones that fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			report := func(_ context.Context, r folio.CheckReport) {
				fmt.Fprintf(out, "%s: %d loaded, %d failed\n", r.Kind, r.Loaded, len(r.Failures))
				for _, failure := range r.Failures {
					fmt.Fprintf(out, "  %s: %v\n", failure.Path, failure.Err)
				}
			}
			m, err := a.module(folio.WithCheckReporter(report))
			if err != nil {
				return err
			}

			kinds := args
			if len(kinds) == 0 {
				if m.Posts() != nil {
					kinds = append(kinds, content.KindPost)
				}
				if m.Projects() != nil {
					kinds = append(kinds, content.KindProject)
				}
			}

			var errs []error
			for _, kind := range kinds {
				if err := m.Check(cmd.Context(), kind); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}
