package main

import (
	"fmt"

	"github.com/spf13/cobra"

	folio "github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/responses"
)

func newListCmd(a *app) *cobra.Command {
	opts := folio.ListOptions{}

	cmd := &cobra.Command{
		Use:       "list (post|project)",
		Short:     "Print one page of documents as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{content.KindPost, content.KindProject},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch args[0] {
			case content.KindPost:
				if m.Posts() == nil {
					return errKindDisabled(args[0])
				}
				page, err := m.Posts().Page(ctx, opts)
				if err != nil {
					return err
				}
				return writeJSON(out, pageOutput(page.Total, page.Page, page.PageSize, page.TotalPages, responses.Posts(page.Items)))
			case content.KindProject:
				if m.Projects() == nil {
					return errKindDisabled(args[0])
				}
				page, err := m.Projects().Page(ctx, opts)
				if err != nil {
					return err
				}
				return writeJSON(out, pageOutput(page.Total, page.Page, page.PageSize, page.TotalPages, responses.Projects(page.Items)))
			default:
				return fmt.Errorf("unknown kind %q", args[0])
			}
		},
	}
	cmd.Flags().IntVar(&opts.Page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "items per page")
	cmd.Flags().StringVar(&opts.Category, "category", "", "filter by category, tag or topic")
	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by text")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show (post|project) <slug>",
		Short: "Print one document as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch args[0] {
			case content.KindPost:
				if m.Posts() == nil {
					return errKindDisabled(args[0])
				}
				post, err := m.Posts().Get(ctx, args[1])
				if err != nil {
					return err
				}
				return writeJSON(out, responses.Post(post))
			case content.KindProject:
				if m.Projects() == nil {
					return errKindDisabled(args[0])
				}
				project, err := m.Projects().Get(ctx, args[1])
				if err != nil {
					return err
				}
				return writeJSON(out, responses.Project(project))
			default:
				return fmt.Errorf("unknown kind %q", args[0])
			}
		},
	}
}

type listOutput struct {
	Items      any `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

func pageOutput(total, page, size, pages int, items any) listOutput {
	return listOutput{Items: items, Total: total, Page: page, PageSize: size, TotalPages: pages}
}

func errKindDisabled(kind string) error {
	return fmt.Errorf("%s content is disabled", kind)
}
