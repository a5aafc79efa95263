package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/query"
)

type listOptions struct {
	page   int
	sort   string
	desc   bool
	search string
	state  string
	output string
}

func newListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of airports",
		Long: `List one page of the catalog.

Pages are numbered from 1. Sorting is ascending unless --desc is given.`,
		Example: `  aerohub list --sort elevation --desc
  aerohub list --search field --page 2 --page-size 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 1, "page number, starting at 1")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort field")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&opts.search, "search", "", "free-text search")
	cmd.Flags().StringVar(&opts.state, "state", "", "only airports in this state")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format (table|json)")

	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(models.SortFields))
		for i, f := range models.SortFields {
			out[i] = string(f)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func listParams(opts *listOptions, pageSize int) (query.ViewParameters, error) {
	params := query.DefaultViewParameters()
	params.PageSize = pageSize
	if opts.page < 1 {
		return params, fmt.Errorf("--page must be at least 1, got %d", opts.page)
	}
	params.PageIndex = opts.page - 1
	params.SearchText = opts.search
	params.State = opts.state

	if opts.sort != "" {
		field, err := models.ParseSortField(opts.sort)
		if err != nil {
			return params, fmt.Errorf("%w: %q", err, opts.sort)
		}
		params.SortField = field
		params.SortDirection = models.SortAsc
		if opts.desc {
			params.SortDirection = models.SortDesc
		}
	}
	return params, nil
}

func runList(cmd *cobra.Command, opts *listOptions) error {
	sess, err := sessionFrom(cmd)
	if err != nil {
		return err
	}

	params, err := listParams(opts, sess.Config.UI.PageSize)
	if err != nil {
		return err
	}

	page, err := sess.Client.List(cmd.Context(), params.Query())
	if err != nil {
		return err
	}

	switch opts.output {
	case "json":
		return renderJSON(cmd.OutOrStdout(), page)
	case "table", "":
		renderPage(cmd.OutOrStdout(), page, params)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}
}
