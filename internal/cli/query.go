package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/shelter-directory/internal/domain"
	"github.com/couchcryptid/shelter-directory/internal/render"
)

// ValidFormats defines the allowed query output formats.
var ValidFormats = []string{"text", "html"}

// QueryOptions holds the query command flags.
type QueryOptions struct {
	Search   string
	Village  string
	Division string
	Sort     string
	Locale   string
	Format   string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter and sort the collection like the listing page",
		Long: `Evaluate a search term, village and division filters and a sort mode
against the facility collection, and print the result as text or as the
list markup the page would show.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return runQuery(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "free-text search term")
	cmd.Flags().StringVar(&opts.Village, "village", "", "exact village (里) to keep")
	cmd.Flags().StringVar(&opts.Division, "division", "", "exact police division to keep")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(domain.SortDefault), "sort mode (default|capacity-asc|capacity-desc)")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "output locale (default $SITE_LOCALE)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|html)")

	return cmd
}

func (o *QueryOptions) query() domain.Query {
	q := domain.NewQuery().
		With(domain.DimensionVillage, o.Village).
		With(domain.DimensionDivision, o.Division)
	q.Search = o.Search
	q.Sort = domain.ParseSortMode(o.Sort)
	return q
}

func runQuery(cmd *cobra.Command, rootOpts *RootOptions, opts *QueryOptions) error {
	logger := rootOpts.logger(cmd.ErrOrStderr())
	s, err := rootOpts.load(cmd.Context(), logger)
	if err != nil {
		return err
	}
	if s.Err() != nil {
		return s.Err()
	}

	locale := opts.Locale
	if locale == "" && rootOpts.cfg != nil {
		locale = rootOpts.cfg.SiteLocale.String()
	}
	r := render.New(render.MatchLocale(locale))

	q := opts.query()
	results := domain.Evaluate(s.All(), q)
	logger.Debug("query evaluated", "search", q.Search, "sort", q.Sort, "results", len(results), "total", s.Len())

	page := r.View(results, s.Len())
	out := cmd.OutOrStdout()
	if opts.Format == "html" {
		markup, err := r.HTML(page)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, markup)
		return err
	}
	return writeText(out, page)
}

func writeText(w io.Writer, page render.Page) error {
	var b strings.Builder
	b.WriteString(page.Summary + "\n")
	if page.Empty {
		b.WriteString(page.Placeholder + "\n")
	}
	for _, c := range page.Cards {
		fmt.Fprintf(&b, "\n%s [%s]\n", c.Name, c.Badge)
		fmt.Fprintf(&b, "  %s\n", c.Address)
		fmt.Fprintf(&b, "  %s: %s\n", page.Labels.Capacity, c.Capacity)
		fmt.Fprintf(&b, "  %s: %s\n", page.Labels.Division, c.Division)
		fmt.Fprintf(&b, "  %s\n", c.DetailURL)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
