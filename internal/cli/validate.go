package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the collection and report records and defects",
		Long: `Load the facility collection exactly as the listing page would and
report the record count and every tolerated field defect. Exits non-zero
when the payload as a whole is rejected.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, rootOpts)
		},
	}
}

func runValidate(cmd *cobra.Command, opts *RootOptions) error {
	logger := opts.logger(cmd.ErrOrStderr())
	s, err := opts.load(cmd.Context(), logger)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "source: %s\n", s.Source())
	fmt.Fprintf(&b, "records: %d\n", s.Len())
	fmt.Fprintf(&b, "defects: %d\n", s.DefectCount())
	for _, d := range s.Defects() {
		fmt.Fprintf(&b, "  %s\n", d)
	}
	if s.Err() != nil {
		fmt.Fprintf(&b, "rejected: %v\n", s.Err())
	} else {
		b.WriteString("ok\n")
	}
	if _, werr := io.WriteString(cmd.OutOrStdout(), b.String()); werr != nil {
		return werr
	}
	return s.Err()
}
