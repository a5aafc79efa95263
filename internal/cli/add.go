package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/aerohub/internal/submission"
)

func newAddCommand() *cobra.Command {
	values := map[submission.Field]*string{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an airport to the catalog",
		Long: `Add an airport to the catalog.

The form starts with country US and timezone America/New_York. ICAO always
equals the key. On success the first page of the catalog is shown again as
the server now reports it.`,
		Example: `  aerohub add --key 01ID --name "Lava Hot Springs Airport" --city "Lava Hot Springs" \
    --state Idaho --elevation 5268 --lat 42.6082 --lon -112.032 --timezone America/Boise`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			edits := map[submission.Field]string{}
			for f, v := range values {
				if cmd.Flags().Changed(string(f)) {
					edits[f] = *v
				}
			}
			return runAdd(cmd, edits)
		},
	}

	for _, f := range submission.Fields {
		if f == submission.FieldICAO {
			continue
		}
		values[f] = cmd.Flags().String(string(f), "", fmt.Sprintf("%s (%s tab)", f, submission.TabOf(f)))
	}

	return cmd
}

func runAdd(cmd *cobra.Command, edits map[submission.Field]string) error {
	sess, err := sessionFrom(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if err := sess.Submit.OpenForm(); err != nil {
		return err
	}
	for _, f := range submission.Fields {
		v, ok := edits[f]
		if !ok {
			continue
		}
		if err := sess.Submit.EditField(f, v); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}

	_, _ = fmt.Fprintln(out, "Adding airport...")
	err = sess.Submit.Submit(cmd.Context())

	var vf *submission.ValidationFailure
	if errors.As(err, &vf) {
		_, _ = fmt.Fprintln(out, "The airport was not sent:")
		renderFieldErrors(out, vf.Errors)
		return errors.New("validation failed")
	}

	for _, n := range sess.Feed.Items() {
		renderNotification(out, n)
	}
	if err != nil {
		return err
	}

	renderPage(out, sess.Query.Page(), sess.Query.Params())
	return nil
}
