/*
Package cli provides the output formatting, filter parsing and error helpers
used by the lpmon command.

Reports can be rendered as text, JSON or CSV:

	w, err := cli.NewReportWriter(cli.FormatText, verbose)
	if err != nil {
		return err
	}
	return w.WriteReport(os.Stdout, report)

The text form prints one line per provider when verbose and always ends
with the summary line:

	Bybit        | kind=CEX    | is_avail=false (MAINTENANCE) | recv=false send=false | 182ms | via=status/time
	[APPLIED] checked=45 ok=44 changed=1

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
*/
package cli
