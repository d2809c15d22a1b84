// Package output formats devlogs command results for people and for scripts.
//
// Every command writes through a Printer. In JSON mode (the --json flag)
// results are single JSON documents and errors are {"error": "...", "code": N}.
// Otherwise output is plain text styled with lipgloss when the writer is a
// terminal:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Created " + path, "path": path})
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, no repository, already initialized
//	output.ExitSystemError // 2: I/O, init or sync failure, corrupt files
//	output.ExitConflict    // 3: issue counter locked
//
// FromError maps repository errors onto these codes.
package output
