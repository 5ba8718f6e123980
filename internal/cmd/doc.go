// Package cmd provides the command-line interface implementation for tabslice.
//
// Each subcommand lives in its own file with a constructor returning a
// *cobra.Command. The root command loads the YAML configuration before any
// subcommand runs and opens the parquet store on demand:
//   - seed: write a demo hourly-by-location frame to the store
//   - slice: slice a stored frame by named row and column levels
//   - inspect: report size, timestamps, parquet metadata and schema of a blob
//   - export: write a stored frame as CSV
//   - version: print build information
//
// Commands are executed through Fang for styled help and error output.
package cmd
