// Package main provides the tabslice command-line interface.
//
// tabslice keeps labeled two-dimensional tables in a local parquet store and
// slices them by named index levels. Row and column selectors name the levels
// they constrain; every other level passes through unfiltered.
//
// The main binary supports multiple subcommands:
//   - seed: Write an hourly demo table to the store
//   - slice: Slice a stored table and print or save the result
//   - inspect: Show size, parquet metadata and schema of a stored table
//   - export: Export a stored table as CSV
//   - version: Print build information
package main
