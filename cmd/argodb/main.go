// Package main provides the argodb CLI application.
// argodb ingests Argo float NetCDF observation files into PostgreSQL.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
