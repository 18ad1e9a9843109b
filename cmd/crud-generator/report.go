package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"crud-generator/internal/diagnostic"
)

var (
	infoLabel    = color.New(color.FgCyan).Sprint("info:")
	warningLabel = color.New(color.FgYellow, color.Bold).Sprint("warning:")
	errorLabel   = color.New(color.FgRed, color.Bold).Sprint("error:")
)

// printDiagnostics prints warnings, and infos too when verbose is set.
func printDiagnostics(w io.Writer, d diagnostic.Diagnostics, verbose bool) {
	if verbose {
		for _, info := range d.Infos {
			fmt.Fprintln(w, infoLabel, info.String())
		}
	}

	for _, warn := range d.Warnings {
		fmt.Fprintln(w, warningLabel, warn.String())
	}
}

// printError prints every error joined into err on its own line.
func printError(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printError(w, e)
		}

		return
	}

	fmt.Fprintln(w, errorLabel, err)
}
