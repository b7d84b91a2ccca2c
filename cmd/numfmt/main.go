// Command numfmt formats, parses and speaks numbers from the shell.
//
//	numfmt format --locale pt-BR --currency BRL 1234.5
//	numfmt parse --locale de-DE "1.234,50 €"
//	numfmt speak --locale en-US '$1.5k'
//	numfmt locales generate --cldr ./cldr/common --locale it-IT --out ./locales
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(newApp(os.Stdin, nil)).Execute(); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "numfmt: %v\n", err)
	os.Exit(1)
}
