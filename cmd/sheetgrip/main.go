package main

import (
	"fmt"
	"os"
)

func main() {
	var app AppSettings
	if err := app.Commandline(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "sheetgrip: %v\n", err)
		os.Exit(2)
	}
	os.Exit(app.Run())
}
