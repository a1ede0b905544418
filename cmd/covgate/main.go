package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/LambdaTest/covgate/pkg/errs"
)

// Main function just executes root command `covgate`
// this project structure is inspired from `cobra` package
func main() {
	if err := RootCommand().Execute(); err != nil {
		if errors.Is(err, errs.ErrThresholdNotMet) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "[Error] %v\n", err)
		os.Exit(2)
	}
}
