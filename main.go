package main

import (
	"fmt"
	"os"

	"github.com/daandouwe/rnng/app"
)

func main() {
	if err := app.AllCommands().Dispatch(os.Args[1:]); err != nil {
		fmt.Printf("**err**: %v\n", err)
		os.Exit(1)
	}
}
