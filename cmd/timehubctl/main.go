// Command timehubctl runs the sleep-cycle calculator and manages the ambient
// sound cache from a terminal.
package main

import (
	"fmt"
	"os"
	"time"
)

const appVersion = "0.3.0"

func main() {
	cmd := newRootCmd(time.Now)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
