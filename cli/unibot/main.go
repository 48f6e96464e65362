package main

import (
	"os"

	unibotcmder "github.com/papercomputeco/unibot/cmd/unibot"
)

func main() {
	cmd := unibotcmder.NewUnibotCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
