package main

import (
	"os"

	"idlglue/cmd"
)

func main() {
	os.Exit(cmd.RunGenerator())
}
