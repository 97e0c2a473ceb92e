package main

import (
	"os"

	"github.com/JA3G3R/lintzard/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
