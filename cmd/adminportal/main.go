package main

import (
	"os"

	"github.com/hashicorp-forge/adminportal/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
