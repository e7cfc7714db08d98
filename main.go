package main

import (
	"os"

	"github.com/tinovyatkin/writegood/cmd/writegood/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
