package main

import (
	_ "net/http/pprof"

	"github.com/mbosio85/gridss/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
