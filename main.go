package main

import (
	"github.com/thermalkit/isp2go/cmd"
)

func main() {
	cmd.Execute()
}
