package main

import (
	"fmt"

	"lendpool/cmd"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
