// Command socialnet runs social network command scripts.
package main

import (
	"fmt"
	"os"

	"github.com/88subarno88/SocialNet-Simulator/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "socialnet:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
