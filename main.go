package main

import (
	"os"
	"runtime/debug"

	"ledgerscan/cmd"
	"ledgerscan/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("LEDGERSCAN CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
