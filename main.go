package main

import "github.com/linanwx/golaunchd/cmd"

func main() {
	cmd.Execute()
}
