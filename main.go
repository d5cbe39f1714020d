package main

import "github.com/theirongolddev/orgtrack/cmd"

func main() {
	cmd.Execute()
}
