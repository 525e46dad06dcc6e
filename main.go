package main

import "github.com/sharewarp/timetrack/cmd"

func main() {
	cmd.Execute()
}
