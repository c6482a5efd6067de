package main

import "github.com/pointtaken/timesheet/cmd"

func main() {
	cmd.Execute()
}
