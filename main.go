package main

import "sitelog/cmd"

func main() {
	cmd.Execute()
}
