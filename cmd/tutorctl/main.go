package main

import "tutorly/cli"

func main() {
	cli.Execute()
}
