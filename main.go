package main

import "github.com/zjrosen/quillkey/cmd"

func main() {
	cmd.Execute()
}
