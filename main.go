package main

import "github.com/quay-qe/github-changes/cmd"

func main() {
	cmd.Execute()
}
