package main

import (
	"boscoin.io/council/cmd/council/cmd"
)

func main() {
	cmd.Execute()
}
