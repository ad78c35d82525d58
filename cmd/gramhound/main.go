package main

import "github.com/pcasas/gramhound/internal/cli"

func main() {
	cli.Execute()
}
