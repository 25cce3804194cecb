package main

import (
	"github.com/dyike/TickerTalk/internal/cli"
)

func main() {
	cli.Run()
}
