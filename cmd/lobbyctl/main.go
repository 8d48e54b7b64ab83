package main

import "github.com/miikama/game-lobby-REST-backend/internal/cli"

func main() {
	cli.Execute()
}
