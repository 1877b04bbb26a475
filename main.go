// Command chessplay-opponent is the engine's default UCI entry point,
// started with the mobility/coverage evaluator and default table sizes.
// Use cmd/chessplay-uci for flag-configurable startup.
package main

import (
	"github.com/hailam/chessplay-opponent/internal/engine"
	"github.com/hailam/chessplay-opponent/internal/uci"
)

func main() {
	eng := engine.NewEngine(engine.MobilityEvaluator{}, engine.DefaultTTSizeMB)
	protocol := uci.New(eng)
	protocol.Run()
}
