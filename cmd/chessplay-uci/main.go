// Command chessplay-uci runs the engine as a UCI-speaking subprocess,
// reading commands from stdin and writing responses to stdout.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/chessplay-opponent/internal/engine"
	"github.com/hailam/chessplay-opponent/internal/uci"
)

var (
	ttSize    = flag.Int("hash", engine.DefaultTTSizeMB, "transposition table size in MB")
	evaluator = flag.String("evaluator", "mobility", "evaluator to use: mobility or capture")
	hashFile  = flag.String("hashfile", "", "optional BadgerDB path for persistent hash")
)

func main() {
	flag.Parse()

	var eval engine.Evaluator
	switch *evaluator {
	case "capture":
		eval = engine.CaptureEvaluator{}
	case "mobility":
		eval = engine.MobilityEvaluator{}
	default:
		log.Printf("unknown evaluator %q, defaulting to mobility", *evaluator)
		eval = engine.MobilityEvaluator{}
	}

	eng := engine.NewEngine(eval, *ttSize)
	protocol := uci.New(eng)

	if *hashFile != "" {
		protocol.SetHashFile(*hashFile)
	}

	protocol.Run()
	os.Exit(0)
}
