package uci

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hailam/chessplay-opponent/internal/board"
	"github.com/hailam/chessplay-opponent/internal/engine"
	"github.com/hailam/chessplay-opponent/internal/persist"
)

// UCI implements the Universal Chess Interface protocol over stdin/stdout.
type UCI struct {
	engine *engine.Engine

	hashFile  string
	hashStore *persist.HashStore

	searching     bool
	searchDone    chan struct{}
	stopRequested atomic.Bool
}

// New creates a new UCI protocol handler around an already-configured
// engine instance.
func New(eng *engine.Engine) *UCI {
	return &UCI{engine: eng}
}

// SetHashFile configures a persistent hash file before the UCI loop
// starts, loading any existing records immediately. Equivalent to
// receiving "setoption name HashFile value <path>" as the first command.
func (u *UCI) SetHashFile(path string) {
	u.hashFile = path
	u.loadHashFile()
}

// Run starts the UCI main loop, reading commands line by line until
// stdin closes or "quit" is received.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleQuit()
		case "setoption":
			u.handleSetOption(args)
		case "d":
			fmt.Println(u.engine.Position().String())
		case "perft":
			u.handlePerft(args)
		default:
			fmt.Printf("info string unrecognized command: %s\n", cmd)
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Println("id name ChessplayOpponent")
	fmt.Println("id author ChessPlay Team")
	fmt.Println()
	fmt.Printf("option name MaxDepth type spin default %d min %d max %d\n",
		engine.DefaultMaxDepth, engine.MinMaxDepth, engine.MaxMaxDepth)
	fmt.Printf("option name TTSize type spin default %d min %d max %d\n",
		engine.DefaultTTSizeMB, engine.MinTTSizeMB, engine.MaxTTSizeMB)
	fmt.Println("option name HashFile type string default <empty>")
	fmt.Println("option name Evaluator type combo default mobility var mobility var capture")
	fmt.Println("uciok")
}

func (u *UCI) handleNewGame() {
	u.flushHashFile()
	u.engine.NewGame()
	u.loadHashFile()
}

// handlePosition parses and installs a position. Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen tokens> [moves ...]
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var pos *board.Position
	var moveStart int

	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		moveStart = 1
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	case "fen":
		fenEnd := len(args)
		for i, arg := range args[1:] {
			if arg == "moves" {
				fenEnd = i + 1
				break
			}
		}
		fenStr := strings.Join(args[1:fenEnd], " ")
		parsed, err := board.ParseFEN(fenStr)
		if err != nil {
			fmt.Printf("info string invalid FEN: %v\n", err)
			return
		}
		pos = parsed
		moveStart = len(args)
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	default:
		return
	}

	// history records every position reached while replaying the moves
	// below, so a repetition that started earlier in the game is still
	// visible to the next search's draw detection.
	history := []uint64{pos.Hash}
	for i := moveStart; i < len(args); i++ {
		move := parseMove(pos, args[i])
		if move == board.NoMove {
			fmt.Printf("info string invalid move: %s\n", args[i])
			return
		}
		pos.MakeMove(move)
		history = append(history, pos.Hash)
	}
	// The position being installed is the last entry; only positions
	// strictly before it count as prior occurrences.
	history = history[:len(history)-1]

	u.engine.SetPosition(pos, history...)
}

// parseMove converts a UCI long-algebraic move string to a board.Move
// by matching it against the position's legal moves.
func parseMove(pos *board.Position, moveStr string) board.Move {
	if len(moveStr) < 4 {
		return board.NoMove
	}

	fromFile := int(moveStr[0] - 'a')
	fromRank := int(moveStr[1] - '1')
	toFile := int(moveStr[2] - 'a')
	toRank := int(moveStr[3] - '1')
	if fromFile < 0 || fromFile > 7 || fromRank < 0 || fromRank > 7 ||
		toFile < 0 || toFile > 7 || toRank < 0 || toRank > 7 {
		return board.NoMove
	}

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	var promo board.PieceType
	hasPromo := false
	if len(moveStr) == 5 {
		hasPromo = true
		switch moveStr[4] {
		case 'q':
			promo = board.Queen
		case 'r':
			promo = board.Rook
		case 'b':
			promo = board.Bishop
		case 'n':
			promo = board.Knight
		}
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if hasPromo {
			if m.IsPromotion() && m.Promotion() == promo {
				return m
			}
			continue
		}
		if !m.IsPromotion() {
			return m
		}
	}

	return board.NoMove
}

// goOptions holds parsed "go" command arguments.
type goOptions struct {
	depth     int
	wtime     time.Duration
	btime     time.Duration
	winc      time.Duration
	binc      time.Duration
	movesToGo int
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "wtime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.wtime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "btime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.btime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "winc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.winc = time.Duration(ms) * time.Millisecond
				i++
			}
		case "binc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.binc = time.Duration(ms) * time.Millisecond
				i++
			}
		case "movestogo":
			if i+1 < len(args) {
				opts.movesToGo, _ = strconv.Atoi(args[i+1])
				i++
			}
		}
	}
	return opts
}

// handleGo runs iterative deepening to completion (or until `stop`/time
// expiry) and emits exactly one `bestmove` line.
func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)

	limits := engine.UCILimits{
		Time:      [2]time.Duration{opts.wtime, opts.btime},
		Inc:       [2]time.Duration{opts.winc, opts.binc},
		MovesToGo: opts.movesToGo,
		Depth:     opts.depth,
	}

	u.searching = true
	u.stopRequested.Store(false)
	u.searchDone = make(chan struct{})

	go func() {
		defer close(u.searchDone)

		start := time.Now()
		bestMove := u.engine.GetBestMove(limits, func(info engine.InfoLine) {
			u.sendInfo(info, start)
		})

		u.searching = false
		fmt.Println(u.engine.SummaryString())

		if bestMove == board.NoMove {
			fmt.Println("bestmove 0000")
			return
		}
		fmt.Printf("bestmove %s\n", bestMove.String())
	}()
}

// sendInfo formats one completed iterative-deepening depth as a UCI
// `info` line.
func (u *UCI) sendInfo(info engine.InfoLine, start time.Time) {
	var parts []string
	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	switch {
	case info.Score > engine.MateScore-100:
		mateIn := (engine.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	case info.Score < -engine.MateScore+100:
		mateIn := -(engine.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	default:
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("nps %d", info.NPS))
	parts = append(parts, fmt.Sprintf("time %d", time.Since(start).Milliseconds()))

	if len(info.PV) > 0 {
		pvStrs := make([]string, len(info.PV))
		for i, m := range info.PV {
			pvStrs[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(pvStrs, " "))
	}

	fmt.Printf("info %s\n", strings.Join(parts, " "))
}

// handleStop cancels the in-flight search and waits for its bestmove.
func (u *UCI) handleStop() {
	if u.searching {
		u.stopRequested.Store(true)
		u.engine.Stop()
		<-u.searchDone
	}
}

// handleQuit flushes persistent hash (if configured) and exits.
func (u *UCI) handleQuit() {
	u.handleStop()
	u.flushHashFile()
	os.Exit(0)
}

// handleSetOption processes "setoption name <N> value <V>" commands.
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName, readingValue := false, false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "maxdepth":
		depth, err := strconv.Atoi(value)
		if err == nil {
			u.engine.SetMaxDepth(depth)
		}
	case "ttsize":
		size, err := strconv.Atoi(value)
		if err == nil {
			u.engine.ResizeTT(size)
		}
	case "hashfile":
		u.flushHashFile()
		u.hashFile = value
		u.loadHashFile()
	case "evaluator":
		switch strings.ToLower(value) {
		case "capture":
			u.engine.SetEvaluator(engine.CaptureEvaluator{})
		case "mobility":
			u.engine.SetEvaluator(engine.MobilityEvaluator{})
		default:
			fmt.Printf("info string unknown evaluator: %s\n", value)
		}
	}
}

// loadHashFile opens the configured HashFile (if any) and preloads its
// records into the engine's transposition table.
func (u *UCI) loadHashFile() {
	if u.hashFile == "" {
		return
	}

	store, err := persist.Open(u.hashFile)
	if err != nil {
		log.Printf("[UCI] failed to open hash file %s: %v", u.hashFile, err)
		fmt.Printf("info string failed to open hash file %s: %v\n", u.hashFile, err)
		return
	}
	u.hashStore = store

	records, err := store.Load()
	if err != nil {
		log.Printf("[UCI] failed to load hash file %s: %v", u.hashFile, err)
		fmt.Printf("info string failed to load hash file %s: %v\n", u.hashFile, err)
		return
	}
	u.engine.TT().Load(records)
}

// flushHashFile writes the current TT contents to the configured
// HashFile (if any) and closes it.
func (u *UCI) flushHashFile() {
	if u.hashStore == nil {
		return
	}
	if err := u.hashStore.Save(u.engine.TT().Snapshot()); err != nil {
		log.Printf("[UCI] failed to save hash file %s: %v", u.hashFile, err)
		fmt.Printf("info string failed to save hash file %s: %v\n", u.hashFile, err)
	}
	u.hashStore.Close()
	u.hashStore = nil
}

// handlePerft runs a move-generator self-check to the given depth
// (default 5) against the current position.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	nodes := u.engine.Perft(u.engine.Position(), depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
