// Command autoplay runs a full agent-versus-agent game from the terminal,
// printing the narration log as it unfolds and saving the finished game
// to the history store when a database is configured.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/msuss/codenames/internal/agent"
	"github.com/msuss/codenames/internal/config"
	"github.com/msuss/codenames/internal/db"
	"github.com/msuss/codenames/internal/game"
	"github.com/msuss/codenames/internal/words"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	boardSize := flag.Int("board-size", 0, "board size (25, 36, 49 or 64)")
	model := flag.String("model", "", "LLM model override")
	maxTurns := flag.Int("max-turns", 200, "abort after this many turns")
	replay := flag.String("replay", "", "print the stored history for a game id and exit")
	list := flag.Bool("list", false, "list stored game histories and exit")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()
	if *boardSize != 0 {
		cfg.BoardSize = *boardSize
	}
	if *model != "" {
		cfg.LLMModel = *model
	}

	if *list {
		listHistories()
		return
	}
	if *replay != "" {
		replayHistory(*replay)
		return
	}

	if err := run(cfg, *maxTurns); err != nil {
		log.Fatal().Err(err).Msg("autoplay failed")
	}
}

func run(cfg config.Config, maxTurns int) error {
	pool, err := words.Load()
	if err != nil {
		return err
	}
	players := game.DefaultPlayers()
	for seat := range players {
		players[seat] = game.PlayerAgent
	}
	g, err := game.New(newGameID(), game.Config{
		BoardSize: cfg.BoardSize,
		WordPool:  pool,
		Model:     cfg.LLMModel,
		Players:   players,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Game %s, %d cards, model %s\n\n", g.ID, len(g.Cards), cfg.LLMModel)
	factory := agent.NewFactory(cfg)
	printed := printLog(g, 0)

	for !g.Over() && g.TurnCount < maxTurns {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.AgentTimeoutSeconds)*time.Second)
		err := playPhase(ctx, factory, g)
		cancel()
		if err != nil {
			return err
		}
		printed = printLog(g, printed)
	}
	if !g.Over() {
		return fmt.Errorf("game did not finish within %d turns", maxTurns)
	}

	fmt.Printf("\nFinal score: RED %d, BLUE %d\n", g.Score()[game.TeamRed], g.Score()[game.TeamBlue])
	return saveHistory(g)
}

func playPhase(ctx context.Context, factory agent.Factory, g *game.Game) error {
	if g.Phase.IsSpymaster() {
		move, err := factory.Spymaster(g.CurrentTeam, g.Config.Model).ProposeClue(ctx, g)
		if err != nil {
			return err
		}
		g.AddReasoning(game.ReasoningEntry{
			Role:      fmt.Sprintf("%s SPYMASTER", g.CurrentTeam),
			Action:    fmt.Sprintf("Clue: %s %d", move.Word, move.Number),
			Reasoning: move.Reasoning,
			Timestamp: time.Now().UTC(),
		})
		_, err = g.Apply(g.CurrentTeam, game.GiveClueAction{Word: move.Word, Number: move.Number})
		return err
	}

	plan, err := factory.Guesser(g.CurrentTeam, g.Config.Model).PlanGuesses(ctx, g)
	if err != nil {
		return err
	}
	action := "End Turn"
	if !plan.EndTurn {
		action = fmt.Sprintf("Guess Plan: [%s]", strings.Join(plan.Words, ", "))
	}
	g.AddReasoning(game.ReasoningEntry{
		Role:      fmt.Sprintf("%s GUESSER", g.CurrentTeam),
		Action:    action,
		Reasoning: plan.Reasoning,
		Timestamp: time.Now().UTC(),
	})
	if plan.EndTurn {
		_, err := g.Apply(g.CurrentTeam, game.EndTurnAction{})
		return err
	}
	team := g.CurrentTeam
	applied := 0
	for _, word := range plan.Words {
		ended, err := g.Apply(team, game.GuessAction{Word: word})
		if err != nil {
			log.Warn().Str("word", word).Err(err).Msg("guess rejected")
			break
		}
		applied++
		if ended {
			return nil
		}
	}
	if applied == 0 && !g.Over() {
		_, err := g.Apply(team, game.EndTurnAction{})
		return err
	}
	return nil
}

func printLog(g *game.Game, from int) int {
	for _, line := range g.Log[from:] {
		fmt.Println(line)
	}
	return len(g.Log)
}

func saveHistory(g *game.Game) error {
	if os.Getenv("DATABASE_URL") == "" {
		return writeHistoryFile(g)
	}
	conn, err := db.Open()
	if err != nil {
		return err
	}
	if err := db.Migrate(conn); err != nil {
		return err
	}
	record, err := json.Marshal(historyRecord(g))
	if err != nil {
		return err
	}
	row := db.History{
		GameID:  g.ID,
		Winner:  string(g.Winner),
		Version: 1,
		Record:  datatypes.JSON(record),
	}
	if err := conn.Create(&row).Error; err != nil {
		return err
	}
	fmt.Printf("History saved for game %s\n", g.ID)
	return nil
}

func writeHistoryFile(g *game.Game) error {
	record, err := json.MarshalIndent(historyRecord(g), "", "  ")
	if err != nil {
		return err
	}
	path := fmt.Sprintf("history_%s.json", g.ID)
	if err := os.WriteFile(path, record, 0o644); err != nil {
		return err
	}
	fmt.Printf("History written to %s\n", path)
	return nil
}

func historyRecord(g *game.Game) map[string]any {
	return map[string]any{
		"version":       1,
		"game_id":       g.ID,
		"cards":         g.Cards,
		"winner":        g.Winner,
		"log":           g.Log,
		"clue_history":  g.ClueHistory,
		"reasoning_log": g.ReasoningLog,
		"final_score":   g.Score(),
	}
}

func listHistories() {
	conn := mustOpenDB()
	var rows []db.History
	if err := conn.Order("created_at desc").Find(&rows).Error; err != nil {
		log.Fatal().Err(err).Msg("history query failed")
	}
	for _, row := range rows {
		fmt.Printf("%s  winner=%s  %s\n", row.GameID, row.Winner, row.CreatedAt.Format(time.RFC3339))
	}
}

func replayHistory(gameID string) {
	conn := mustOpenDB()
	var row db.History
	if err := conn.Where("game_id = ?", gameID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal().Str("game_id", gameID).Msg("no history for game")
		}
		log.Fatal().Err(err).Msg("history query failed")
	}
	var record map[string]any
	if err := json.Unmarshal(row.Record, &record); err != nil {
		log.Fatal().Err(err).Msg("stored history is corrupt")
	}
	if lines, ok := record["log"].([]any); ok {
		for _, line := range lines {
			fmt.Println(line)
		}
	}
	fmt.Printf("\nWinner: %s\n", row.Winner)
}

func mustOpenDB() *gorm.DB {
	conn, err := db.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	return conn
}

func newGameID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
