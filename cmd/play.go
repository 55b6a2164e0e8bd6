package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/engine"
	"github.com/kavram/adaptiq/internal/session"
	"github.com/kavram/adaptiq/internal/store"
	"github.com/kavram/adaptiq/internal/tracker"
	"github.com/kavram/adaptiq/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE:  runPlay,
}

func init() {
	registerPlayFlags(playCmd.Flags())
}

// registerPlayFlags is shared with the root command, which runs a session
// when invoked bare.
func registerPlayFlags(f *pflag.FlagSet) {
	f.String("learner", "", "Learner name (prompted when omitted)")
	f.String("level", "medium", "Starting difficulty: easy, medium or hard")
	f.String("mode", "hybrid", "Adaptation mode: threshold, model or hybrid")
	f.Int("questions", session.DefaultMaxQuestions, "Number of questions in the session")
	f.Bool("no-save", false, "Do not record this session")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	scanner := bufio.NewScanner(os.Stdin)

	learner, _ := cmd.Flags().GetString("learner")
	if learner == "" {
		fmt.Print("Enter your name: ")
		if !scanner.Scan() {
			return nil
		}
		learner = strings.TrimSpace(scanner.Text())
		if learner == "" {
			learner = "Learner"
		}
	}

	levelVal, _ := cmd.Flags().GetString("level")
	lvl, err := difficulty.ParseLevel(levelVal)
	if err != nil {
		return err
	}

	modeVal, _ := cmd.Flags().GetString("mode")
	mode, err := engine.ParseMode(modeVal)
	if err != nil {
		return err
	}

	questions, _ := cmd.Flags().GetInt("questions")
	noSave, _ := cmd.Flags().GetBool("no-save")

	// Warn and up only, so log lines do not interleave with the quiz.
	log, err := newLogger(cmd, zap.WarnLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := session.Config{
		Learner:      learner,
		Mode:         mode,
		InitialLevel: lvl,
		MaxQuestions: questions,
		Log:          log,
	}
	if !noSave {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		cfg.Store = st
	}

	s, err := session.New(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("\nHello, %s! %d questions, starting at %s.\n", learner, s.MaxQuestions(), s.Level().Label())
	fmt.Println(ui.Dim.Render("Answer with a number. An empty line ends the session early."))
	fmt.Println()

	for !s.Done() {
		p := s.NextPuzzle()
		n := s.Answered() + 1

		fmt.Printf("── Question %d/%d %s ──\n", n, s.MaxQuestions(), difficultyIndicator(p.Level))
		fmt.Println(p.Question)
		fmt.Print("\nYour answer: ")

		started := time.Now()
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			break
		}
		elapsed := time.Since(started).Seconds()

		res, err := s.Submit(ctx, p, answer, elapsed)
		if err != nil {
			return err
		}

		if res.Correct {
			fmt.Printf("%s (%.1fs)\n", ui.Correct.Render("✓ Correct!"), elapsed)
		} else {
			fmt.Printf("%s The answer is %s. (%.1fs)\n",
				ui.Incorrect.Render("✗ Not quite."), formatAnswer(res.CorrectAnswer), elapsed)
		}

		if res.LevelChanged {
			switch res.Decision.Action {
			case engine.ActionIncrease:
				fmt.Println(ui.Highlight.Render(fmt.Sprintf("Performing well! Stepping up to %s.", res.NewLevel.Label())) + decisionNote(res.Decision))
			case engine.ActionDecrease:
				fmt.Println(ui.Highlight.Render(fmt.Sprintf("Let's build confidence at %s.", res.NewLevel.Label())) + decisionNote(res.Decision))
			}
		}
		fmt.Println()
	}

	if err := s.Finish(ctx); err != nil {
		return err
	}

	fmt.Println(renderSummary(s.Summary()))
	return nil
}

// difficultyIndicator marks the level with one to three stars.
func difficultyIndicator(lvl difficulty.Level) string {
	return strings.Repeat("★", int(lvl)+1)
}

// decisionNote says which decision path moved the level.
func decisionNote(d *engine.Decision) string {
	note := string(d.Source)
	if d.Fallback == engine.FallbackNone && d.Probability > 0 {
		note += fmt.Sprintf(" p=%.2f", d.Probability)
	}
	return ui.Dim.Render(" [" + note + "]")
}

// formatAnswer prints whole answers without a decimal tail.
func formatAnswer(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderSummary(sum *session.Summary) string {
	snap := sum.Snapshot
	lines := []string{
		ui.KV("Questions", strconv.Itoa(snap.TotalAnswered)),
		ui.KV("Correct", fmt.Sprintf("%d of %d", snap.CorrectCount, snap.TotalAnswered)),
		ui.KV("Accuracy", ui.Bar(snap.Accuracy, 24)),
		ui.KV("Avg time", fmt.Sprintf("%.1fs", snap.AvgResponseTime)),
		ui.KV("Best streak", strconv.Itoa(snap.MaxStreak)),
		ui.KV("Trend", string(snap.Trend)),
		ui.KV("Level path", renderLevelPath(sum.LevelPath)),
		ui.KV("Duration", sum.Duration.Round(time.Second).String()),
	}

	if len(sum.Breakdown) > 0 {
		lines = append(lines, "", renderBreakdown(sum.Breakdown))
	}

	lines = append(lines, "", ui.Subtitle.Render(recommendation(snap.Accuracy)))

	return ui.Card(fmt.Sprintf("Session complete, %s!", sum.Learner), lines...)
}

func renderLevelPath(path []difficulty.Level) string {
	parts := make([]string, 0, len(path))
	for _, l := range path {
		parts = append(parts, l.Label())
	}
	return strings.Join(parts, " → ")
}

func renderBreakdown(b map[difficulty.Level]tracker.LevelStats) string {
	var rows [][]string
	for _, lvl := range difficulty.AllLevels() {
		st, ok := b[lvl]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			lvl.Label(),
			strconv.Itoa(st.Answered),
			strconv.Itoa(st.Correct),
			fmt.Sprintf("%.0f%%", st.Accuracy),
		})
	}
	return ui.Table([]string{"Level", "Answered", "Correct", "Accuracy"}, rows)
}

// recommendation mirrors the accuracy bands used by the threshold rules.
func recommendation(accuracy float64) string {
	switch {
	case accuracy >= engine.IncreaseMinAccuracy:
		return "Excellent! Next time, try starting at a higher difficulty."
	case accuracy >= engine.DecreaseMaxAccuracy:
		return "Good job! Practice will make you faster and more accurate."
	default:
		return "Keep practicing! Focus on accuracy first, speed will follow."
	}
}
