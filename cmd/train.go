package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kavram/adaptiq/internal/store"
	"github.com/kavram/adaptiq/internal/trainer"
	"github.com/kavram/adaptiq/internal/ui"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the success classifier on recorded sessions",
	Long: `Replay every recorded session and fit the logistic model that the
model and hybrid adaptation modes use to estimate success probability.`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().String("artifact", "", "Where to write the model artifact (overrides ADAPTIQ_MODEL env var)")
	trainCmd.Flags().Int("min-examples", trainer.DefaultConfig().MinExamples, "Fail when fewer training examples can be extracted")
}

func runTrain(cmd *cobra.Command, args []string) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	log, err := newLogger(cmd, zap.InfoLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := trainer.DefaultConfig()
	cfg.ArtifactPath, _ = cmd.Flags().GetString("artifact")
	cfg.MinExamples, _ = cmd.Flags().GetInt("min-examples")

	report, err := trainer.NewPipeline(st.Sessions(), cfg, log).Run(cmd.Context())
	if errors.Is(err, trainer.ErrTooFewExamples) {
		fmt.Println(ui.Subtitle.Render(fmt.Sprintf("Not enough history to train on (%v).", err)))
		fmt.Println(ui.Subtitle.Render("Play a few more sessions, then try again."))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(renderTrainReport(report))
	return nil
}

func renderTrainReport(r *trainer.Report) string {
	sessions := strconv.Itoa(r.SessionsSeen)
	if r.SessionsSkipped > 0 {
		sessions += fmt.Sprintf(" (%d skipped)", r.SessionsSkipped)
	}

	lines := []string{
		ui.KV("Sessions", sessions),
		ui.KV("Examples", fmt.Sprintf("%d (%d train / %d held out)", r.Examples, r.TrainExamples, r.TestExamples)),
		ui.KV("Train accuracy", fmt.Sprintf("%.1f%%", r.TrainAccuracy*100)),
	}
	if r.TestExamples > 0 {
		lines = append(lines,
			ui.KV("Held-out", fmt.Sprintf("accuracy %.1f%%  precision %.2f  recall %.2f  F1 %.2f",
				r.Eval.Accuracy*100, r.Eval.Precision, r.Eval.Recall, r.Eval.F1)),
		)
	}
	lines = append(lines, ui.KV("Artifact", r.ArtifactPath))

	return ui.Card("Training complete", lines...)
}
