package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/store"
	"github.com/kavram/adaptiq/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime practice statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	stats, err := st.Sessions().Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	if stats.Sessions == 0 {
		fmt.Println(ui.Subtitle.Render("No sessions recorded yet. Run `adaptiq play` to get started."))
		return nil
	}

	var accuracy float64
	if stats.TotalAnswered > 0 {
		accuracy = float64(stats.CorrectCount) / float64(stats.TotalAnswered) * 100
	}

	lines := []string{
		ui.KV("Sessions", strconv.Itoa(stats.Sessions)),
		ui.KV("Questions", strconv.Itoa(stats.TotalAnswered)),
		ui.KV("Correct", strconv.Itoa(stats.CorrectCount)),
		ui.KV("Accuracy", ui.Bar(accuracy, 24)),
		ui.KV("Avg time", fmt.Sprintf("%.1fs", stats.AvgResponseTime)),
	}

	if len(stats.ByLevel) > 0 {
		var rows [][]string
		for _, lvl := range difficulty.AllLevels() {
			tally, ok := stats.ByLevel[lvl.String()]
			if !ok {
				continue
			}
			var levelAcc float64
			if tally.Answered > 0 {
				levelAcc = float64(tally.Correct) / float64(tally.Answered) * 100
			}
			rows = append(rows, []string{
				lvl.Label(),
				strconv.Itoa(tally.Answered),
				strconv.Itoa(tally.Correct),
				fmt.Sprintf("%.0f%%", levelAcc),
			})
		}
		lines = append(lines, "", ui.Table([]string{"Level", "Answered", "Correct", "Accuracy"}, rows))
	}

	fmt.Println(ui.Card("Lifetime statistics", lines...))
	return nil
}
