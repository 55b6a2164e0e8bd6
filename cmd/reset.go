package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kavram/adaptiq/internal/model"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete recorded sessions",
	Long:  "Delete the practice database. With --model, the trained classifier artifact is removed as well.",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().Bool("model", false, "Also delete the trained model artifact")
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	withModel, _ := cmd.Flags().GetBool("model")
	skipPrompt, _ := cmd.Flags().GetBool("yes")

	if !skipPrompt {
		fmt.Printf("This deletes all practice history at %s", dbPath)
		if withModel {
			fmt.Print(" and the trained model")
		}
		fmt.Print(".\nType yes to continue: ")

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() || strings.TrimSpace(strings.ToLower(scanner.Text())) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := removeIfExists(dbPath); err != nil {
		return fmt.Errorf("delete database: %w", err)
	}
	// WAL sidecar files linger after the main file is removed.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := removeIfExists(dbPath + suffix); err != nil {
			return fmt.Errorf("delete database: %w", err)
		}
	}
	fmt.Println("Practice history deleted.")

	if withModel {
		artifactPath, err := model.DefaultArtifactPath()
		if err != nil {
			return fmt.Errorf("resolve artifact path: %w", err)
		}
		if err := removeIfExists(artifactPath); err != nil {
			return fmt.Errorf("delete model artifact: %w", err)
		}
		fmt.Println("Model artifact deleted.")
	}
	return nil
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
