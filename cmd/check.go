package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidooit/qualidoo/config"
	"github.com/aidooit/qualidoo/output"
	"github.com/aidooit/qualidoo/progress"
	"github.com/aidooit/qualidoo/qualidoo"
)

var (
	checkTimeout int
	checkVerbose bool
	checkSave    string
)

func init() {
	checkCmd.Flags().IntVarP(&checkTimeout, "timeout", "t", 300, "Maximum time to wait for analysis (seconds)")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Show detailed findings with file paths and suggestions")
	checkCmd.Flags().StringVarP(&checkSave, "save", "s", "", "Save full JSON result to file")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Analyze an Odoo addon for quality issues",
	Long:  `Analyze an Odoo addon for quality issues. Uploads the addon to qualidoo.aidooit.com and displays the results.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	key := store.APIKey()
	if key == "" {
		return errors.New("not logged in. Run 'qualidoo login' first")
	}

	addonPath := "."
	if len(args) > 0 {
		addonPath = args[0]
	}
	addonPath, err = filepath.Abs(addonPath)
	if err != nil {
		return err
	}
	addonName := filepath.Base(addonPath)

	if _, err := os.Stat(filepath.Join(addonPath, "__manifest__.py")); err != nil {
		return fmt.Errorf("not a valid Odoo addon: missing __manifest__.py in %s", addonPath)
	}

	// Ctrl-C cancels the upload or the poll loop at its next check.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := qualidoo.NewClient(key, store.APIURL())
	defer client.Close()

	fmt.Printf("Uploading %s... ", addonName)
	upload, err := client.UploadAddon(ctx, addonPath)
	if err != nil {
		fmt.Println(output.FailureLine("Failed"))
		return err
	}
	fmt.Println(output.SuccessLine("Done"))

	if upload.JobID == "" {
		return errors.New("no job ID returned from upload")
	}

	sink := progress.NewSink(os.Stderr)
	result, err := client.WaitForCompletion(ctx, upload.JobID, qualidoo.WaitOptions{
		PollInterval: 2 * time.Second,
		Timeout:      time.Duration(checkTimeout) * time.Second,
		OnProgress:   sink.OnStatus,
	})
	sink.Stop()
	if err != nil {
		if qualidoo.IsKind(err, qualidoo.KindTimeout) {
			return fmt.Errorf("analysis timed out after %d seconds", checkTimeout)
		}
		return err
	}

	fmt.Println()
	fmt.Print(output.RenderReport(result, addonName, checkVerbose))

	if checkSave != "" {
		savePath := checkSave
		if !filepath.IsAbs(savePath) {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			savePath = filepath.Join(cwd, savePath)
		}
		if err := output.SaveResult(result, savePath); err != nil {
			return err
		}
		fmt.Println(output.SuccessLine("Result saved to: " + savePath))
	}
	return nil
}
