package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asksage-tools/asksage-cli/internal/api"
	"github.com/asksage-tools/asksage-cli/internal/dataset"
	"github.com/asksage-tools/asksage-cli/internal/response"
)

var defaultExtensions = []string{".txt", ".md", ".py", ".js", ".json"}

// TrainResult holds directory training results for structured output.
type TrainResult struct {
	Directory  string `json:"directory"`
	Dataset    string `json:"dataset"`
	Files      int    `json:"files"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
}

// newTrainCmd creates the train command group.
func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train content into datasets",
	}

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Train a single file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrainFile,
	}
	bindTrainFlags(fileCmd)

	dirCmd := &cobra.Command{
		Use:   "directory <path>",
		Short: "Train all files in a directory",
		Long: `Train every file in a directory whose extension matches, one file per
API call. Failures are counted and reported; a failed file does not stop
the batch, but any failure makes the command exit non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: runTrainDirectory,
	}
	bindTrainFlags(dirCmd)
	dirCmd.Flags().BoolVarP(&cfg.Recursive, "recursive", "r", false, "Process directories recursively")
	dirCmd.Flags().StringSliceVar(&cfg.Extensions, "extensions", defaultExtensions, "File extensions to include")

	cmd.AddCommand(fileCmd)
	cmd.AddCommand(dirCmd)
	return cmd
}

func bindTrainFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cfg.Dataset, "dataset", "d", "", "Dataset to train into (short name or full name)")
	cmd.Flags().StringVarP(&cfg.Context, "context", "c", "", "Optional context information")
	cmd.Flags().BoolVar(&cfg.Summarize, "summarize", false, "Enable summarization during training")
	_ = cmd.MarkFlagRequired("dataset")
}

func runTrainFile(cmd *cobra.Command, args []string) error {
	ui := NewUI(cmd.OutOrStdout(), IsStructuredOutput())

	path := args[0]
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	if err == nil && info.IsDir() {
		return fmt.Errorf("path is not a file: %s", path)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	fullName, err := resolveDataset(client, ui, cfg.Dataset)
	if err != nil {
		return err
	}

	if !IsStructuredOutput() {
		cmd.Printf("Training file: %s\n", path)
		cmd.Printf("Using dataset: %s\n", dataset.DisplayName(fullName))
	}

	raw, err := client.TrainWithFile(path, api.TrainOptions{
		Dataset:   fullName,
		Context:   cfg.Context,
		Summarize: cfg.Summarize,
	})
	if err != nil {
		return fmt.Errorf("training file %s: %w", path, err)
	}
	if res := response.Normalize(raw); !res.OK {
		return fmt.Errorf("failed to train file: %s", res.Err)
	}

	ui.Success(fmt.Sprintf("Successfully trained file %s into dataset %q", path, dataset.ExtractShort(fullName)))
	return nil
}

func runTrainDirectory(cmd *cobra.Command, args []string) error {
	ui := NewUI(cmd.OutOrStdout(), IsStructuredOutput())

	dir := args[0]
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory not found: %s", dir)
	}
	if err == nil && !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	fullName, err := resolveDataset(client, ui, cfg.Dataset)
	if err != nil {
		return err
	}

	files, err := collectFiles(dir, cfg.Extensions, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}
	if len(files) == 0 {
		ui.Info(fmt.Sprintf("No files found in %s with extensions %s", dir, strings.Join(cfg.Extensions, " ")))
		return nil
	}

	shortName := dataset.ExtractShort(fullName)
	if !IsStructuredOutput() {
		cmd.Printf("Found %d files to train in dataset %q\n", len(files), shortName)
	}

	opts := api.TrainOptions{Dataset: fullName, Context: cfg.Context, Summarize: cfg.Summarize}
	successful, failed := trainBatch(cmd, client, dir, files, opts)

	result := TrainResult{
		Directory:  dir,
		Dataset:    fullName,
		Files:      len(files),
		Successful: successful,
		Failed:     failed,
	}

	if IsStructuredOutput() {
		if err := PrintOutput(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		cmd.Printf("\nTraining complete: %d successful, %d failed\n", successful, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to train", failed, len(files))
	}
	return nil
}

// trainBatch trains files strictly sequentially, one remote call per file.
// A failed file is recorded and iteration continues.
func trainBatch(cmd *cobra.Command, client api.Sage, dir string, files []string, opts api.TrainOptions) (successful, failed int) {
	structured := IsStructuredOutput()

	for _, path := range files {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		if !structured {
			cmd.Printf("Training: %s\n", rel)
		}

		raw, err := client.TrainWithFile(path, opts)
		if err != nil {
			failed++
			if !structured {
				cmd.Printf("  ✗ Error: %v\n", err)
			}
			continue
		}
		if res := response.Normalize(raw); !res.OK {
			failed++
			if !structured {
				cmd.Printf("  ✗ Failed: %s\n", res.Err)
			}
			continue
		}

		successful++
		if !structured {
			cmd.Println("  ✓ Success")
		}
	}
	return successful, failed
}

// collectFiles gathers the files to train, filtered by extension
// (case-insensitive, leading dot optional) and sorted by path.
func collectFiles(dir string, extensions []string, recursive bool) ([]string, error) {
	want := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		want[ext] = true
	}

	var files []string
	if recursive {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && want[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && want[strings.ToLower(filepath.Ext(entry.Name()))] {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
