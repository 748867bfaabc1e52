package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

var (
	uploadTextTitle string
	uploadTextFile  string
	uploadPDFTitle  string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Add documents to the knowledge base",
}

var uploadTextCmd = &cobra.Command{
	Use:   "text [content]",
	Short: "Upload free text",
	Long: `Uploads a text document. The content is the first argument, or is
read from the file given with --file, or from stdin when the argument
is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUploadText,
}

var uploadPDFCmd = &cobra.Command{
	Use:   "pdf [path]",
	Short: "Upload a PDF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runUploadPDF,
}

var uploadWikiCmd = &cobra.Command{
	Use:   "wiki [query]",
	Short: "Import a Wikipedia article",
	Args:  cobra.ExactArgs(1),
	RunE:  runUploadWiki,
}

func init() {
	uploadTextCmd.Flags().StringVarP(&uploadTextTitle, "title", "t", "", "document title (required)")
	uploadTextCmd.Flags().StringVarP(&uploadTextFile, "file", "f", "", "read content from a file instead of the argument")
	uploadPDFCmd.Flags().StringVarP(&uploadPDFTitle, "title", "t", "", "document title (defaults to the file name)")

	uploadCmd.AddCommand(uploadTextCmd)
	uploadCmd.AddCommand(uploadPDFCmd)
	uploadCmd.AddCommand(uploadWikiCmd)
	rootCmd.AddCommand(uploadCmd)
}

func runUploadText(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	content, err := readTextContent(cmd, args)
	if err != nil {
		return err
	}

	err = ingestService.UploadText(context.Background(), uploadTextTitle, content, domain.SourceUser)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Println("Text uploaded successfully!")
	return nil
}

// readTextContent resolves the text body from the argument, --file, or stdin.
func readTextContent(cmd *cobra.Command, args []string) (string, error) {
	if uploadTextFile != "" {
		data, err := os.ReadFile(uploadTextFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", uploadTextFile, err)
		}
		return string(data), nil
	}

	if len(args) == 0 {
		return "", errors.New("provide content as an argument or with --file")
	}

	if args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	return args[0], nil
}

func runUploadPDF(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	title := uploadPDFTitle
	if title == "" {
		base := filepath.Base(path)
		title = base[:len(base)-len(filepath.Ext(base))]
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	err = ingestService.UploadPDF(context.Background(), title, path, f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Println("PDF uploaded and processed successfully!")
	return nil
}

func runUploadWiki(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	title, err := ingestService.ImportWiki(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Wikipedia article %q imported successfully!\n", title)
	return nil
}
