package cmd

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Upload and inspect stored files",
}

var filesPutCmd = &cobra.Command{
	Use:   "put <path>",
	Short: "Upload a local file to the hub's blob store",
	Args:  cobra.ExactArgs(1),
	Run:   filesPutHandler,
}

var filesMetaCmd = &cobra.Command{
	Use:   "meta <blob-id>",
	Short: "Show a stored file's metadata",
	Args:  cobra.ExactArgs(1),
	Run:   filesMetaHandler,
}

var filesGetCmd = &cobra.Command{
	Use:   "get <blob-id> <path>",
	Short: "Download a stored file to a local path",
	Args:  cobra.ExactArgs(2),
	Run:   filesGetHandler,
}

func filesPutHandler(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read file: %v\n", err)
		os.Exit(1)
	}
	contentType := mime.TypeByExtension(filepath.Ext(args[0]))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	id, err := client().StoreFile(filepath.Base(args[0]), base64.StdEncoding.EncodeToString(data), contentType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to upload file: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(id)
}

func filesMetaHandler(cmd *cobra.Command, args []string) {
	meta, err := client().FileMetadata(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to fetch metadata: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Name:         %s\n", meta.Name)
	fmt.Printf("Content-Type: %s\n", meta.ContentType)
	fmt.Printf("Size:         %d bytes\n", meta.Size)
}

func filesGetHandler(cmd *cobra.Command, args []string) {
	meta, err := client().FileContent(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to fetch file: %v\n", err)
		os.Exit(1)
	}
	data, err := base64.StdEncoding.DecodeString(meta.Content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Server returned malformed content: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(args[1], data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to write file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(data), args[1])
}

func init() {
	filesCmd.AddCommand(filesPutCmd)
	filesCmd.AddCommand(filesMetaCmd)
	filesCmd.AddCommand(filesGetCmd)
	rootCmd.AddCommand(filesCmd)
}
