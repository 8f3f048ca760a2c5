package cli

import (
	"fmt"

	"carousel-builder/internal/carousel"
	"carousel-builder/internal/library"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(librarySaveCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
	libraryCmd.AddCommand(libraryImportBlobCmd)
	libraryCmd.AddCommand(libraryExportBlobCmd)
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved templates",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved template names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openLibrary()
		if err != nil {
			return err
		}
		defer repo.Close()
		names, err := repo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved template snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openLibrary()
		if err != nil {
			return err
		}
		defer repo.Close()
		tpl, err := repo.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeDocument(cmd, tpl)
	},
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <name> <input.json|->",
	Short: "Save form input under a name, replacing any previous entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readTemplateInput(cmd, args[1])
		if err != nil {
			return err
		}
		repo, err := openLibrary()
		if err != nil {
			return err
		}
		defer repo.Close()
		if err := repo.Put(cmd.Context(), args[0], carousel.Collect(in)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
		return nil
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openLibrary()
		if err != nil {
			return err
		}
		defer repo.Close()
		if err := repo.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

var libraryImportBlobCmd = &cobra.Command{
	Use:   "import-blob <blob.json|->",
	Short: "Import a library exported from the browser editor",
	Long: `Import every template of a browser library. The file may be the bare
name-to-snapshot map or a localStorage dump holding it under the
"` + library.LocalStorageKey + `" key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}
		blob, err := library.ParseBlob(data)
		if err != nil {
			return err
		}
		repo, err := openLibrary()
		if err != nil {
			return err
		}
		defer repo.Close()
		count, err := repo.Import(cmd.Context(), blob)
		if err != nil {
			return fmt.Errorf("failed to import library: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d templates\n", count)
		return nil
	},
}

var libraryExportBlobCmd = &cobra.Command{
	Use:   "export-blob",
	Short: "Print the whole library in the browser editor's format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openLibrary()
		if err != nil {
			return err
		}
		defer repo.Close()
		blob, err := repo.Export(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to export library: %w", err)
		}
		return writeDocument(cmd, blob)
	},
}
