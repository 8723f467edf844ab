package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourname/vault_lite/pkg/vaultclient"
)

func newClient(cmd *cobra.Command) vaultclient.Client {
	return vaultclient.New(serverURL, vaultclient.WithProgress(cmd.ErrOrStderr()))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid file id %q", raw)
	}
	return id, nil
}

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			st, err := f.Stat()
			if err != nil {
				return err
			}

			rec, err := newClient(cmd).Upload(cmd.Context(), filepath.Base(args[0]), f, st.Size())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", rec.ID, rec.Name, rec.Size)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := vaultclient.New(serverURL).List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tDATE")
			for _, f := range files {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", f.ID, f.Name, f.Type, f.Size, f.Date)
			}
			return w.Flush()
		},
	}
}

func newGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Download a file",
		Long:  "Download a file by id. Without --output the original name is used; '-' writes to stdout.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client := vaultclient.New(serverURL)
			if output != "-" {
				client = newClient(cmd)
			}

			fs, err := client.Download(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer fs.Body.Close()

			if output == "-" {
				_, err = io.Copy(cmd.OutOrStdout(), fs.Body)
				return err
			}

			dst := output
			if dst == "" {
				dst = filepath.Base(fs.Name)
				if dst == "." || dst == "/" || dst == "" {
					dst = strconv.FormatInt(id, 10)
				}
			}

			out, err := os.Create(dst)
			if err != nil {
				return err
			}
			if _, err = io.Copy(out, fs.Body); err != nil {
				_ = out.Close()
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path, '-' for stdout")

	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err = vaultclient.New(serverURL).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			return nil
		},
	}
}

func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show quota usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := vaultclient.New(serverURL).Usage(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s of %s used, %d files\n", u.Used, u.Capacity, u.Files)
			return nil
		},
	}
}
