package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jwtly10/litweave"
	"github.com/jwtly10/litweave/internal/render"
	"github.com/jwtly10/litweave/internal/transformer"
)

var convertCmd = &cobra.Command{
	Use:   "convert <script>",
	Short: "Convert a script into a literate document",
	Long: `Convert reads a commented script and writes the literate document next
to it (analysis.R -> analysis.Rmd). With --render the document is
additionally compiled to an artifact (analysis.html) and the
intermediate document removed unless --precious is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := litweave.Options{
			Format:       litweave.Format(viper.GetString("format")),
			Doc:          viper.GetString("doc"),
			Inline:       viper.GetString("inline"),
			CommentStart: viper.GetString("comment-start"),
			CommentEnd:   viper.GetString("comment-end"),
		}

		toStdout, _ := cmd.Flags().GetBool("stdout")
		doRender, _ := cmd.Flags().GetBool("render")
		precious, _ := cmd.Flags().GetBool("precious")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		tOpts := transformer.TransformOptions{
			Convert:  opts,
			Render:   doRender,
			Precious: precious,
			NoBackup: noBackup,
		}

		t, err := transformer.NewTransformer(tOpts, render.NewHTML())
		if err != nil {
			return err
		}

		srcPath := litweave.MustAbs(args[0])

		if toStdout {
			content, err := os.ReadFile(srcPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			text, err := t.TransformText(string(content))
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		}

		f, err := os.Open(srcPath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		outPath, err := t.Transform(transformer.ScriptSource{
			Content:  f,
			Metadata: litweave.MetaData{Source: srcPath},
		})
		if err != nil {
			return err
		}

		fmt.Println(outPath)
		return nil
	},
}

func init() {
	convertCmd.Flags().String("format", "Rmd", "target format: Rmd, Rnw, Rhtml, Rtex or Rrst")
	convertCmd.Flags().String("doc", "", "documentation marker pattern (default #')")
	convertCmd.Flags().String("inline", "", "inline expression pattern (default ((expr)) on its own line)")
	convertCmd.Flags().String("comment-start", "", "comment span start pattern")
	convertCmd.Flags().String("comment-end", "", "comment span end pattern")
	convertCmd.Flags().Bool("render", false, "render the document to a final artifact")
	convertCmd.Flags().Bool("precious", false, "keep the intermediate document when rendering")
	convertCmd.Flags().Bool("no-backup", false, "do not back up an existing output document")
	convertCmd.Flags().Bool("stdout", false, "print the converted document instead of writing it")

	viper.BindPFlag("format", convertCmd.Flags().Lookup("format"))
	viper.BindPFlag("doc", convertCmd.Flags().Lookup("doc"))
	viper.BindPFlag("inline", convertCmd.Flags().Lookup("inline"))
	viper.BindPFlag("comment-start", convertCmd.Flags().Lookup("comment-start"))
	viper.BindPFlag("comment-end", convertCmd.Flags().Lookup("comment-end"))

	rootCmd.AddCommand(convertCmd)
}
