package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/media"
)

// classifyCommand creates the classify command for inspecting media URLs.
func (c *CLI) classifyCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "classify <url>...",
		Short: "Show the media kind, aspect ratio and embed for URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := make([]media.Media, len(args))
			for i, arg := range args {
				resolved[i] = media.Resolve(arg)
			}

			switch format {
			case formatJSON:
				return writeJSON(cmd.OutOrStdout(), resolved)
			case formatTable:
				for i, m := range resolved {
					if i > 0 {
						printNewline()
					}
					printMedia(m)
				}
				return nil
			}
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be table or json)", format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json")

	return cmd
}

func printMedia(m media.Media) {
	printKeyValue("url", m.URL)
	printKeyValue("kind", kindStyle(m.Kind).Render(m.Kind.String()))
	printKeyValue("ratio", StyleNumber.Render(strconv.FormatFloat(m.AspectRatio, 'f', -1, 64)+"%"))

	switch {
	case m.Kind == media.KindNone:
		printKeyValue("embed", StyleDim.Render("none"))
	case m.Embed == nil:
		_, err := media.ResolveEmbed(m.URL, m.Kind)
		printWarning("unresolvable: %s", errors.UserMessage(err))
	default:
		printKeyValue("element", string(m.Embed.Element))
		printKeyValue("embed", StyleLink.Render(m.Embed.Src))
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
