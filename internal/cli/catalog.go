package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/catalog"
)

// catalogCommand creates the catalog command and its subcommands.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"components"},
		Short:   "List, search and document catalog components",
		Long: `The catalog describes every chart component: its props, usage examples and
installation steps. Components with a kind can be rendered by chartkit.

Use 'chartkit browse' for an interactive view.`,
	}

	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogSearchCommand())
	cmd.AddCommand(c.catalogShowCommand())
	cmd.AddCommand(c.catalogDocsCommand())

	return cmd
}

func (c *CLI) catalogListCommand() *cobra.Command {
	var (
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comps := catalog.ByCategory(category)
			return writeComponents(cmd.OutOrStdout(), comps, asJSON)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list components in this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return catalog.Categories(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (c *CLI) catalogSearchCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search components by title, description or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := catalog.Search(args[0])
			if err != nil {
				return err
			}
			if len(comps) == 0 && !asJSON {
				printInfo("No components match %q", args[0])
				return nil
			}
			return writeComponents(cmd.OutOrStdout(), comps, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) catalogShowCommand() *cobra.Command {
	var (
		asJSON   bool
		markdown bool
	)
	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show a component's props, examples and installation",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeComponentIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := catalog.ByID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeJSON(out, comp)
			case markdown:
				_, err := io.WriteString(out, catalog.Markdown(comp))
				return err
			}
			printComponent(comp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the Markdown docs source")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
	return cmd
}

func (c *CLI) catalogDocsCommand() *cobra.Command {
	var (
		output    string
		noPreview bool
		noCache   bool
		refresh   bool
	)
	cmd := &cobra.Command{
		Use:   "docs <id>",
		Short: "Write a component's HTML docs page",
		Long: `Write a standalone HTML page documenting a component. Renderable components
embed an SVG preview of their first example unless --no-preview is given.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeComponentIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := catalog.ByID(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := c.Config.Options().Clone()
			opts.Logger = c.Logger
			opts.Refresh = refresh
			page, hit, err := runner.ComponentDoc(cmd.Context(), comp, !noPreview, opts)
			if err != nil {
				return err
			}

			if output == stdoutPath {
				_, err := cmd.OutOrStdout().Write(page)
				return err
			}
			if output == "" {
				output = comp.ID + ".html"
			}
			if err := writeOutput(output, page); err != nil {
				return err
			}
			printSuccess("Docs for %s", comp.Title)
			printFile(output, len(page))
			status := iconFresh
			if hit {
				status = iconCached
			}
			printDetail("%s", status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (default: <id>.html, "-" for stdout)`)
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "leave out the rendered preview")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached pages (still writes the cache)")
	return cmd
}

// completeComponentIDs completes catalog ids for the first argument.
func completeComponentIDs(_ *cobra.Command, args []string, prefix string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, comp := range catalog.All() {
		if strings.HasPrefix(comp.ID, prefix) {
			ids = append(ids, comp.ID+"\t"+comp.Title)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// writeComponents prints components as a table, or as JSON.
func writeComponents(w io.Writer, comps []catalog.Component, asJSON bool) error {
	if asJSON {
		if comps == nil {
			comps = []catalog.Component{}
		}
		return writeJSON(w, comps)
	}
	_, err := fmt.Fprintln(w, componentTable(comps))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printComponent prints the detail view of a component.
func printComponent(comp catalog.Component) {
	fmt.Println(StyleTitle.Render(comp.Title) + " " + StyleDim.Render("("+comp.ID+")"))
	fmt.Println(comp.Description)
	printNewline()
	printKeyValue("Category", comp.Category)
	if comp.Renderable() {
		printKeyValue("Kind", string(comp.Kind))
	}
	if deps := comp.Installation.Dependencies; len(deps) > 0 {
		printKeyValue("Depends on", strings.Join(deps, ", "))
	}

	if len(comp.Props) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Props"))
		fmt.Println(propTable(comp.Props))
	}

	for _, ex := range comp.Examples {
		printNewline()
		fmt.Println(StyleTitle.Render("Example: ") + ex.Title)
		if ex.Description != "" {
			printDetail("%s", ex.Description)
		}
		for _, line := range strings.Split(strings.TrimRight(ex.Code, "\n"), "\n") {
			fmt.Println("  " + StyleValue.Render(line))
		}
	}

	if steps := comp.Installation.Steps; len(steps) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Installation"))
		for i, s := range steps {
			fmt.Printf("  %d. %s\n", i+1, s)
		}
	}

	printNewline()
	printNextStep("HTML docs", "chartkit catalog docs "+comp.ID)
}
