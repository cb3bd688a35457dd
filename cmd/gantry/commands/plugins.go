package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gantryci/gantry/pkg/projectcfg"
)

const (
	pluginsListDesc = `List the dashboard plugin links declared by the project.`

	pluginsListExample = `  # List plugin links as text
  gantry plugins list

  # List plugin links as JSON
  gantry plugins list -o json`
)

// OutputFormat selects a rendering for listed plugin links.
type OutputFormat string

const (
	// TextOutput renders one tab-separated line per link.
	TextOutput OutputFormat = "text"
	// JSONOutput renders an indented JSON array.
	JSONOutput OutputFormat = "json"
	// YAMLOutput renders a YAML sequence.
	YAMLOutput OutputFormat = "yaml"
)

// GetOutputFormat normalizes a format string to an [OutputFormat].
func GetOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "":
		return TextOutput, nil
	case "json":
		return JSONOutput, nil
	case "yaml", "yml":
		return YAMLOutput, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q", ErrInvalidArgument, s)
	}
}

// PluginsArgs holds flag values for the plugins commands.
type PluginsArgs struct {
	*RootArgs

	project *string
	output  *string
}

// NewPluginsArgs creates a [PluginsArgs] with allocated flag targets.
func NewPluginsArgs(rootArgs *RootArgs) *PluginsArgs {
	return &PluginsArgs{
		RootArgs: rootArgs,
		project:  new(string),
		output:   new(string),
	}
}

// GetProject returns the configured project file path.
func (a *PluginsArgs) GetProject() string {
	if a == nil || a.project == nil {
		return ""
	}

	return *a.project
}

// GetOutput returns the configured output format string.
func (a *PluginsArgs) GetOutput() string {
	if a == nil || a.output == nil {
		return ""
	}

	return *a.output
}

// NewPluginsCmd returns the plugins command group.
func NewPluginsCmd(rootArgs *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect project plugins",
	}

	cmd.AddCommand(NewPluginsListCmd(rootArgs))

	return cmd
}

// NewPluginsListCmd returns the plugins list command.
func NewPluginsListCmd(rootArgs *RootArgs) *cobra.Command {
	args := NewPluginsArgs(rootArgs)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List project plugin links",
		Long:    pluginsListDesc,
		Example: pluginsListExample,
		RunE: func(cc *cobra.Command, _ []string) error {
			return runPluginsList(cc, args)
		},
	}

	cmd.Flags().StringVarP(args.project, "project", "p", "",
		"Path to the project file (default: discover "+defaultProjectFile+")")
	cmd.Flags().StringVarP(args.output, "output", "o", string(TextOutput),
		"Output format (text, json, yaml)")

	err := cmd.MarkFlagFilename("project", "xml")
	if err != nil {
		panic(err)
	}

	return cmd
}

func runPluginsList(cc *cobra.Command, args *PluginsArgs) error {
	format, err := GetOutputFormat(args.GetOutput())
	if err != nil {
		return err
	}

	projectPath := args.GetProject()

	if projectPath == "" {
		projectPath, err = discoverProjectFile()
		if err != nil {
			return err
		}
	}

	proj, err := projectcfg.Load(projectPath)
	if err != nil {
		return err
	}

	links := proj.Plugins
	if links == nil {
		links = []projectcfg.PluginLink{}
	}

	out := cc.OutOrStdout()

	switch format {
	case JSONOutput:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		if err := enc.Encode(links); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case YAMLOutput:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)

		if err := enc.Encode(links); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("close yaml encoder: %w", err)
		}
	case TextOutput:
		for _, link := range links {
			fmt.Fprintf(out, "%s\t%s\n", link.Text, link.URL)
		}
	}

	return nil
}
