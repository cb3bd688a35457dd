package projectcfg

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"

	"github.com/gantryci/gantry/pkg/buildvalues"
	"github.com/gantryci/gantry/pkg/xmltree"
)

const (
	projectElement = "project"
	pluginsElement = "plugins"
	exportElement  = "export"

	nameAttr        = "name"
	destinationAttr = "destination"
	compressAttr    = "compress"
	literalAttr     = "literal"
)

// Project is a parsed gantry project configuration.
type Project struct {
	// Name identifies the project. Optional.
	Name string
	// Plugins lists dashboard links in document order.
	Plugins []PluginLink
	// Exports lists build-values export tasks in document order.
	Exports []ExportTask
}

// ExportTask describes one build-values artifact to produce.
type ExportTask struct {
	// Name identifies the task within the project.
	Name string
	// Destination is the artifact path, relative to the artifact directory.
	// Empty selects a name-derived default.
	Destination string
	// Values are the pairs to publish, in document order.
	Values []buildvalues.NamedValue
	// Compress gzips the artifact.
	Compress bool
}

// Load reads and parses the project file at path.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}

	return p, nil
}

// Parse decodes a project document from r.
func Parse(r io.Reader) (*Project, error) {
	root, err := xmltree.Decode(r)
	if err != nil {
		return nil, err
	}

	if root.Name != projectElement {
		return nil, fmt.Errorf("%w: root element is <%s>, want <%s>",
			ErrInvalidDocument, root.Name, projectElement)
	}

	p := &Project{}
	p.Name, _ = root.Attr(nameAttr)

	if section, ok := root.Element(pluginsElement); ok {
		p.Plugins, err = ParsePlugins(section)
		if err != nil {
			return nil, err
		}
	}

	for _, el := range root.Elements(exportElement) {
		task, err := parseExportTask(el)
		if err != nil {
			return nil, err
		}

		p.Exports = append(p.Exports, task)
	}

	return p, nil
}

func parseExportTask(el *xmltree.Node) (ExportTask, error) {
	task := ExportTask{}

	name, ok := el.Attr(nameAttr)
	if !ok {
		return task, fmt.Errorf("%w: <%s>: %s", ErrMissingAttribute, exportElement, nameAttr)
	}

	task.Name = name
	task.Destination, _ = el.Attr(destinationAttr)

	if v, ok := el.Attr(compressAttr); ok {
		compress, err := strconv.ParseBool(v)
		if err != nil {
			return task, fmt.Errorf("%w: export %q: %s=%q",
				ErrInvalidAttribute, name, compressAttr, v)
		}

		task.Compress = compress
	}

	task.Values = make([]buildvalues.NamedValue, 0, len(el.Children))

	// Like plugin links, value entries may use any element name.
	for _, vel := range el.Children {
		vname, ok := vel.Attr(nameAttr)
		if !ok {
			return task, fmt.Errorf("%w: export %q <%s>: %s",
				ErrMissingAttribute, name, vel.Name, nameAttr)
		}

		nv := buildvalues.NamedValue{Name: vname, Value: vel.Text}

		if lv, ok := vel.Attr(literalAttr); ok {
			literal, err := strconv.ParseBool(lv)
			if err != nil {
				return task, fmt.Errorf("%w: export %q value %q: %s=%q",
					ErrInvalidAttribute, name, vname, literalAttr, lv)
			}

			nv.Escaped = !literal
		}

		task.Values = append(task.Values, nv)
	}

	return task, nil
}

// Task returns the named export task.
func (p *Project) Task(name string) (ExportTask, bool) {
	for _, t := range p.Exports {
		if t.Name == name {
			return t, true
		}
	}

	return ExportTask{}, false
}

// Validate checks cross-task consistency. All problems found are reported
// together.
func (p *Project) Validate() error {
	var merr *multierror.Error

	seen := make(map[string]bool, len(p.Exports))

	for i, task := range p.Exports {
		if task.Name == "" {
			merr = multierror.Append(merr,
				fmt.Errorf("%w: export %d: empty %s", ErrMissingAttribute, i, nameAttr))

			continue
		}

		if seen[task.Name] {
			merr = multierror.Append(merr, fmt.Errorf("%w: %q", ErrDuplicateTask, task.Name))
		}

		seen[task.Name] = true
	}

	return merr.ErrorOrNil()
}

// FileName returns the task's artifact file name: the configured destination
// if set, otherwise a snake_case rendering of the task name with an extension
// matching the compression setting.
func (t ExportTask) FileName() string {
	if t.Destination != "" {
		return t.Destination
	}

	name := strcase.ToSnake(t.Name) + ".xml"
	if t.Compress {
		name += ".gz"
	}

	return name
}
