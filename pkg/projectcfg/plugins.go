package projectcfg

import (
	"fmt"

	"github.com/gantryci/gantry/pkg/xmltree"
)

const (
	linkTextAttr = "linkText"
	linkURLAttr  = "linkUrl"
)

// PluginLink is one dashboard link contributed by a project plugin.
type PluginLink struct {
	// Text is the human-readable link title.
	Text string `json:"text" yaml:"text"`
	// URL is the link target.
	URL string `json:"url" yaml:"url"`
}

// ParsePlugins reads plugin links from the children of a plugins section.
// Every child element declares one link, whatever its element name, and must
// carry linkText and linkUrl attributes. Link order follows the document.
// A nil section yields no links.
func ParsePlugins(section *xmltree.Node) ([]PluginLink, error) {
	if section == nil {
		return nil, nil
	}

	links := make([]PluginLink, 0, len(section.Children))

	for i, el := range section.Children {
		text, ok := el.Attr(linkTextAttr)
		if !ok {
			return nil, fmt.Errorf("%w: plugin %d <%s>: %s", ErrMissingAttribute, i, el.Name, linkTextAttr)
		}

		url, ok := el.Attr(linkURLAttr)
		if !ok {
			return nil, fmt.Errorf("%w: plugin %d <%s>: %s", ErrMissingAttribute, i, el.Name, linkURLAttr)
		}

		links = append(links, PluginLink{Text: text, URL: url})
	}

	return links, nil
}
