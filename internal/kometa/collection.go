package kometa

import (
	"gopkg.in/yaml.v3"

	"tssk/internal/catalog"
)

const defaultCollectionName = "TV Collection"

// RenderCollection builds a Kometa collection file. Without any TVDB ids the
// document instead strips the collection label from every item, so a
// previously populated collection empties out.
func RenderCollection(template *yaml.Node, matches []catalog.ShowMatch, summary string) ([]byte, error) {
	tpl := clone(template)
	name := popString(tpl, "collection_name", defaultCollectionName)

	ids := tvdbIDs(matches)
	collections := mappingNode()
	root := mappingNode()
	set(root, "collections", collections)

	if len(ids) == 0 {
		set(collections, name, labelRemoval(name))
		return encode(root)
	}

	body := mappingNode()
	if custom := lookup(tpl, "summary"); custom != nil {
		set(body, "summary", custom)
	} else {
		set(body, "summary", strNode(summary))
	}
	if sortTitle := lookup(tpl, "sort_title"); sortTitle != nil && sortTitle.Kind == yaml.ScalarNode {
		set(body, "sort_title", quotedNode(sortTitle.Value))
	}
	for i := 0; i+1 < len(tpl.Content); i += 2 {
		switch key := tpl.Content[i].Value; key {
		case "summary", "sort_title", "sync_mode", "tvdb_show":
		default:
			set(body, key, tpl.Content[i+1])
		}
	}
	set(body, "sync_mode", strNode("sync"))
	set(body, "tvdb_show", strNode(joinIDs(ids)))
	set(collections, name, body)
	return encode(root)
}

func labelRemoval(name string) *yaml.Node {
	all := mappingNode()
	set(all, "label", strNode(name))
	search := mappingNode()
	set(search, "all", all)

	body := mappingNode()
	set(body, "plex_search", search)
	set(body, "item_label.remove", strNode(name))
	set(body, "smart_label", strNode("random"))
	set(body, "build_collection", boolNode(false))
	return body
}
