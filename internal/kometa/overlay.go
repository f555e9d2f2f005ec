package kometa

import (
	"sort"

	"gopkg.in/yaml.v3"

	"tssk/internal/catalog"
)

// EmptyOverlay is written instead of YAML when a category has no matches.
const EmptyOverlay = "#Nenhum seriado com correspondência encontrados"

const (
	defaultDateFormat = "yyyy-mm-dd"
	defaultUseText    = "NOVA TEMPORADA"
)

// DateFormatter renders a dd/mm/yyyy air date with a user date pattern.
type DateFormatter interface {
	Format(raw, pattern string, capitalize bool) string
}

// RenderOverlay builds the overlay file for one category. backdrop and text
// are template sections; they are copied before use.
func RenderOverlay(category catalog.Category, matches []catalog.ShowMatch, backdrop, text *yaml.Node, dates DateFormatter) ([]byte, error) {
	if len(matches) == 0 {
		return []byte(EmptyOverlay), nil
	}

	ids := tvdbIDs(matches)
	overlays := mappingNode()

	bd := clone(backdrop)
	if popBool(bd, "enable", true) && len(ids) > 0 {
		set(bd, "name", strNode("backdrop"))
		set(overlays, "backdrop", overlayBlock(bd, ids))
	}

	tx := clone(text)
	if popBool(tx, "enable", true) && len(ids) > 0 {
		pattern := popString(tx, "date_format", defaultDateFormat)
		useText := popString(tx, "use_text", defaultUseText)
		capitalize := popBool(tx, "capitalize_dates", true)

		groups := groupByAirDate(category, matches)
		if len(groups) == 0 {
			block := clone(tx)
			set(block, "name", strNode("text("+useText+")"))
			set(overlays, blockKey(category), overlayBlock(block, ids))
		} else {
			for _, b := range dateBlocks(groups, dates, pattern, capitalize) {
				block := clone(tx)
				set(block, "name", strNode("text("+useText+" "+b.formatted+")"))
				set(overlays, "TSSK_"+b.formatted, overlayBlock(block, b.ids))
			}
		}
	}

	root := mappingNode()
	set(root, "overlays", overlays)
	return encode(root)
}

func overlayBlock(overlay *yaml.Node, ids []int64) *yaml.Node {
	block := mappingNode()
	set(block, "overlay", overlay)
	set(block, "tvdb_show", strNode(joinIDs(ids)))
	return block
}

func blockKey(category catalog.Category) string {
	if out, ok := categoryOutputs[category]; ok {
		return out.blockKey
	}
	return "TSSK_overlay"
}

type dateGroup struct {
	raw  string
	when int64
	ids  []int64
}

// groupByAirDate collects the TVDB ids of a dated category per air date,
// oldest date first. Undated categories return nil.
func groupByAirDate(category catalog.Category, matches []catalog.ShowMatch) []dateGroup {
	if !category.Dated() {
		return nil
	}
	byDate := make(map[string][]catalog.ShowMatch)
	for _, m := range matches {
		if m.AirDate == "" {
			continue
		}
		byDate[m.AirDate] = append(byDate[m.AirDate], m)
	}
	groups := make([]dateGroup, 0, len(byDate))
	for raw, ms := range byDate {
		ids := tvdbIDs(ms)
		if len(ids) == 0 {
			continue
		}
		var when int64
		if parsed, err := catalog.ParseAirDate(raw); err == nil {
			when = parsed.Unix()
		}
		groups = append(groups, dateGroup{raw: raw, when: when, ids: ids})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].when != groups[j].when {
			return groups[i].when < groups[j].when
		}
		return groups[i].raw < groups[j].raw
	})
	return groups
}

type dateBlock struct {
	formatted string
	ids       []int64
}

// dateBlocks renders each group's date and merges groups whose dates render
// identically under a coarse pattern such as "mmm".
func dateBlocks(groups []dateGroup, dates DateFormatter, pattern string, capitalize bool) []dateBlock {
	blocks := make([]dateBlock, 0, len(groups))
	index := make(map[string]int, len(groups))
	for _, g := range groups {
		formatted := dates.Format(g.raw, pattern, capitalize)
		if i, ok := index[formatted]; ok {
			blocks[i].ids = mergeIDs(blocks[i].ids, g.ids)
			continue
		}
		index[formatted] = len(blocks)
		blocks = append(blocks, dateBlock{formatted: formatted, ids: g.ids})
	}
	return blocks
}

func mergeIDs(a, b []int64) []int64 {
	merged := make([]int64, 0, len(a)+len(b))
	merged = append(merged, a...)
	return uniqueIDs(append(merged, b...))
}
