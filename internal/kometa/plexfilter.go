package kometa

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Builder levels and search types understood by Kometa.
const (
	LevelShow    = "show"
	LevelSeason  = "season"
	LevelEpisode = "episode"
)

type criterion struct {
	key    string
	factor int
}

// PlexFilter is an overlay that Kometa resolves with a plex_search against
// the library rather than a list of TVDB ids.
type PlexFilter struct {
	Number       int
	Name         string
	Section      string
	BuilderLevel string
	SearchType   string
	BlockKey     string
	DefaultText  string
	criteria     []criterion
}

var (
	episodeAdded   = []criterion{{key: "episode_added", factor: 1}}
	episodeAirDate = []criterion{{key: "episode_air_date", factor: 1}}
	added          = []criterion{{key: "added", factor: 1}}
	// A season counts as new when it was added recently and its episodes
	// aired within twice that span.
	seasonFresh = []criterion{{key: "added", factor: 1}, {key: "episode_air_date", factor: 2}}
)

var plexFilters = []PlexFilter{
	{Number: 3, Name: "NOVO_EPISODIO", Section: "new_episode_added", BuilderLevel: LevelShow, SearchType: LevelEpisode,
		BlockKey: "episodios_recen_adicionados_nv_seriado", DefaultText: "NOVOS EPISÓDIOS", criteria: episodeAdded},
	{Number: 4, Name: "NOVO_RECENTE_EPISODIO", Section: "recent_new_episode_added", BuilderLevel: LevelShow, SearchType: LevelEpisode,
		BlockKey: "episodios_novos_adicionados_nv_seriado", DefaultText: "EPISÓDIO NOVO", criteria: episodeAirDate},
	{Number: 5, Name: "NOVO_EPISODIO_TEMPORADA", Section: "new_season_added", BuilderLevel: LevelShow, SearchType: LevelSeason,
		BlockKey: "nova_temporada_adicionada_nv_seriado", DefaultText: "TEMPORADA ATUALIZADA", criteria: seasonFresh},
	{Number: 6, Name: "NOVO_SERIADO", Section: "new_show", BuilderLevel: LevelShow, SearchType: LevelShow,
		BlockKey: "seriado_adicionado_recentemente_nv_seriado", DefaultText: "ADICIONADO RECENTEMENTE", criteria: added},
	{Number: 13, Name: "EPISODIO_NA_TEMPORADA", Section: "episode_season", BuilderLevel: LevelSeason, SearchType: LevelEpisode,
		BlockKey: "episodio_adicionado_temporada_nv_temporada", DefaultText: "NOVOS EPISÓDIOS", criteria: episodeAdded},
	{Number: 14, Name: "NOVO_EPISODIO_NA_TEMPORADA", Section: "new_episode_season", BuilderLevel: LevelSeason, SearchType: LevelEpisode,
		BlockKey: "episodio_novo_temporada_nv_temporada", DefaultText: "EPISÓDIO NOVO", criteria: episodeAirDate},
	{Number: 15, Name: "TEMPORADA_ADICIONADA", Section: "season_added", BuilderLevel: LevelSeason, SearchType: LevelSeason,
		BlockKey: "temporada_adicionada_nv_temporada", DefaultText: "ADICIONADA RECENTEMENTE", criteria: added},
	{Number: 16, Name: "NOVA_TEMPORADA_ADICIONADA", Section: "new_season_released", BuilderLevel: LevelSeason, SearchType: LevelSeason,
		BlockKey: "nova_temporada_adicionada_nv_temporada", DefaultText: "NOVA TEMPORADA", criteria: seasonFresh},
	{Number: 17, Name: "EPISODIO_ADICIONADO", Section: "episode_added", BuilderLevel: LevelEpisode, SearchType: LevelEpisode,
		BlockKey: "episodio_adicionado_nv_episodio", DefaultText: "ADICIONADO RECENTEMENTE", criteria: episodeAdded},
	{Number: 18, Name: "NOVO_EPISODIO_ADICIONADO", Section: "new_episode_released", BuilderLevel: LevelEpisode, SearchType: LevelEpisode,
		BlockKey: "novo_episodio_adicionado_nv_episodio", DefaultText: "EPISÓDIO NOVO", criteria: episodeAirDate},
}

// PlexFilters lists every Plex-filter overlay in file number order.
func PlexFilters() []PlexFilter {
	out := make([]PlexFilter, len(plexFilters))
	copy(out, plexFilters)
	return out
}

// FileName returns the overlay file name.
func (f PlexFilter) FileName() string {
	return fmt.Sprintf("%02d_TSSK_TV_%s_OVERLAYS.yml", f.Number, f.Name)
}

func (f PlexFilter) search(days int) *yaml.Node {
	all := mappingNode()
	for _, c := range f.criteria {
		set(all, c.key, intNode(days*c.factor))
	}
	search := mappingNode()
	set(search, "type", strNode(f.SearchType))
	set(search, "all", all)
	return search
}

func (f PlexFilter) block(overlay *yaml.Node, days int) *yaml.Node {
	block := mappingNode()
	set(block, "run_definition", strNode(LevelShow))
	set(block, "builder_level", strNode(f.BuilderLevel))
	set(block, "plex_search", f.search(days))
	set(block, "overlay", overlay)
	return block
}

// RenderPlexFilter builds the overlay file for f with the given day span.
func RenderPlexFilter(f PlexFilter, backdrop, text *yaml.Node, days int) ([]byte, error) {
	overlays := mappingNode()

	bd := clone(backdrop)
	if popBool(bd, "enable", true) {
		set(bd, "name", strNode("backdrop"))
		set(overlays, "backdrop", f.block(bd, days))
	}

	tx := clone(text)
	if popBool(tx, "enable", true) {
		useText := popString(tx, "use_text", f.DefaultText)
		pop(tx, "date_format")
		pop(tx, "capitalize_dates")
		set(tx, "name", strNode("text("+useText+")"))
		set(overlays, f.BlockKey, f.block(tx, days))
	}

	root := mappingNode()
	set(root, "overlays", overlays)
	return encode(root)
}
