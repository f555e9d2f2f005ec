package kometa_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tssk/internal/catalog"
	"tssk/internal/dateformat"
	"tssk/internal/kometa"
	"tssk/internal/pipeline"
	"tssk/internal/testsupport"
)

const sampleTemplates = `
backdrop_upcoming_episode:
  enable: true
  back_color: "#AB1E00"
text_upcoming_episode:
  date_format: "dd/mm"
  use_text: "PRÓXIMO"
  capitalize_dates: false
  font_size: 60
backdrop_ended:
  enable: false
text_ended:
  use_text: "FINALIZADO"
colecao_finalizados:
  collection_name: "Finalizados"
  visible_home: true
  sort_title: "+1_8Finalizados"
  sync_mode: append
text_new_episode_released:
  use_text: "NOVO"
  date_format: "dd"
`

func loadTemplates(t *testing.T) *kometa.Templates {
	t.Helper()
	tpl, err := kometa.ParseTemplates([]byte(sampleTemplates))
	require.NoError(t, err)
	return tpl
}

func decode(t *testing.T, data []byte) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.NotEmpty(t, doc.Content)
	return doc.Content[0]
}

func child(t *testing.T, m *yaml.Node, key string) *yaml.Node {
	t.Helper()
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	t.Fatalf("key %q not found in %v", key, keys(m))
	return nil
}

func keys(m *yaml.Node) []string {
	var out []string
	for i := 0; i+1 < len(m.Content); i += 2 {
		out = append(out, m.Content[i].Value)
	}
	return out
}

func match(title string, tvdb int64, airDate string) catalog.ShowMatch {
	return catalog.ShowMatch{Title: title, TVDBID: tvdb, AirDate: airDate, SeasonNumber: 1, EpisodeNumber: 2}
}

func TestRenderOverlayGroupsDatedCategoriesChronologically(t *testing.T) {
	tpl := loadTemplates(t)
	matches := []catalog.ShowMatch{
		match("Later", 300, "02/02/2025"),
		match("Sooner", 200, "28/01/2025"),
		match("Same day", 100, "02/02/2025"),
		match("No id", 0, "02/02/2025"),
	}

	data, err := kometa.RenderOverlay(catalog.CategoryUpcomingEpisode, matches,
		tpl.Section("backdrop_upcoming_episode"), tpl.Section("text_upcoming_episode"),
		dateformat.NewTranslator(nil))
	require.NoError(t, err)

	overlays := child(t, decode(t, data), "overlays")
	require.Equal(t, []string{"backdrop", "TSSK_28/01", "TSSK_02/02"}, keys(overlays))

	backdrop := child(t, overlays, "backdrop")
	require.Equal(t, "100, 200, 300", child(t, backdrop, "tvdb_show").Value)
	bdOverlay := child(t, backdrop, "overlay")
	require.Equal(t, []string{"back_color", "name"}, keys(bdOverlay))
	require.Equal(t, "backdrop", child(t, bdOverlay, "name").Value)

	later := child(t, overlays, "TSSK_02/02")
	require.Equal(t, "100, 300", child(t, later, "tvdb_show").Value)
	text := child(t, later, "overlay")
	require.Equal(t, []string{"font_size", "name"}, keys(text))
	require.Equal(t, "text(PRÓXIMO 02/02)", child(t, text, "name").Value)
}

func TestRenderOverlayUndatedCategoryUsesFixedKey(t *testing.T) {
	tpl := loadTemplates(t)
	data, err := kometa.RenderOverlay(catalog.CategoryEnded,
		[]catalog.ShowMatch{{Title: "B", TVDBID: 20}, {Title: "A", TVDBID: 10}},
		tpl.Section("backdrop_ended"), tpl.Section("text_ended"), dateformat.NewTranslator(nil))
	require.NoError(t, err)

	overlays := child(t, decode(t, data), "overlays")
	require.Equal(t, []string{"TSSK_finalizados"}, keys(overlays), "disabled backdrop must be omitted")
	block := child(t, overlays, "TSSK_finalizados")
	require.Equal(t, "10, 20", child(t, block, "tvdb_show").Value)
	require.Equal(t, "text(FINALIZADO)", child(t, child(t, block, "overlay"), "name").Value)
}

func TestRenderOverlaySeasonFinaleIgnoresAirDates(t *testing.T) {
	data, err := kometa.RenderOverlay(catalog.CategorySeasonFinale,
		[]catalog.ShowMatch{match("Show", 5, "01/01/2025")}, nil, nil, dateformat.NewTranslator(nil))
	require.NoError(t, err)

	overlays := child(t, decode(t, data), "overlays")
	require.Equal(t, []string{"backdrop", "TSSK_final_de_temporada"}, keys(overlays))
	text := child(t, child(t, overlays, "TSSK_final_de_temporada"), "overlay")
	require.Equal(t, "text(NOVA TEMPORADA)", child(t, text, "name").Value)
}

func TestRenderOverlayEmpty(t *testing.T) {
	data, err := kometa.RenderOverlay(catalog.CategoryCancelled, nil, nil, nil, dateformat.NewTranslator(nil))
	require.NoError(t, err)
	require.Equal(t, kometa.EmptyOverlay, string(data))
}

func TestRenderOverlayMergesDatesThatRenderAlike(t *testing.T) {
	text := decode(t, []byte("date_format: \"mmm\"\ncapitalize_dates: false\n"))
	matches := []catalog.ShowMatch{
		match("One", 1, "03/01/2025"),
		match("Two", 2, "20/01/2025"),
	}
	data, err := kometa.RenderOverlay(catalog.CategoryUpcomingFinale, matches, nil, text, dateformat.NewTranslator(nil))
	require.NoError(t, err)

	overlays := child(t, decode(t, data), "overlays")
	require.Len(t, keys(overlays), 2)
	merged := overlays.Content[3]
	require.Equal(t, "1, 2", child(t, merged, "tvdb_show").Value)
}

func TestRenderCollectionOrdersKeys(t *testing.T) {
	tpl := loadTemplates(t)
	data, err := kometa.RenderCollection(tpl.Section("colecao_finalizados"),
		[]catalog.ShowMatch{{TVDBID: 9}, {TVDBID: 3}}, kometa.Summary(catalog.CategoryEnded, 0))
	require.NoError(t, err)
	require.Contains(t, string(data), `sort_title: "+1_8Finalizados"`)

	collections := child(t, decode(t, data), "collections")
	require.Equal(t, []string{"Finalizados"}, keys(collections))
	body := child(t, collections, "Finalizados")
	require.Equal(t, []string{"summary", "sort_title", "visible_home", "sync_mode", "tvdb_show"}, keys(body))
	require.Equal(t, "Seriados que já foram Finalizados.", child(t, body, "summary").Value)
	require.Equal(t, "sync", child(t, body, "sync_mode").Value)
	require.Equal(t, "3, 9", child(t, body, "tvdb_show").Value)
}

func TestRenderCollectionEmptyRemovesLabel(t *testing.T) {
	tpl := loadTemplates(t)
	data, err := kometa.RenderCollection(tpl.Section("colecao_finalizados"), nil, "unused")
	require.NoError(t, err)

	body := child(t, child(t, decode(t, data), "collections"), "Finalizados")
	require.Equal(t, []string{"plex_search", "item_label.remove", "smart_label", "build_collection"}, keys(body))
	require.Equal(t, "Finalizados", child(t, child(t, child(t, body, "plex_search"), "all"), "label").Value)
	require.Equal(t, "false", child(t, body, "build_collection").Value)
}

func TestRenderPlexFilterDoublesAirDateForFreshSeasons(t *testing.T) {
	var filter kometa.PlexFilter
	for _, f := range kometa.PlexFilters() {
		if f.Number == 16 {
			filter = f
		}
	}
	require.Equal(t, "16_TSSK_TV_NOVA_TEMPORADA_ADICIONADA_OVERLAYS.yml", filter.FileName())

	data, err := kometa.RenderPlexFilter(filter, nil, nil, 7)
	require.NoError(t, err)

	overlays := child(t, decode(t, data), "overlays")
	require.Equal(t, []string{"backdrop", "nova_temporada_adicionada_nv_temporada"}, keys(overlays))
	block := child(t, overlays, "nova_temporada_adicionada_nv_temporada")
	require.Equal(t, []string{"run_definition", "builder_level", "plex_search", "overlay"}, keys(block))
	require.Equal(t, "show", child(t, block, "run_definition").Value)
	require.Equal(t, "season", child(t, block, "builder_level").Value)
	search := child(t, block, "plex_search")
	require.Equal(t, "season", child(t, search, "type").Value)
	all := child(t, search, "all")
	require.Equal(t, "7", child(t, all, "added").Value)
	require.Equal(t, "14", child(t, all, "episode_air_date").Value)
	require.Equal(t, "text(NOVA TEMPORADA)", child(t, child(t, block, "overlay"), "name").Value)
}

func TestRenderPlexFilterStripsDateKeys(t *testing.T) {
	tpl := loadTemplates(t)
	filters := kometa.PlexFilters()
	last := filters[len(filters)-1]
	require.Equal(t, 18, last.Number)

	data, err := kometa.RenderPlexFilter(last, tpl.Section("backdrop_new_episode_released"), tpl.Section("text_new_episode_released"), 3)
	require.NoError(t, err)
	text := child(t, child(t, child(t, decode(t, data), "overlays"), last.BlockKey), "overlay")
	require.Equal(t, []string{"name"}, keys(text))
	require.Equal(t, "text(NOVO)", child(t, text, "name").Value)
}

func TestLoadTemplatesFallsBackToEmbedded(t *testing.T) {
	fs := afero.NewMemMapFs()
	tpl, err := kometa.LoadTemplates(fs, "/missing/templates.yml")
	require.NoError(t, err)
	require.Equal(t, kometa.EmbeddedSource, tpl.Source())
	require.True(t, tpl.Has("colecao_cancelados"))
	require.True(t, tpl.Has("text_new_episode_released"))

	require.NoError(t, afero.WriteFile(fs, "/cfg/templates.yml", []byte(sampleTemplates), 0o644))
	tpl, err = kometa.LoadTemplates(fs, "/cfg/templates.yml")
	require.NoError(t, err)
	require.Equal(t, "/cfg/templates.yml", tpl.Source())
	require.False(t, tpl.Has("colecao_cancelados"))
}

func TestParseTemplatesRejectsNonMapping(t *testing.T) {
	_, err := kometa.ParseTemplates([]byte("- a\n- b\n"))
	require.Error(t, err)
}

func TestPublisherWritesEveryFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fs := afero.NewMemMapFs()
	tpl, err := kometa.ParseTemplates(kometa.DefaultTemplates())
	require.NoError(t, err)

	result := &pipeline.Result{
		Matches: map[catalog.Category][]catalog.ShowMatch{
			catalog.CategoryUpcomingEpisode: {match("Show", 42, "10/03/2025")},
			catalog.CategoryCancelled:       {{Title: "Gone", TVDBID: 7}},
		},
		Skipped: map[catalog.Category][]catalog.ShowMatch{},
	}
	spans := pipeline.Spans{UpcomingEpisode: 14}

	publisher := kometa.NewPublisher(cfg, tpl, kometa.NewWriter(fs), dateformat.NewTranslator(nil), nil)
	report, err := publisher.Publish(context.Background(), result, spans)
	require.NoError(t, err)
	require.Len(t, report.Overlays, len(catalog.Categories()))
	require.Len(t, report.Collections, len(catalog.Categories()))
	require.Len(t, report.Filters, 10)
	require.Equal(t, 28, report.Total())

	upcoming, err := afero.ReadFile(fs, filepath.Join(cfg.Output.OverlayDir, "09_TSSK_TV_PROXIMOS_EPISODIOS_OVERLAYS.yml"))
	require.NoError(t, err)
	overlays := child(t, decode(t, upcoming), "overlays")
	require.Equal(t, []string{"backdrop", "TSSK_SEG 10/03"}, keys(overlays))
	require.Equal(t, "42", child(t, child(t, overlays, "backdrop"), "tvdb_show").Value)

	ended, err := afero.ReadFile(fs, filepath.Join(cfg.Output.OverlayDir, "01_TSSK_TV_FINALIZADOS_OVERLAYS.yml"))
	require.NoError(t, err)
	require.Equal(t, kometa.EmptyOverlay, string(ended))

	collection, err := afero.ReadFile(fs, filepath.Join(cfg.Output.CollectionDir, "TSSK_TV_PROXIMOS_EPISODIOS_COLLECTION.yml"))
	require.NoError(t, err)
	require.Contains(t, string(collection), "Seriados com um próximo episódio dentro de 14 dias")

	exists, err := afero.Exists(fs, filepath.Join(cfg.Output.OverlayDir, "09_TSSK_TV_PROXIMOS_EPISODIOS_OVERLAYS.yml.tmp"))
	require.NoError(t, err)
	require.False(t, exists, "temporary file left behind")
}

func TestPublisherHonoursCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	publisher := kometa.NewPublisher(cfg, nil, kometa.NewWriter(afero.NewMemMapFs()), dateformat.NewTranslator(nil), nil)
	_, err := publisher.Publish(ctx, &pipeline.Result{}, pipeline.Spans{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriterChownsFiles(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("chown to another owner requires root")
	}
	dir := t.TempDir()
	writer := kometa.NewWriter(afero.NewOsFs(), kometa.WithOwnership(1000, 1000))
	path := filepath.Join(dir, "nested", "file.yml")
	require.NoError(t, writer.WriteFile(path, []byte("overlays: {}\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "overlays"))
}
