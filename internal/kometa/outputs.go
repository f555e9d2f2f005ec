package kometa

import (
	"fmt"

	"tssk/internal/catalog"
)

// categoryOutput describes the files emitted for one category.
type categoryOutput struct {
	number   int
	name     string
	blockKey string
	section  string
	// fallbackSection lets the bare backdrop/text keys stand in for the
	// category-specific ones.
	fallbackSection bool
	collectionKeys  []string
	summary         func(days int) string
}

func fixedSummary(text string) func(int) string {
	return func(int) string { return text }
}

var categoryOutputs = map[catalog.Category]categoryOutput{
	catalog.CategoryCancelled: {
		number: 0, name: "CANCELADOS", blockKey: "TSSK_cancelados", section: "cancelled",
		collectionKeys: []string{"colecao_cancelados"},
		summary:        fixedSummary("Seriados que foram cancelados."),
	},
	catalog.CategoryEnded: {
		number: 1, name: "FINALIZADOS", blockKey: "TSSK_finalizados", section: "ended",
		collectionKeys: []string{"colecao_finalizados"},
		summary:        fixedSummary("Seriados que já foram Finalizados."),
	},
	catalog.CategoryReturning: {
		number: 2, name: "RETORNANDO", blockKey: "TSSK_retornando", section: "returning",
		collectionKeys: []string{"colecao_seriados_que_retornarao"},
		summary:        fixedSummary("Seriados que tiveram seu retorno confirmado"),
	},
	catalog.CategoryNewSeasonStarted: {
		number: 7, name: "NOVA_TEMPORADA_INICIADA", blockKey: "TSSK_nova_temporada_iniciada", section: "new_season_started",
		collectionKeys: []string{"colecao_nova_temporada_iniciada"},
		summary: func(days int) string {
			return fmt.Sprintf("Seriados com uma nova temporada que começou nos últimos %d dias", days)
		},
	},
	catalog.CategoryNewSeason: {
		number: 8, name: "NOVA_TEMPORADA", blockKey: "TSSK_overlay", section: "new_season", fallbackSection: true,
		collectionKeys: []string{"colecao_nova_temporada"},
		summary: func(days int) string {
			return fmt.Sprintf("Seriados com uma nova temporada começando dentro de %d dias", days)
		},
	},
	catalog.CategoryUpcomingEpisode: {
		number: 9, name: "PROXIMOS_EPISODIOS", blockKey: "TSSK_overlay", section: "upcoming_episode",
		collectionKeys: []string{"colecao_proximos_episodios"},
		summary: func(days int) string {
			return fmt.Sprintf("Seriados com um próximo episódio dentro de %d dias", days)
		},
	},
	catalog.CategoryUpcomingFinale: {
		number: 10, name: "PROXIMOS_FINAIS", blockKey: "TSSK_overlay", section: "upcoming_finale",
		// colecao_procimos_finais is the spelling older config files carry.
		collectionKeys: []string{"colecao_proximos_finais", "colecao_procimos_finais"},
		summary: func(days int) string {
			return fmt.Sprintf("Seriados com um final de temporada dentro de %d dias", days)
		},
	},
	catalog.CategorySeasonFinale: {
		number: 11, name: "FIM_TEMPORADA", blockKey: "TSSK_final_de_temporada", section: "season_finale",
		collectionKeys: []string{"colecao_fim_temporada"},
		summary: func(days int) string {
			return fmt.Sprintf("Seriados com um final de temporada que foi ao ar nos últimos %d dias", days)
		},
	},
	catalog.CategoryFinalEpisode: {
		number: 12, name: "EPISODIO_FINAL", blockKey: "TSSK_episódio_final", section: "final_episode",
		collectionKeys: []string{"colecao_episodio_final"},
		summary: func(days int) string {
			return fmt.Sprintf("Seriados com um episódio final que foi ao ar nos últimos %d dias", days)
		},
	},
}

// OverlayFileName returns the overlay file name of a category, or "".
func OverlayFileName(category catalog.Category) string {
	out, ok := categoryOutputs[category]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d_TSSK_TV_%s_OVERLAYS.yml", out.number, out.name)
}

// CollectionFileName returns the collection file name of a category, or "".
func CollectionFileName(category catalog.Category) string {
	out, ok := categoryOutputs[category]
	if !ok {
		return ""
	}
	return fmt.Sprintf("TSSK_TV_%s_COLLECTION.yml", out.name)
}

// Summary returns the collection summary for category given its day span.
func Summary(category catalog.Category, days int) string {
	out, ok := categoryOutputs[category]
	if !ok {
		return "Coleção de Seriados"
	}
	return out.summary(days)
}

func (o categoryOutput) backdropKeys() []string {
	if o.fallbackSection {
		return []string{"backdrop_" + o.section, "backdrop"}
	}
	return []string{"backdrop_" + o.section}
}

func (o categoryOutput) textKeys() []string {
	if o.fallbackSection {
		return []string{"text_" + o.section, "text"}
	}
	return []string{"text_" + o.section}
}
