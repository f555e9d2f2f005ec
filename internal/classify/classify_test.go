package classify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tssk/internal/catalog"
	"tssk/internal/classify"
	"tssk/internal/logging"
	"tssk/internal/services"
	"tssk/internal/testsupport"
)

const day = testsupport.Day

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func window(days int) classify.Window {
	return classify.NewWindow(refNow, 0, days, false)
}

func titles(matches []catalog.ShowMatch) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Title)
	}
	return out
}

func TestSpecialsNeverParticipate(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Specials", catalog.StatusContinuing).
		Episode(0, 1, 2*day, false).
		Episode(0, 2, -2*day, true).
		Episode(0, 3, 3*day, false)
	snap := b.Build()

	for name, out := range map[string]classify.Outcome{
		"new season":     classify.UpcomingNewSeason(snap, window(10)),
		"new show":       classify.UpcomingNewShow(snap, window(10)),
		"regular":        classify.UpcomingRegularEpisode(snap, window(10)),
		"finale":         classify.UpcomingFinale(snap, window(10)),
		"season finale":  classify.RecentSeasonFinale(snap, window(10)),
		"season started": classify.NewSeasonStarted(snap, window(10)),
	} {
		if len(out.Matched)+len(out.Skipped) != 0 {
			t.Fatalf("%s: specials leaked into output: %+v", name, out)
		}
	}
}

func TestUpcomingNewSeasonMatchesLaterSeasonPremiere(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Returning Show", catalog.StatusContinuing).
		Episode(1, 1, -400*day, true).
		Episode(1, 2, -393*day, true).
		Episode(2, 1, -30*day, true).
		Episode(2, 2, -23*day, true).
		Episode(3, 1, 5*day, false).
		Episode(3, 2, 12*day, false)
	snap := b.Build()

	out := classify.UpcomingNewSeason(snap, window(10))
	if len(out.Matched) != 1 {
		t.Fatalf("expected one match, got %+v", out)
	}
	got := out.Matched[0]
	if got.SeasonNumber != 3 || got.EpisodeNumber != 0 {
		t.Fatalf("expected season 3 without episode, got %+v", got)
	}
	if got.AirDate != "20/06/2025" {
		t.Fatalf("unexpected air date %q", got.AirDate)
	}
	if got.TVDBID != 100 || got.SeriesID != 1 {
		t.Fatalf("unexpected ids %+v", got)
	}

	ended := classify.EndedOrCancelled(context.Background(), snap, window(10), nil, logging.NewNop())
	if len(ended.Ended)+len(ended.Cancelled) != 0 {
		t.Fatalf("continuing series must not be ended: %+v", ended)
	}
}

func TestUpcomingNewSeasonOutsideWindow(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Far Away", catalog.StatusContinuing).
		Episode(1, 1, -100*day, true).
		Episode(2, 1, 11*day, false)
	if out := classify.UpcomingNewSeason(b.Build(), window(10)); len(out.Matched) != 0 {
		t.Fatalf("expected no match outside window, got %+v", out.Matched)
	}
}

func TestForwardWindowBoundaries(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "At Cutoff", catalog.StatusContinuing).
		Episode(1, 1, -20*day, true).
		Episode(2, 1, 10*day, false)
	b.Series(2, "At Now", catalog.StatusContinuing).
		Episode(1, 1, -20*day, true).
		Episode(2, 1, 0, false)

	out := classify.UpcomingNewSeason(b.Build(), window(10))
	if got := titles(out.Matched); len(got) != 1 || got[0] != "At Cutoff" {
		t.Fatalf("expected only the cutoff episode to qualify, got %v", got)
	}
}

func TestUpcomingNewShowIsAlwaysSkipped(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Brand New", catalog.StatusUpcoming).
		Episode(1, 1, 3*day, false).
		Episode(1, 2, 10*day, false)
	snap := b.Build()

	out := classify.UpcomingNewShow(snap, window(7))
	if len(out.Matched) != 0 || len(out.Skipped) != 1 {
		t.Fatalf("expected a single skipped entry, got %+v", out)
	}
	if out.Skipped[0].Reason != catalog.NewShowReason {
		t.Fatalf("unexpected reason %q", out.Skipped[0].Reason)
	}
	if season := classify.UpcomingNewSeason(snap, window(7)); len(season.Matched)+len(season.Skipped) != 0 {
		t.Fatalf("first season must not count as new season: %+v", season)
	}
}

func TestUpcomingRegularEpisodePicksEarliest(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Weekly", catalog.StatusContinuing).
		Episode(1, 1, -5*day, true).
		Episode(1, 4, 9*day, false).
		Episode(1, 3, 2*day, false).
		Episode(1, 2, 1*day, true).
		Episode(1, 8, 40*day, false)

	out := classify.UpcomingRegularEpisode(b.Build(), window(10))
	if len(out.Matched) != 1 {
		t.Fatalf("expected one match, got %+v", out)
	}
	if got := out.Matched[0]; got.SeasonNumber != 1 || got.EpisodeNumber != 3 {
		t.Fatalf("expected S01E03 (earliest undownloaded), got %s", got.Position())
	}
}

func TestDownloadedFutureEpisodeExcludedFromUpcoming(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Early Leak", catalog.StatusContinuing).
		Episode(1, 1, -10*day, true).
		Episode(1, 2, 2*day, true).
		Episode(1, 3, 60*day, false)
	b.Series(2, "Early Premiere", catalog.StatusContinuing).
		Episode(1, 1, -100*day, true).
		Episode(2, 1, 2*day, true)
	snap := b.Build()

	for name, out := range map[string]classify.Outcome{
		"new season": classify.UpcomingNewSeason(snap, window(10)),
		"regular":    classify.UpcomingRegularEpisode(snap, window(10)),
		"finale":     classify.UpcomingFinale(snap, window(10)),
	} {
		if len(out.Matched)+len(out.Skipped) != 0 {
			t.Fatalf("%s: downloaded episode should not qualify, got %+v", name, out)
		}
	}
}

func TestUpcomingFinaleRequiresMultiEpisodeSeason(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Finale Soon", catalog.StatusContinuing).
		Episode(1, 1, -7*day, true).
		Episode(1, 2, 3*day, false)
	b.Series(2, "Mid Season", catalog.StatusContinuing).
		Episode(1, 1, -7*day, true).
		Episode(1, 2, 3*day, false).
		Episode(1, 3, 10*day, false)
	snap := b.Build()

	finale := classify.UpcomingFinale(snap, window(7))
	if got := titles(finale.Matched); len(got) != 1 || got[0] != "Finale Soon" {
		t.Fatalf("unexpected finale matches %v", got)
	}
	regular := classify.UpcomingRegularEpisode(snap, window(7))
	if got := titles(regular.Matched); len(got) != 1 || got[0] != "Mid Season" {
		t.Fatalf("unexpected regular matches %v", got)
	}
}

func TestUnmonitoredCandidatesAreDemoted(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Episode Off", catalog.StatusContinuing).
		Episode(1, 1, -90*day, true).
		Episode(2, 1, 4*day, false).UnmonitoredLast()
	b.Series(2, "Season Off", catalog.StatusContinuing).
		Season(1, true).
		Season(2, false).
		Episode(1, 1, -90*day, true).
		Episode(2, 1, 4*day, false)
	snap := b.Build()

	skip := classify.NewWindow(refNow, 0, 7, true)
	out := classify.UpcomingNewSeason(snap, skip)
	if len(out.Matched) != 0 || len(out.Skipped) != 2 {
		t.Fatalf("expected both demoted, got %+v", out)
	}

	verdicts := classify.Verdicts(catalog.CategoryNewSeason, snap, skip)
	for _, v := range verdicts {
		if v.Kind != classify.KindSkipped || v.Reason != classify.SkipUnmonitored {
			t.Fatalf("unexpected verdict %+v", v)
		}
	}

	if keep := classify.UpcomingNewSeason(snap, window(7)); len(keep.Matched) != 2 {
		t.Fatalf("without skipping both should match, got %+v", keep)
	}
}

func TestRecentSeasonFinale(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Just Ended Season", catalog.StatusContinuing).
		Episode(1, 1, -10*day, true).
		Episode(1, 2, -3*day, true)
	b.Series(2, "Downloaded Early", catalog.StatusUpcoming).
		Episode(1, 1, -10*day, true).
		Episode(1, 2, 2*day, true)
	b.Series(3, "Too Old", catalog.StatusContinuing).
		Episode(1, 1, -40*day, true).
		Episode(1, 2, -30*day, true)
	b.Series(4, "Ended Series", catalog.StatusEnded).
		Episode(1, 1, -10*day, true).
		Episode(1, 2, -3*day, true)
	b.Series(5, "Finale Missing", catalog.StatusContinuing).
		Episode(1, 1, -10*day, true).
		Episode(1, 2, -3*day, false)
	snap := b.Build()

	out := classify.RecentSeasonFinale(snap, window(14))
	got := titles(out.Matched)
	if len(got) != 2 || got[0] != "Just Ended Season" || got[1] != "Downloaded Early" {
		t.Fatalf("unexpected matches %v", got)
	}
	if out.Matched[0].AirDate != "12/06/2025" {
		t.Fatalf("unexpected air date %q", out.Matched[0].AirDate)
	}
	if out.Matched[1].AirDate != "15/06/2025" {
		t.Fatalf("future download should report today, got %q", out.Matched[1].AirDate)
	}
}

func TestRecentSeasonFinaleDropsUnmonitoredSeries(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Ignored", catalog.StatusContinuing).
		Unmonitored().
		Episode(1, 1, -10*day, true).
		Episode(1, 2, -3*day, true)
	snap := b.Build()

	out := classify.RecentSeasonFinale(snap, classify.NewWindow(refNow, 0, 14, true))
	if len(out.Matched)+len(out.Skipped) != 0 {
		t.Fatalf("unmonitored series must be excluded entirely, got %+v", out)
	}
}

func TestRecentFinalEpisodeAndEndedGuards(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Revived", catalog.StatusEnded).
		Episode(3, 9, -9*day, true).
		Episode(3, 10, -2*day, true).
		Episode(4, 1, 5*day, false)
	b.Series(2, "Finished", catalog.StatusEnded).
		Episode(3, 9, -9*day, true).
		Episode(3, 10, -2*day, true).
		Episode(4, 1, -1*day, false)
	snap := b.Build()

	final := classify.RecentFinalEpisode(snap, window(14))
	if got := titles(final.Matched); len(got) != 1 || got[0] != "Finished" {
		t.Fatalf("unexpected final-episode matches %v", got)
	}
	if pos := final.Matched[0].Position(); pos != "S03E10" {
		t.Fatalf("expected highest downloaded episode, got %s", pos)
	}

	ended := classify.EndedOrCancelled(context.Background(), snap, window(14), nil, logging.NewNop())
	if got := titles(ended.Ended); len(got) != 1 || got[0] != "Finished" {
		t.Fatalf("unexpected ended matches %v", got)
	}
}

func TestNewSeasonStarted(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Second Season", catalog.StatusContinuing).
		Episode(1, 1, -300*day, true).
		Episode(2, 2, -1*day, true).
		Episode(2, 1, -3*day, true)
	b.Series(2, "Only Latest", catalog.StatusContinuing).
		Episode(1, 1, -300*day, false).
		Episode(2, 1, -3*day, true)
	b.Series(3, "Single Season", catalog.StatusContinuing).
		Episode(1, 1, -3*day, true)
	snap := b.Build()

	out := classify.NewSeasonStarted(snap, window(7))
	if got := titles(out.Matched); len(got) != 1 || got[0] != "Second Season" {
		t.Fatalf("unexpected matches %v", got)
	}
	if pos := out.Matched[0].Position(); pos != "S02E01" {
		t.Fatalf("expected first downloaded episode of the season, got %s", pos)
	}
}

func TestEndedOrCancelledLookup(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Axed", catalog.StatusEnded).Episode(1, 1, -100*day, true)
	b.Series(2, "Wrapped", catalog.StatusEnded).Episode(1, 1, -100*day, true)
	b.Series(3, "No Id", catalog.StatusEnded).TVDB(0)
	b.Series(4, "Broken Lookup", catalog.StatusEnded)
	snap := b.Build()

	calls := map[int64]int{}
	lookup := classify.StatusLookupFunc(func(_ context.Context, tvdbID int64) (string, error) {
		calls[tvdbID]++
		switch tvdbID {
		case 100:
			return "Canceled", nil
		case 200:
			return "Ended", nil
		default:
			return "", services.Wrap(services.ErrExternalTool, "tmdb", "lookup", "boom", errors.New("500"))
		}
	})

	res := classify.EndedOrCancelled(context.Background(), snap, window(0), lookup, logging.NewNop())
	if got := titles(res.Cancelled); len(got) != 1 || got[0] != "Axed" {
		t.Fatalf("unexpected cancelled %v", got)
	}
	if got := titles(res.Ended); len(got) != 3 || got[0] != "Wrapped" || got[1] != "No Id" || got[2] != "Broken Lookup" {
		t.Fatalf("unexpected ended %v", got)
	}
	if calls[0] != 0 {
		t.Fatal("lookup must not run without a TVDB id")
	}
}

func TestReturningSkipsClaimed(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	b.Series(1, "Claimed", catalog.StatusContinuing)
	b.Series(2, "Free", catalog.StatusContinuing)
	b.Series(3, "Done", catalog.StatusEnded)

	out := classify.Returning(b.Build(), func(id int64) bool { return id == 1 })
	if got := titles(out.Matched); len(got) != 1 || got[0] != "Free" {
		t.Fatalf("unexpected returning %v", got)
	}
}

func TestAirDatesUseLocalCalendar(t *testing.T) {
	b := testsupport.NewSnapshot(refNow)
	// 22:00 UTC on the 17th is already the 18th at UTC+3.
	b.Series(1, "Late Night", catalog.StatusContinuing).
		Episode(1, 1, -30*day, true).
		Episode(2, 1, 2*day+10*time.Hour, false)

	out := classify.UpcomingNewSeason(b.Build(), classify.NewWindow(refNow, 3, 7, false))
	if len(out.Matched) != 1 || out.Matched[0].AirDate != "18/06/2025" {
		t.Fatalf("expected local date 18/06/2025, got %+v", out.Matched)
	}
}
