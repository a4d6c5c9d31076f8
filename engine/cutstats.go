package engine

import (
	"fmt"

	"github.com/rs/zerolog"
)

// SearchStats collects node counts and how often each pruning mechanism fired.
type SearchStats struct {
	Nodes                uint64
	TTProbes             uint64
	TTHits               uint64
	TTCutoffs            uint64
	BetaCutoffs          uint64
	AspirationResearches uint64
	FullWindowFallbacks  uint64
}

func (st SearchStats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", st.Nodes).
		Uint64("tt_probes", st.TTProbes).
		Uint64("tt_hits", st.TTHits).
		Uint64("tt_cutoffs", st.TTCutoffs).
		Uint64("beta_cutoffs", st.BetaCutoffs).
		Uint64("aspiration_researches", st.AspirationResearches).
		Uint64("full_window_fallbacks", st.FullWindowFallbacks)
}

func (st SearchStats) String() string {
	return fmt.Sprintf("nodes=%d tt_probes=%d tt_hits=%d tt_cutoffs=%d beta_cutoffs=%d aspiration_researches=%d full_window_fallbacks=%d",
		st.Nodes, st.TTProbes, st.TTHits, st.TTCutoffs, st.BetaCutoffs, st.AspirationResearches, st.FullWindowFallbacks)
}

// Add accumulates the counters of another search.
func (st *SearchStats) Add(o SearchStats) {
	st.Nodes += o.Nodes
	st.TTProbes += o.TTProbes
	st.TTHits += o.TTHits
	st.TTCutoffs += o.TTCutoffs
	st.BetaCutoffs += o.BetaCutoffs
	st.AspirationResearches += o.AspirationResearches
	st.FullWindowFallbacks += o.FullWindowFallbacks
}
