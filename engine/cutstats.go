package engine

import "github.com/rs/zerolog"

// CutStatistics counts how each node of a search ended.
type CutStatistics struct {
	Nodes            uint64
	QuiescenceNodes  uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	DrawsDetected    uint64
	CompletedDepths  int
}

// MarshalZerologObject lets a search log its statistics as one object.
func (s CutStatistics) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("qnodes", s.QuiescenceNodes).
		Uint64("beta_cutoffs", s.BetaCutoffs).
		Uint64("qstandpat_cutoffs", s.QStandPatCutoffs).
		Uint64("qbeta_cutoffs", s.QBetaCutoffs).
		Uint64("draws", s.DrawsDetected).
		Int("depths", s.CompletedDepths)
}
