package leaderboard

import "context"

// Offline is the gateway used when no backend is configured.
// Every call fails with ErrOffline.
type Offline struct{}

var _ Gateway = Offline{}

func (Offline) SubmitRun(context.Context, RunSummary) error {
	return ErrOffline
}

func (Offline) TopN(context.Context, int) ([]Standing, error) {
	return nil, ErrOffline
}

func (Offline) UserRank(context.Context) (*Rank, error) {
	return nil, ErrOffline
}
