package perfdata

import (
	"context"
	"time"

	"github.com/joshuapare/perfkit/internal/format"
	"github.com/joshuapare/perfkit/pkg/types"
)

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// waitAccessible polls the accessible flag until the producer sets it. The
// producer zero-fills the region before writing the header, so an all-zero
// region means "not ready yet" rather than "no counters".
func waitAccessible(ctx context.Context, region []byte, opts Options) error {
	if len(region) < format.PrologueSize {
		return structureErr("region too small: %d bytes, need %d", len(region), format.PrologueSize)
	}
	sleep := opts.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	deadline := time.Now().Add(opts.SyncWait)
	for {
		ok, err := format.IsAccessible(region)
		if err != nil {
			return wrapFormatErr(err)
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return types.ErrSyncTimeout
		}
		if err := sleep(ctx, opts.SyncInterval); err != nil {
			return &types.Error{Kind: types.ErrKindTimeout, Msg: types.ErrSyncTimeout.Msg, Err: err}
		}
	}
}
