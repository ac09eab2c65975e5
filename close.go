package ioc

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Close closes every memoized Graph and Container instance of c that
// implements io.Closer, the most recently built first. Instances owned by
// ancestors are left alone. Once ctx is done the remaining instances are
// skipped and ctx's error is part of the result.
//
// Resolving from a closed container fails with ErrContainerClosed, and so
// does calling Close again. Children have to be closed before their parent.
func (c Dic) Close(ctx context.Context) error {
	if !c.c.closed.CompareAndSwap(false, true) {
		return ErrContainerClosed
	}
	c.c.freeze()

	closers := c.c.instances.drain()
	var err error
	for i := len(closers) - 1; i >= 0; i-- {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = multierr.Append(err, errors.Wrapf(ctxErr, "%d instances left open", i+1))
			break
		}
		if closeErr := closers[i].Close(); closeErr != nil {
			err = multierr.Append(err, errors.Wrapf(closeErr, "closing %T", closers[i]))
		}
	}
	c.c.logger.Debug("container closed", zap.Int("instances", len(closers)), zap.Error(err))
	return err
}
