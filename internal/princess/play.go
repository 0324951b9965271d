package princess

import (
	"context"
	"net"

	"golang.org/x/sync/errgroup"
)

// Play runs Solve against a Session judged by oracle over an in-memory
// connection and returns both sides' view of the game. Cancelling ctx tears
// the connection down.
func Play(ctx context.Context, sc Scenario, oracle Oracle) (Result, Verdict, error) {
	if err := sc.Validate(); err != nil {
		return Result{}, Verdict{}, err
	}

	solverEnd, judgeEnd := net.Pipe()
	stop := context.AfterFunc(ctx, func() {
		solverEnd.Close()
		judgeEnd.Close()
	})
	defer stop()

	var (
		res Result
		v   Verdict
		g   errgroup.Group
	)
	g.Go(func() error {
		defer solverEnd.Close()
		var err error
		res, err = Solve(solverEnd, solverEnd)
		return err
	})
	g.Go(func() error {
		defer judgeEnd.Close()
		var err error
		v, err = NewSession(sc, oracle, judgeEnd, judgeEnd).Run()
		return err
	})

	err := g.Wait()
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		err = ctxErr
	}
	return res, v, err
}
