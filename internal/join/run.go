package join

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/committools/internal/logging"
)

// Job describes one join run.
type Job struct {
	LeftPath   string
	LeftKey    int
	RightPath  string
	RightKey   int
	OutputPath string
	Comma      rune
}

// Summary reports the size of each pipeline stage.
type Summary struct {
	LeftKeys  int
	RightKeys int
	Joined    int
	Duration  time.Duration
}

// Run reads both inputs, joins them and writes the output. Nothing is
// written if either input fails to load.
func Run(ctx context.Context, job Job) (Summary, error) {
	var sum Summary
	start := time.Now()

	if job.Comma == 0 {
		job.Comma = ','
	}

	logger := logging.WithFields(ctx,
		"left", job.LeftPath,
		"right", job.RightPath,
		"output", job.OutputPath,
	)
	logger.Info("join started", "left_key", job.LeftKey, "right_key", job.RightKey)

	left, err := ReadTable(job.LeftPath, job.LeftKey, job.Comma)
	if err != nil {
		return sum, fmt.Errorf("read left table: %w", err)
	}
	sum.LeftKeys = left.Len()

	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("join cancelled: %w", err)
	}

	right, err := ReadTable(job.RightPath, job.RightKey, job.Comma)
	if err != nil {
		return sum, fmt.Errorf("read right table: %w", err)
	}
	sum.RightKeys = right.Len()

	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("join cancelled: %w", err)
	}

	res := Match(left, right)
	sum.Joined = res.Len()

	if err := WriteTable(res, job.OutputPath, job.Comma); err != nil {
		return sum, fmt.Errorf("write result: %w", err)
	}

	sum.Duration = time.Since(start)
	logger.Info("join completed",
		"left_keys", sum.LeftKeys,
		"right_keys", sum.RightKeys,
		"joined", sum.Joined,
		"duration", sum.Duration,
	)
	return sum, nil
}
