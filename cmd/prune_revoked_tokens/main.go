package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/quizbank-backend/internal/app"
	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
)

// Removes revoked_token rows whose tokens have already expired. Only the
// database denylist accumulates rows; the redis one expires keys itself.
func main() {
	var dryRun bool
	var grace time.Duration
	flag.BoolVar(&dryRun, "dry-run", false, "count expired rows without deleting")
	flag.DurationVar(&grace, "grace", 0, "keep rows that expired less than this long ago")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	before := time.Now().UTC().Add(-grace)

	if dryRun {
		var n int64
		err := application.DB.WithContext(ctx).
			Model(&types.RevokedToken{}).
			Where("expires_at <= ?", before).
			Count(&n).Error
		if err != nil {
			fmt.Printf("count expired tokens: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("dry run: %d expired revoked tokens\n", n)
		return
	}

	n, err := application.Repos.RevokedToken.FullDeleteExpired(dbctx.Context{Ctx: ctx}, before)
	if err != nil {
		fmt.Printf("prune revoked tokens: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("pruned %d expired revoked tokens\n", n)
}
