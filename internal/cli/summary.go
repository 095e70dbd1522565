package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muesli/termenv"

	"github.com/permitpath/permitpath"
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/fees"
)

// valuationKeys are the answer IDs checked, in order, when estimating
// permit fees from a completed walkthrough.
var valuationKeys = []string{"valuation", "project_valuation", "estimated_cost"}

// finishWalkthrough prints the review and final summary of a completed
// walkthrough, plus a fee estimate when a schedule and jurisdiction
// were supplied.
func finishWalkthrough(ctx context.Context, app *permitpath.App, sessionID string, opts RunOptions) error {
	items, err := app.Review(ctx, sessionID)
	if err != nil {
		return err
	}
	summary, err := app.Summary(ctx, sessionID)
	if err != nil {
		return err
	}

	if opts.JSON {
		data, _ := json.Marshal(summary)
		fmt.Println(string(data))
	} else {
		p := termenv.ColorProfile()
		fmt.Println()
		fmt.Println(termenv.String("Walkthrough complete.").Foreground(p.Color("#4ade80")).Bold())
		printReview(items, false)
		fmt.Printf("\nProject: %s (%s)\n", summary.ProjectName, summary.ProjectType)
		fmt.Printf("Completed: %s\n", summary.Timestamp.Format("2006-01-02 15:04"))
	}

	if opts.FeesPath != "" && opts.Jurisdiction != "" {
		if err := printFeeEstimate(summary, opts); err != nil {
			printSystemMessage("Fee estimate unavailable: %v", err)
		}
	}
	return nil
}

func printReview(items []domain.ReviewItem, jsonMode bool) {
	if jsonMode {
		data, _ := json.Marshal(items)
		fmt.Println(string(data))
		return
	}
	fmt.Println()
	for _, item := range items {
		fmt.Printf("  %-30s %s\n", item.Question, item.Answer)
	}
}

func printFeeEstimate(summary *domain.Summary, opts RunOptions) error {
	schedule, err := fees.Load(opts.FeesPath)
	if err != nil {
		return err
	}

	valuation, ok := findValuation(summary.Answers)
	if !ok {
		return errors.New("no valuation answer found")
	}

	estimate, err := schedule.Estimate(opts.Jurisdiction, summary.ProjectType, valuation)
	if err != nil {
		return err
	}

	if opts.JSON {
		data, _ := json.Marshal(estimate)
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("\nEstimated permit fee (%s): $%.2f\n", estimate.Jurisdiction, estimate.Total)
	return nil
}

func findValuation(answers map[string]any) (float64, bool) {
	for _, key := range valuationKeys {
		if raw, ok := answers[key]; ok {
			if n, ok := domain.ParseNumber(raw); ok {
				return n, true
			}
		}
	}
	return 0, false
}
