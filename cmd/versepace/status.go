package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/versepace/versepace/internal/progress"
	"github.com/versepace/versepace/internal/service"
)

// writeStatus prints the reading summary and the books that have been
// opened.
func writeStatus(w io.Writer, sum service.Summary, books []service.BookProgress) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if sum.BookOpen {
		fmt.Fprintf(tw, "Current\t%s\n", sum.Reference)
		fmt.Fprintf(tw, "Book\t%.1f%%\n", sum.BookPercent)
	} else {
		fmt.Fprintf(tw, "Current\t(no book open)\n")
	}
	fmt.Fprintf(tw, "Overall\t%.2f%%\n", sum.OverallPercent)
	fmt.Fprintf(tw, "Today\t%d chars (%.0f%% of goal)\n", sum.CharsToday, sum.DailyPercent)
	fmt.Fprintf(tw, "This week\t%.0f%% of goal\n", sum.WeeklyPercent)

	pace := sum.Pace
	if pace.Speed > 0 {
		fmt.Fprintf(tw, "Pace\t%d days x %d min at %.2f chars/s\n", pace.DaysPerWeek, pace.MinutesPerDay, pace.Speed)
	} else {
		fmt.Fprintf(tw, "Pace\tnot measured\n")
	}

	fmt.Fprintf(tw, "Remaining\t%d chars\n", sum.RemainingChars)
	if pace.Speed > 0 {
		fmt.Fprintf(tw, "Reading time\t%s\n", progress.FormatReadingTime(sum.Estimate.TotalReadingTime))
	}
	if sum.Estimate.Determined {
		fmt.Fprintf(tw, "Finish\t%s (%d weeks)\n", sum.Estimate.ProjectedDate.Format("02/01/2006"), sum.Estimate.WeeksNeeded)
	} else {
		fmt.Fprintf(tw, "Finish\tundetermined\n")
	}

	opened := 0
	for _, b := range books {
		if !b.Opened {
			continue
		}
		if opened == 0 {
			fmt.Fprintf(tw, "\nBooks\t\n")
		}
		opened++
		fmt.Fprintf(tw, "  %s\t%.1f%%\n", b.Name, b.Percent)
	}

	return tw.Flush()
}
