package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aji-kb/pomodoro-app/internal/config"
	"github.com/aji-kb/pomodoro-app/internal/db"
)

var (
	statsDays     int
	statsSessions int
)

// statsCmd prints completed session counts per day plus totals.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Completed session history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()

		dbh, err := db.Open()
		if err != nil {
			return err
		}
		defer dbh.Close()

		counts, err := db.RecentCounts(dbh, cfg.Location(), statsDays)
		if err != nil {
			return err
		}

		fmt.Printf("Completed focus sessions (last %d days, goal %d):\n", statsDays, cfg.DailyGoal)
		var sum int
		for _, c := range counts {
			marker := ""
			if c.Count >= cfg.DailyGoal {
				marker = " ✓"
			}
			fmt.Printf("  %s  %3d%s\n", c.Day, c.Count, marker)
			sum += c.Count
		}
		fmt.Printf("  %-10s  %3d\n", "TOTAL", sum)

		allTime, err := db.TotalCompleted(dbh)
		if err != nil {
			return err
		}
		fmt.Printf("  %-10s  %3d\n", "ALL-TIME", allTime)

		if statsSessions > 0 {
			sessions, err := db.RecentSessions(dbh, statsSessions)
			if err != nil {
				return err
			}
			if len(sessions) > 0 {
				fmt.Printf("\nRecent sessions:\n")
				for _, s := range sessions {
					when := s.CompletedAt
					if t, err := time.Parse(time.RFC3339, s.CompletedAt); err == nil {
						when = t.In(cfg.Location()).Format("2006-01-02 15:04")
					}
					fmt.Printf("  %s  %-11s %4dm\n", when, s.Mode, s.Seconds/60)
				}
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "number of days to show")
	statsCmd.Flags().IntVar(&statsSessions, "sessions", 5, "recent sessions to list (0 hides them)")
}
