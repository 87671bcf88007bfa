package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/wealth-desk/client/internal/model/analytics"
	"github.com/zhouzirui/wealth-desk/client/internal/model/portfolio"
	"github.com/zhouzirui/wealth-desk/client/pkg/utils"
)

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the portfolio summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			resp, err := a.stats.PortfolioSummary(cmd.Context())
			if err != nil {
				return a.explain(err)
			}

			out := cmd.OutOrStdout()
			s := resp.Summary
			fmt.Fprintf(out, "Total clients:        %d\n", s.TotalClients)
			fmt.Fprintf(out, "Total AUM:            %s\n", utils.FormatCrores(s.TotalAUM))
			fmt.Fprintf(out, "Average portfolio:    %s\n", utils.FormatCrores(s.AvgPortfolioValue))
			fmt.Fprintf(out, "Film stars:           %d\n", s.FilmStars)
			fmt.Fprintf(out, "Sports personalities: %d\n", s.SportsPersonalities)

			fmt.Fprintln(out, "\nRisk distribution")
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, b := range resp.RiskDistribution {
				fmt.Fprintf(tw, "  %s\t%d clients\t%s\t%s\n", b.RiskAppetite, b.Count,
					utils.FormatCrores(b.TotalValue), utils.FormatPercent(b.TotalValue, s.TotalAUM))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nRelationship managers")
			return writeManagers(out, resp.RMPerformance)
		},
	}
}

func newTopCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show top portfolios, managers and stocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			resp, err := a.stats.TopPerformers(cmd.Context(), limit)
			if err != nil {
				return a.explain(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Top portfolios")
			if err := writeClients(out, resp.TopPortfolios); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nTop relationship managers")
			if err := writeManagers(out, resp.TopRMs); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nTop stocks")
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, st := range resp.TopStocks {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%d holders\n", st.StockSymbol, st.StockName,
					utils.FormatCrores(st.TotalValue), st.HolderCount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries per list")
	return cmd
}

func newClientsCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			resp, err := a.stats.Clients(cmd.Context(), limit)
			if err != nil {
				return a.explain(err)
			}
			out := cmd.OutOrStdout()
			if err := writeClients(out, resp.Clients); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d clients\n", resp.Count)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "maximum number of clients")
	return cmd
}

func newManagersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "managers",
		Short: "List relationship managers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			resp, err := a.stats.RelationshipManagers(cmd.Context())
			if err != nil {
				return a.explain(err)
			}
			return writeManagers(cmd.OutOrStdout(), resp.RelationshipManagers)
		},
	}
}

func newInitDataCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-data",
		Short: "Reload the sample dataset on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			resp, err := a.stats.InitializeSampleData(cmd.Context())
			if err != nil {
				return a.explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d records)\n", resp.Message, resp.Count)
			return nil
		},
	}
}

func newConversationsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversations",
		Short: "List or delete server-side conversations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			ids, err := a.convo.ListConversations(cmd.Context())
			if err != nil {
				return a.explain(err)
			}
			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No conversations")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <conversation-id>",
		Short: "Delete a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := a.convo.DeleteConversation(cmd.Context(), args[0]); err != nil {
				return a.explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})
	return cmd
}

func writeClients(out io.Writer, clients []portfolio.Client) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range clients {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Type,
			utils.FormatCrores(float64(c.TotalPortfolioValue)), c.RelationshipManagerName)
	}
	return tw.Flush()
}

func writeManagers(out io.Writer, managers []analytics.ManagerPerformance) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, m := range managers {
		fmt.Fprintf(tw, "  %s\t%s\t%d clients\t%s\n", m.ManagerID, m.ManagerName, m.ClientCount,
			utils.FormatCrores(m.TotalAUM))
	}
	return tw.Flush()
}
