package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grafik/internal/bootstrap"
	proposaldto "grafik/internal/modules/proposal/dto"
	"grafik/internal/platform/i18n"
)

func newProposalsCmd(g *globals) *cobra.Command {
	proposals := &cobra.Command{Use: "proposals", Short: "Shift swap proposals"}

	proposals.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List incoming, outgoing and pending-approval proposals",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			list, err := app.ProposalCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			printProposals(cmd.OutOrStdout(), list, app.Config.Language)
			return nil
		}),
	})

	var to int64
	var myDate, theirDate, myCode, theirCode string
	create := &cobra.Command{
		Use:   "create",
		Short: "Propose a swap to a colleague",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			list, err := app.ProposalCLI.Create(cmd.Context(), to, myDate, theirDate, myCode, theirCode)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "proposal sent")
			printProposals(cmd.OutOrStdout(), list, app.Config.Language)
			return nil
		}),
	}
	create.Flags().Int64Var(&to, "to", 0, "colleague user id")
	create.Flags().StringVar(&myDate, "my-date", "", "date of the shift I give")
	create.Flags().StringVar(&theirDate, "their-date", "", "date of the shift I get")
	create.Flags().StringVar(&myCode, "my-code", "", "code of the shift I give")
	create.Flags().StringVar(&theirCode, "their-code", "", "code of the shift I get")
	_ = create.MarkFlagRequired("to")
	_ = create.MarkFlagRequired("my-date")
	_ = create.MarkFlagRequired("their-date")
	proposals.AddCommand(create)

	for _, verb := range []string{"accept", "decline", "cancel", "approve", "reject"} {
		proposals.AddCommand(&cobra.Command{
			Use:   verb + " <id>",
			Short: strings.ToUpper(verb[:1]) + verb[1:] + " a proposal",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				list, err := app.ProposalCLI.Transition(cmd.Context(), verb, id)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "proposal %d: %s done\n", id, verb)
				printProposals(cmd.OutOrStdout(), list, app.Config.Language)
				return nil
			}),
		})
	}
	return proposals
}

func newTakeoverCmd(g *globals) *cobra.Command {
	var user int64
	var date string

	cmd := &cobra.Command{
		Use:   "takeover",
		Short: "Ask to take over a colleague's shift",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			offer, err := app.ProposalCLI.Takeover(cmd.Context(), user, date)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "takeover requested: offer %d %s %s (%s)\n", offer.ID, offer.Date, offer.Code, offer.Status)
			return nil
		}),
	}
	cmd.Flags().Int64Var(&user, "user", 0, "colleague user id")
	cmd.Flags().StringVar(&date, "date", "", "shift date")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newOffersCmd(g *globals) *cobra.Command {
	offers := &cobra.Command{Use: "offers", Short: "Shift giveaway market"}

	offers.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List open offers and mine",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			market, err := app.ProposalCLI.Offers(cmd.Context())
			if err != nil {
				return err
			}
			printMarket(cmd.OutOrStdout(), market, app.Config.Language)
			return nil
		}),
	})

	offers.AddCommand(&cobra.Command{
		Use:   "create <shift-id>",
		Short: "Offer one of my shifts",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			shiftID, err := parseID(args[0])
			if err != nil {
				return err
			}
			id, err := app.ProposalCLI.CreateOffer(cmd.Context(), shiftID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "offer %d created\n", id)
			return nil
		}),
	})

	for _, verb := range []string{"claim", "cancel", "approve", "reject"} {
		offers.AddCommand(&cobra.Command{
			Use:   verb + " <id>",
			Short: strings.ToUpper(verb[:1]) + verb[1:] + " an offer",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				market, err := app.ProposalCLI.OfferTransition(cmd.Context(), verb, id)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "offer %d: %s done\n", id, verb)
				printMarket(cmd.OutOrStdout(), market, app.Config.Language)
				return nil
			}),
		})
	}
	return offers
}

type bucket struct {
	title i18n.Key
	empty i18n.Key
	count int
}

// printBucket writes a heading and, for an empty bucket, its placeholder.
func printBucket(out io.Writer, lang string, b bucket) {
	_, _ = fmt.Fprintf(out, "%s (%d)\n", i18n.Text(lang, b.title), b.count)
	if b.count == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", i18n.Text(lang, b.empty))
	}
}

func printProposals(out io.Writer, list proposaldto.ListOutput, lang string) {
	sections := []struct {
		bucket
		rows []proposaldto.RowOutput
	}{
		{bucket{i18n.IncomingTitle, i18n.IncomingEmpty, len(list.Incoming)}, list.Incoming},
		{bucket{i18n.OutgoingTitle, i18n.OutgoingEmpty, len(list.Outgoing)}, list.Outgoing},
	}
	if list.ShowManager {
		sections = append(sections, struct {
			bucket
			rows []proposaldto.RowOutput
		}{bucket{i18n.ManagerTitle, i18n.ManagerEmpty, len(list.Manager)}, list.Manager})
	}
	for _, section := range sections {
		printBucket(out, lang, section.bucket)
		for _, r := range section.rows {
			_, _ = fmt.Fprintf(out, "  %d\t%s -> %s\tgive %s %s\tget %s %s\t%s",
				r.ID, r.From, r.To, r.GiveDate, optional(r.GiveCode), r.GetDate, optional(r.GetCode), r.Status)
			if len(r.Actions) > 0 {
				_, _ = fmt.Fprintf(out, "\t[%s]", strings.Join(r.Actions, " "))
			}
			_, _ = fmt.Fprintln(out)
		}
	}
}

func printMarket(out io.Writer, market proposaldto.MarketOutput, lang string) {
	for _, section := range []struct {
		bucket
		offers []proposaldto.OfferOutput
	}{
		{bucket{i18n.OpenOffers, i18n.OpenEmpty, len(market.Open)}, market.Open},
		{bucket{i18n.MyOffers, i18n.MyOffersEmpty, len(market.Mine)}, market.Mine},
	} {
		printBucket(out, lang, section.bucket)
		for _, o := range section.offers {
			candidate := "-"
			if o.Candidate != nil {
				candidate = o.Candidate.FullName
			}
			_, _ = fmt.Fprintf(out, "  %d\t%s %s\t%s\tclaimed by %s\t%s", o.ID, o.Date, o.Code, o.Owner.FullName, candidate, o.Status)
			if len(o.Actions) > 0 {
				_, _ = fmt.Fprintf(out, "\t[%s]", strings.Join(o.Actions, " "))
			}
			_, _ = fmt.Fprintln(out)
		}
	}
}
