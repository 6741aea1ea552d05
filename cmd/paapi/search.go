package main

import (
	"github.com/spf13/cobra"
)

type searchOptions struct {
	index string
	brand string
	page  int
}

func (s *searchOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.index, "index", "All", "search index, e.g. Appliances")
	cmd.Flags().StringVar(&s.brand, "brand", "", "brand to search for")
	cmd.Flags().IntVar(&s.page, "page", 1, "result page, 1 to 10")
	_ = cmd.MarkFlagRequired("brand")
}

func newSearchCmd(o *globalOptions) *cobra.Command {
	s := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List the items of a brand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			resp, err := c.AsinSearch(cmd.Context(), s.index, s.brand, s.page)
			if err != nil {
				return err
			}
			p := printer{w: cmd.OutOrStdout(), format: o.output}
			return p.items(itemRows(resp.Items().Items()))
		},
	}
	s.bind(cmd)
	return cmd
}

func newBrandsCmd(o *globalOptions) *cobra.Command {
	s := &searchOptions{}
	var narrowBy string
	cmd := &cobra.Command{
		Use:   "brands",
		Short: "List the search bins matching a brand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			resp, err := c.BrandSearch(cmd.Context(), s.index, s.brand, s.page)
			if err != nil {
				return err
			}
			p := printer{w: cmd.OutOrStdout(), format: o.output}
			return p.bins(binRows(resp.SearchBins(narrowBy)))
		},
	}
	s.bind(cmd)
	cmd.Flags().StringVar(&narrowBy, "narrow-by", "BrandName", "bin set to list; empty lists all")
	return cmd
}

func newLookupCmd(o *globalOptions) *cobra.Command {
	var groups []string
	cmd := &cobra.Command{
		Use:   "lookup ASIN...",
		Short: "Look up items by ASIN",
		Args:  cobra.RangeArgs(1, 10),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			resp, err := c.ItemLookup(cmd.Context(), args, groups)
			if err != nil {
				return err
			}
			p := printer{w: cmd.OutOrStdout(), format: o.output}
			return p.items(itemRows(resp.Items().Items()))
		},
	}
	cmd.Flags().StringSliceVar(&groups, "response-group", []string{"ItemAttributes", "Offers", "SalesRank"}, "response groups")
	return cmd
}
