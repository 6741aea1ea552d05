package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/lgc202/go-paapi/paapi"
)

type itemRow struct {
	ASIN      string `json:"asin" yaml:"asin"`
	Brand     string `json:"brand,omitempty" yaml:"brand,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	ListPrice string `json:"list_price,omitempty" yaml:"list_price,omitempty"`
	Price     string `json:"price,omitempty" yaml:"price,omitempty"`
	SalesRank string `json:"sales_rank,omitempty" yaml:"sales_rank,omitempty"`
}

func itemRows(items []paapi.Item) []itemRow {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		attrs := it.ItemAttributes()
		rows = append(rows, itemRow{
			ASIN:      it.ASIN(),
			Brand:     attrs.Brand(),
			Title:     attrs.Title(),
			ListPrice: attrs.ListPrice().FormattedPrice(),
			Price:     it.Offer().Price().FormattedPrice(),
			SalesRank: it.SalesRank(),
		})
	}
	return rows
}

type binRow struct {
	Name      string            `json:"name" yaml:"name"`
	ItemCount string            `json:"item_count" yaml:"item_count"`
	Params    map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

func binRows(bins []paapi.Bin) []binRow {
	rows := make([]binRow, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, binRow{Name: b.Name(), ItemCount: b.ItemCount(), Params: b.RequestParams()})
	}
	return rows
}

// printer writes rows in the selected format. table renders the text form.
type printer struct {
	w      io.Writer
	format string
}

func (p printer) print(v any, table func(t *uitable.Table)) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(p.w)
		defer enc.Close()
		return enc.Encode(v)
	}
	t := uitable.New()
	t.MaxColWidth = 60
	t.Wrap = true
	table(t)
	_, err := fmt.Fprintln(p.w, t)
	return err
}

func (p printer) items(rows []itemRow) error {
	return p.print(rows, func(t *uitable.Table) {
		t.AddRow("ASIN", "BRAND", "TITLE", "LIST PRICE", "PRICE")
		for _, r := range rows {
			t.AddRow(r.ASIN, r.Brand, r.Title, r.ListPrice, r.Price)
		}
	})
}

func (p printer) bins(rows []binRow) error {
	return p.print(rows, func(t *uitable.Table) {
		t.AddRow("BIN", "ITEMS", "PARAMETERS")
		for _, r := range rows {
			pairs := make([]string, 0, len(r.Params))
			for k, v := range r.Params {
				pairs = append(pairs, k+"="+v)
			}
			t.AddRow(r.Name, r.ItemCount, strings.Join(pairs, " "))
		}
	})
}
