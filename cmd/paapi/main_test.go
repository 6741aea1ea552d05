package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/lgc202/go-paapi/paapi"
	"github.com/lgc202/go-paapi/version"
)

const searchResponse = `<ItemSearchResponse xmlns="http://webservices.amazon.com/AWSECommerceService/2011-08-01">
	<Items>
		<Request><IsValid>True</IsValid></Request>
		<Item>
			<ASIN>B005BPZFAO</ASIN>
			<ItemAttributes>
				<Brand>Magic Chef</Brand>
				<Title>Compact Refrigerator</Title>
				<ListPrice><Amount>17999</Amount><CurrencyCode>USD</CurrencyCode><FormattedPrice>$179.99</FormattedPrice></ListPrice>
			</ItemAttributes>
		</Item>
		<SearchBinSets>
			<SearchBinSet NarrowBy="BrandName">
				<Bin>
					<BinName>Magic Chef</BinName>
					<BinItemCount>10</BinItemCount>
					<BinParameter><Name>Brand</Name><Value>Magic Chef</Value></BinParameter>
				</Bin>
			</SearchBinSet>
		</SearchBinSets>
	</Items>
</ItemSearchResponse>`

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "-o", "short"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != version.Get().ShortString() {
		t.Fatalf("version = %q", got)
	}
}

func TestVersionCmd_UnknownFormat(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version", "-o", "xml"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestPrinter(t *testing.T) {
	resp, err := paapi.ParseResponse([]byte(searchResponse))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	rows := itemRows(resp.Items().Items())
	if len(rows) != 1 || rows[0].ListPrice != "$179.99" || rows[0].Price != "" {
		t.Fatalf("rows = %+v", rows)
	}

	var buf bytes.Buffer
	if err := (printer{w: &buf, format: "json"}).items(rows); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded[0]["asin"] != "B005BPZFAO" || decoded[0]["brand"] != "Magic Chef" {
		t.Fatalf("json = %s", buf.String())
	}
	if _, ok := decoded[0]["price"]; ok {
		t.Fatalf("empty price should be omitted: %s", buf.String())
	}

	buf.Reset()
	if err := (printer{w: &buf, format: "yaml"}).bins(binRows(resp.SearchBins(paapi.SearchBinBrandName))); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var bins []binRow
	if err := yaml.Unmarshal(buf.Bytes(), &bins); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(bins) != 1 || bins[0].Params["Brand"] != "Magic Chef" || bins[0].ItemCount != "10" {
		t.Fatalf("yaml = %s", buf.String())
	}

	buf.Reset()
	if err := (printer{w: &buf, format: "text"}).items(rows); err != nil {
		t.Fatalf("text: %v", err)
	}
	if !strings.Contains(buf.String(), "ASIN") || !strings.Contains(buf.String(), "Compact Refrigerator") {
		t.Fatalf("text = %s", buf.String())
	}
}
