package paapi

import (
	"github.com/antchfx/xmlquery"

	"github.com/lgc202/go-paapi/xmlview"
)

// Image categories used by Item.ImageSet.
const (
	ImageSetPrimary = "primary"
	ImageSetVariant = "variant"
)

type Image struct{ xmlview.Element }

func NewImage(n *xmlquery.Node) Image { return Image{xmlview.New(n, Namespaces)} }

func (i Image) URL() string    { return i.Text("./a:URL/text()") }
func (i Image) Height() string { return i.Text("./a:Height/text()") }
func (i Image) Width() string  { return i.Text("./a:Width/text()") }

type ImageSet struct{ xmlview.Element }

func NewImageSet(n *xmlquery.Node) ImageSet { return ImageSet{xmlview.New(n, Namespaces)} }

func (s ImageSet) SwatchImage() Image    { return xmlview.One(s.Element, "./a:SwatchImage", NewImage) }
func (s ImageSet) SmallImage() Image     { return xmlview.One(s.Element, "./a:SmallImage", NewImage) }
func (s ImageSet) ThumbnailImage() Image { return xmlview.One(s.Element, "./a:ThumbnailImage", NewImage) }
func (s ImageSet) TinyImage() Image      { return xmlview.One(s.Element, "./a:TinyImage", NewImage) }
func (s ImageSet) MediumImage() Image    { return xmlview.One(s.Element, "./a:MediumImage", NewImage) }
func (s ImageSet) LargeImage() Image     { return xmlview.One(s.Element, "./a:LargeImage", NewImage) }
